package cmd

import (
	"fmt"

	"github.com/abhisek/letterid/internal/dataset"
	"github.com/spf13/cobra"
)

var splitCmd = &cobra.Command{
	Use:   "split <input> <training output> <test output>",
	Short: "Split a dataset into training and test halves per letter",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}

		records, err := dataset.ReadFile(args[0], dataset.Options{Delimiter: cfg.Delimiter})
		if err != nil {
			return err
		}
		train, test := dataset.Split(records)

		if err := dataset.WriteFile(args[1], train, cfg.Delimiter); err != nil {
			return err
		}
		if err := dataset.WriteFile(args[2], test, cfg.Delimiter); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%d training records -> %s\n", len(train), args[1])
		fmt.Fprintf(cmd.OutOrStdout(), "%d test records -> %s\n", len(test), args[2])
		return nil
	},
}

func init() {
	splitCmd.Flags().String("delimiter", ",", "Field delimiter")
}
