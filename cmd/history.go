package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/letterid/internal/store"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		dbPath, err := resolveDBPath(cfg)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}

		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		runs, err := s.RunRepo().List(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query runs: %w", err)
		}

		w := cmd.OutOrStdout()
		if len(runs) == 0 {
			fmt.Fprintln(w, "No runs recorded.")
			return nil
		}

		// Header.
		fmt.Fprintf(w, "%-5s  %-19s  %-8s  %-5s  %-20s  %-7s  %-7s  %s\n",
			"Seq", "Started", "ID", "Rate", "Seed", "Train", "Test", "Accuracy")
		fmt.Fprintln(w, strings.Repeat("─", 96))

		for _, r := range runs {
			fmt.Fprintf(w, "%-5d  %-19s  %-8s  %-5.3g  %-20d  %-7d  %-7d  %.2f%%\n",
				r.Sequence,
				r.StartedAt.Local().Format("2006-01-02 15:04:05"),
				r.ID.String()[:8],
				r.LearningRate,
				r.Seed,
				r.TrainRecords,
				r.TestRecords,
				r.Accuracy*100,
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of runs to show")
}
