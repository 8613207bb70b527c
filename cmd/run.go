package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/abhisek/letterid/internal/app"
	"github.com/abhisek/letterid/internal/config"
	"github.com/abhisek/letterid/internal/report"
	"github.com/abhisek/letterid/internal/store"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [training data path] [test data path]",
	Short: "Train on one dataset and report accuracy on another",
	Args:  cobra.MaximumNArgs(2),
	RunE:  runEvaluate,
}

func init() {
	f := runCmd.Flags()
	f.Int("attributes", 16, "Number of attributes per record")
	f.Float64("learning-rate", 0.2, "Perceptron learning rate")
	f.Uint64("seed", 0, "Random seed (0 derives one from the clock)")
	f.Int("workers", 1, "Pairs trained concurrently")
	f.String("delimiter", ",", "Field delimiter")
	f.String("csv", "", "Write per-record results as CSV to this path")
	f.String("confusion", "", "Write the confusion matrix as CSV to this path")
	f.Bool("no-history", false, "Do not record the run in the history database")
}

// runEvaluate trains, evaluates, prints the report and records the run.
func runEvaluate(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		cfg.TrainPath = args[0]
	}
	if len(args) > 1 {
		cfg.TestPath = args[1]
	}

	out, err := app.Run(cmd.Context(), app.Options{Config: cfg, Logger: slog.Default()})
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), report.Render(out.Summary))

	if p, _ := cmd.Flags().GetString("csv"); p != "" {
		if err := writeFile(p, func(f *os.File) error { return report.WriteResultsCSV(f, out.Results) }); err != nil {
			return fmt.Errorf("write results: %w", err)
		}
	}
	if p, _ := cmd.Flags().GetString("confusion"); p != "" {
		m := report.NewConfusionMatrix(out.Results)
		if err := writeFile(p, func(f *os.File) error { return m.WriteCSV(f) }); err != nil {
			return fmt.Errorf("write confusion matrix: %w", err)
		}
	}

	if skip, _ := cmd.Flags().GetBool("no-history"); !skip {
		// History is best effort; a failed save does not fail the run.
		if err := saveRun(cmd, cfg, &out.Run); err != nil {
			slog.Warn("failed to record run", slog.Any("error", err))
		} else {
			slog.Info("run recorded", slog.String("id", out.Run.ID.String()))
		}
	}
	return nil
}

func saveRun(cmd *cobra.Command, cfg config.Config, run *store.Run) error {
	p, err := resolveDBPath(cfg)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(p)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()
	return st.RunRepo().Save(cmd.Context(), run)
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
