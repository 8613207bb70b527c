package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/abhisek/letterid/internal/config"
	"github.com/abhisek/letterid/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "letterid",
	Short: "Letter recognition with a pairwise perceptron committee",
	Long: "letterid trains one perceptron per pair of letters on delimited attribute records " +
		"and identifies new records by majority vote.",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if v, _ := cmd.Flags().GetBool("verbose"); v {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite run history (overrides LETTERID_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log per-pair training details")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(splitCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveConfig layers defaults, the --config file, LETTERID_* env vars and
// finally any flags set on cmd.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.DefaultConfig()
	if p, _ := cmd.Flags().GetString("config"); p != "" {
		var err error
		if cfg, err = config.LoadFile(p, cfg); err != nil {
			return cfg, err
		}
	}
	cfg, err := config.ApplyEnv(cfg)
	if err != nil {
		return cfg, fmt.Errorf("read environment: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("attributes") {
		cfg.AttributeCount, _ = flags.GetInt("attributes")
	}
	if flags.Changed("learning-rate") {
		cfg.LearningRate, _ = flags.GetFloat64("learning-rate")
	}
	if flags.Changed("seed") {
		cfg.Seed, _ = flags.GetUint64("seed")
	}
	if flags.Changed("workers") {
		cfg.Workers, _ = flags.GetInt("workers")
	}
	if flags.Changed("delimiter") {
		cfg.Delimiter, _ = flags.GetString("delimiter")
	}
	if flags.Changed("db") {
		cfg.DBPath, _ = flags.GetString("db")
	}
	return cfg, nil
}

// resolveDBPath returns the database path using the resolved config
// (flag, file or env) first, then the default XDG path.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}
