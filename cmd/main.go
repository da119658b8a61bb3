package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/okian/dhand/internal/config"
	"github.com/okian/dhand/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "dhand",
	Short: "Infer a touch user's dominant hand from tap positions",
	Long: "dhand scores where on full-width controls a user taps; a consistently\n" +
		"negative score suggests the left hand, a positive one the right.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		// Logs go to stderr so command output on stdout stays machine-readable.
		return logger.InitWithWriter(cmd.ErrOrStderr())
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file (overrides "+config.EnvFile+")")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(simulateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves the config file from --config, then DHAND_CONFIG,
// loads it, and applies the configured log level.
func loadConfig(ctx context.Context, cmd *cobra.Command) (*config.Config, error) {
	load := config.Load
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		load = func(ctx context.Context) (*config.Config, error) {
			return config.LoadFile(ctx, path)
		}
	}
	cfg, err := load(ctx)
	if err != nil {
		return nil, err
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}
	return cfg, nil
}
