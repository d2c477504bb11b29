package main

import (
	"github.com/btracey/crossval/internal/config"
	"github.com/btracey/crossval/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "dev"

// app carries the state shared by the subcommands once the root command has
// loaded the configuration.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	cmd := &cobra.Command{
		Use:   "crossval",
		Short: "n-fold cross validation and binary classification metrics",
		Long: `crossval partitions data for n-fold cross validation, scores
least-squares regressions on each fold, and computes accuracy, TPR, TNR, PPV
and NPV for binary predictions.

Settings are read from an optional YAML file (--config), then from CROSSVAL_*
environment variables (CROSSVAL_FOLDS, CROSSVAL_LOG_LEVEL, ...), then from
command-line flags, each overriding the last.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	configPath := cmd.PersistentFlags().String("config", "", "YAML configuration file")
	logLevel := cmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	logFormat := cmd.PersistentFlags().String("log-format", "", "log format (console, json)")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			cfg.Log.Level = *logLevel
		}
		if cmd.Flags().Changed("log-format") {
			cfg.Log.Format = *logFormat
		}
		logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
		if err != nil {
			return err
		}
		a.cfg = cfg
		a.logger = logger
		return nil
	}
	cmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		_ = a.logger.Sync()
	}

	cmd.AddCommand(newSplitCommand(a))
	cmd.AddCommand(newCVCommand(a))
	cmd.AddCommand(newMetricsCommand(a))

	return cmd
}
