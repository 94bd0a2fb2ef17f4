package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/codeninelabs/cnl-patternlock/config"
	"github.com/codeninelabs/cnl-patternlock/internal/logging"
)

// errInvalidPattern makes the process exit 1 after the result is printed.
var errInvalidPattern = errors.New("invalid pattern")

var rootCmd = &cobra.Command{
	Use:           "patternlock",
	Short:         "Pattern lock validation and gesture tracking",
	Long:          `patternlock checks unlock patterns on an N×N grid, replays recorded gestures through a session and lets you draw patterns with the mouse in a terminal.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errInvalidPattern) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "YAML configuration file")
	rootCmd.PersistentFlags().String("log-level", "", "debug, info, warn or error (overrides the config file)")
}

// loadConfig reads --config and applies --log-level on top of it.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}

	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
		if err := cfg.Validate(); err != nil {
			return config.Config{}, err
		}
	}
	return cfg, nil
}

// newLogger builds the stderr logger for cfg. Levels are validated by loadConfig.
func newLogger(cmd *cobra.Command, cfg config.Config) *slog.Logger {
	level, _ := logging.ParseLevel(cfg.LogLevel)
	return logging.New(level, cmd.ErrOrStderr())
}
