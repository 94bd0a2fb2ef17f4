package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/codeninelabs/cnl-patternlock/internal/logging"
	"github.com/codeninelabs/cnl-patternlock/internal/terminal"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Draw patterns with the mouse in the terminal",
	Long: `Opens a full-screen grid. Hold the left button and drag across the dots to draw a
pattern; release to submit it. Press r to reset and q or Esc to quit. Every
submitted pattern is printed after the screen closes.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("size") {
			cfg.GridSize, _ = cmd.Flags().GetInt("size")
		}

		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("play: %w", err)
		}
		if err := screen.Init(); err != nil {
			return fmt.Errorf("play: %w", err)
		}

		// Logging to stderr would tear the screen.
		host, err := terminal.New(screen, terminal.Config{
			GridSize: cfg.GridSize,
			Logger:   logging.NewNop(),
			Options:  cfg.SessionOptions(),
		})
		if err != nil {
			screen.Fini()
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		runErr := host.Run(ctx)
		screen.Fini()

		for i, c := range host.Completions() {
			fmt.Fprintf(cmd.OutOrStdout(), "#%d %s %s\n", i+1, c.Result, c.Pattern)
		}
		if runErr != nil && ctx.Err() == nil {
			return runErr
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().IntP("size", "n", 3, "grid size N (overrides the config file)")
}
