package main

import (
	"context"

	"github.com/codefionn/calcschnell/internal/config"
	"github.com/codefionn/calcschnell/internal/logger"
	"github.com/codefionn/calcschnell/internal/tui"
	"github.com/spf13/cobra"
)

// tuiCmd opens the keypad explicitly
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the keypad TUI",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer a.Close()

	calc := a.newCalculator()
	if !tui.InteractiveTerminal() {
		logger.Info("not attached to a terminal, reading expressions from stdin")
		return runREPL(cmd.Context(), calc, cmd.InOrStdin(), cmd.OutOrStdout(), false)
	}

	opts := tui.Options{Calculator: calc}
	if a.history != nil {
		opts.History = a.history
	}
	program := tui.NewProgram(tui.New(opts), a.cfg.Mouse)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	precisionFromFlag := cmd.Flags().Changed("precision")
	go func() {
		err := config.Watch(ctx, a.configPath, func(cfg *config.Config) {
			if precisionFromFlag {
				cfg.Precision = a.cfg.Precision
			}
			program.Send(tui.ConfigReloadedMsg{Config: cfg})
		})
		if err != nil {
			logger.Warn("config watcher stopped: %v", err)
		}
	}()

	_, err = program.Run()
	return err
}
