package main

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/codefionn/calcschnell/internal/tui"
	"github.com/spf13/cobra"
)

// keysCmd prints the keyboard reference of the TUI
var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Show the keypad key bindings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := renderKeys(80)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(keysCmd)
}

func renderKeys(width int) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	return renderer.Render(tui.KeyReference())
}
