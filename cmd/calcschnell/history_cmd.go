package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/codefionn/calcschnell/internal/consts"
	"github.com/codefionn/calcschnell/internal/history"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	historyLimit int
	historyClear bool
)

var errHistoryUnavailable = errors.New("history is disabled or unavailable")

// historyCmd lists or clears past evaluations
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List or clear past evaluations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		if a.history == nil {
			return errHistoryUnavailable
		}

		if historyClear {
			if err := a.history.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "History cleared")
			return nil
		}

		if historyLimit <= 0 {
			return fmt.Errorf("invalid limit %d: must be positive", historyLimit)
		}
		entries, err := a.history.Recent(cmd.Context(), historyLimit)
		if err != nil {
			return err
		}
		printHistory(cmd.OutOrStdout(), entries)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVar(&historyLimit, "limit", consts.DefaultHistoryListLimit, "Number of entries to show")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "Delete all entries")
}

// printHistory prints entries (newest first, as returned by the store) oldest
// first so that the latest evaluation ends up at the bottom.
func printHistory(w io.Writer, entries []history.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No evaluations yet")
		return
	}

	failed := color.New(color.FgRed)
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		line := fmt.Sprintf("%s  %s = %s", e.CreatedAt.Local().Format("2006-01-02 15:04:05"), e.Expression, e.Display)
		if e.Failed() {
			failed.Fprintf(w, "%s (%s)\n", line, e.ErrorKind)
			continue
		}
		fmt.Fprintln(w, line)
	}
}
