package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/codefionn/calcschnell/internal/calculator"
	"github.com/codefionn/calcschnell/internal/consts"
	"github.com/codefionn/calcschnell/internal/tui"
	"github.com/spf13/cobra"
)

const replPrompt = "> "

// replCmd evaluates one expression per input line
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Evaluate expressions line by line",
	Long: `Read expressions from stdin, one per line, and print one result line for
each. Failed evaluations print "Error: <message>". Blank lines are skipped.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		return runREPL(cmd.Context(), a.newCalculator(), cmd.InOrStdin(), cmd.OutOrStdout(), tui.InteractiveTerminal())
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}

// runREPL evaluates every non-blank line of in. Error lines go to out as well
// so that output lines stay aligned with input lines.
func runREPL(ctx context.Context, calc *calculator.Calculator, in io.Reader, out io.Writer, prompt bool) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 4096), consts.BufferSize64KB)

	if prompt {
		fmt.Fprint(out, replPrompt)
	}
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			outcome, err := calc.EvaluateExpression(ctx, line)
			switch {
			case err != nil:
				printError(out, err)
			case outcome.Err != nil:
				printError(out, outcome.Err)
			default:
				fmt.Fprintln(out, outcome.Display)
			}
		}

		if prompt {
			fmt.Fprint(out, replPrompt)
		}
	}
	if prompt {
		fmt.Fprintln(out)
	}
	return scanner.Err()
}
