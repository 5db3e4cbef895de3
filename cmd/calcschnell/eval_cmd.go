package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/codefionn/calcschnell/internal/calculator"
	"github.com/spf13/cobra"
)

// evalCmd evaluates its arguments once
var evalCmd = &cobra.Command{
	Use:   "eval EXPRESSION...",
	Short: "Evaluate an expression and print the result",
	Long: `Evaluate the arguments, joined with spaces, as one expression.

Examples:
  calcschnell eval 2+3*4
  calcschnell eval 10 / 4 --precision 6`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		return evalExpression(cmd.Context(), a.newCalculator(), strings.Join(args, " "), cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	rootCmd.AddCommand(evalCmd)
}

// evalExpression prints the result of expression to out, or the error to
// errOut. Failures return errReported.
func evalExpression(ctx context.Context, calc *calculator.Calculator, expression string, out, errOut io.Writer) error {
	outcome, err := calc.EvaluateExpression(ctx, expression)
	if err != nil {
		return err
	}
	if outcome.Err != nil {
		printError(errOut, outcome.Err)
		return errReported
	}
	fmt.Fprintln(out, outcome.Display)
	return nil
}
