package main

import (
	"errors"
	"io"
	"os"

	"github.com/codefionn/calcschnell/internal/config"
	"github.com/codefionn/calcschnell/internal/consts"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// errReported signals that the error has already been printed
var errReported = errors.New("error already reported")

var (
	configPath string
	logLevel   string
	precision  int
	noHistory  bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "calcschnell",
	Short: "Keypad calculator for the terminal",
	Long: `calcschnell evaluates arithmetic expressions with + - * / and the usual
precedence rules (left to right within a level, no parentheses).

Without a subcommand it opens the keypad TUI when attached to a terminal and
reads one expression per line from stdin otherwise.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTUI,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			printError(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Configuration file (JSON), defaults to "+config.GetConfigPath())
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error or none")
	rootCmd.PersistentFlags().IntVar(&precision, "precision", consts.DefaultPrecision, "Fractional digits of results, -1 for the shortest exact form")
	rootCmd.PersistentFlags().BoolVar(&noHistory, "no-history", false, "Do not read or write the evaluation history")
}

func printError(w io.Writer, err error) {
	color.New(color.FgRed).Fprintf(w, "Error: %v\n", err)
}
