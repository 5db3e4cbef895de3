package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/codefionn/calcschnell/internal/calculator"
	"github.com/codefionn/calcschnell/internal/config"
	"github.com/codefionn/calcschnell/internal/history"
	"github.com/codefionn/calcschnell/internal/server"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func TestEvalExpression(t *testing.T) {
	var out, errOut bytes.Buffer
	calc := calculator.New()

	require.NoError(t, evalExpression(context.Background(), calc, "2+3*4", &out, &errOut))
	assert.Equal(t, "14\n", out.String())
	assert.Empty(t, errOut.String())

	out.Reset()
	err := evalExpression(context.Background(), calc, "+5", &out, &errOut)
	assert.ErrorIs(t, err, errReported)
	assert.Empty(t, out.String())
	assert.True(t, strings.HasPrefix(errOut.String(), "Error: malformed expression"), errOut.String())

	err = evalExpression(context.Background(), calc, strings.Repeat("1", 1000), &out, &errOut)
	assert.ErrorIs(t, err, calculator.ErrInputTooLong)
}

func TestRunREPL(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("2+3\n\n   10 / 4  \n5++3\n2%3\n")

	require.NoError(t, runREPL(context.Background(), calculator.New(), in, &out, false))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "5", lines[0])
	assert.Equal(t, "2.5", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "Error: malformed expression"), lines[2])
	assert.True(t, strings.HasPrefix(lines[3], "Error: invalid operator"), lines[3])
}

func TestRunREPLPrompt(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runREPL(context.Background(), calculator.New(), strings.NewReader("1+1\n"), &out, true))
	assert.Equal(t, "> 2\n> \n", out.String())
}

func TestRunREPLStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := runREPL(ctx, calculator.New(), strings.NewReader("1+1\n"), &out, false)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out.String())
}

func TestPrintHistory(t *testing.T) {
	var out bytes.Buffer
	printHistory(&out, nil)
	assert.Equal(t, "No evaluations yet\n", out.String())

	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.Local)
	newest := history.Entry{Expression: "+5", Display: "Error", ErrorKind: "malformed_expression", CreatedAt: ts}
	oldest := history.Entry{Expression: "2+3", Display: "5", CreatedAt: ts}

	out.Reset()
	printHistory(&out, []history.Entry{newest, oldest})
	assert.Equal(t,
		"2026-01-02 03:04:05  2+3 = 5\n"+
			"2026-01-02 03:04:05  +5 = Error (malformed_expression)\n",
		out.String())
}

func TestRenderKeys(t *testing.T) {
	out, err := renderKeys(80)
	require.NoError(t, err)
	assert.Contains(t, out, "evaluate")
	assert.Contains(t, out, "copy result")
}

func TestServeStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	srv := server.New(server.Options{Addr: "127.0.0.1:0"})

	done := make(chan error, 1)
	go func() { done <- serve(ctx, srv) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("serve did not return after cancel")
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCommandsEndToEnd(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.json")
	cfg := config.DefaultConfig()
	cfg.Precision = 2
	require.NoError(t, cfg.Save(cfgPath))

	t.Setenv(config.EnvLogLevel, "none")
	t.Setenv(config.EnvHistoryPath, filepath.Join(dir, "history.db"))

	out, err := execute(t, "--config", cfgPath, "--no-history=false", "eval", "10", "/", "4")
	require.NoError(t, err)
	assert.Equal(t, "2.50\n", out)

	out, err = execute(t, "--config", cfgPath, "--no-history=false", "--precision", "-1", "eval", "8-3-2")
	require.NoError(t, err)
	assert.Equal(t, "3\n", out)

	out, err = execute(t, "--config", cfgPath, "--no-history=false", "history", "--limit", "5")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], "10 / 4 = 2.50"), lines[0])
	assert.True(t, strings.HasSuffix(lines[1], "8-3-2 = 3"), lines[1])

	out, err = execute(t, "--config", cfgPath, "--no-history=false", "history", "--clear")
	require.NoError(t, err)
	assert.Equal(t, "History cleared\n", out)
	historyClear = false

	_, err = execute(t, "--config", cfgPath, "--no-history", "history")
	assert.ErrorIs(t, err, errHistoryUnavailable)

	_, err = execute(t, "--config", cfgPath, "--precision", "-2", "eval", "1")
	assert.Error(t, err)
}
