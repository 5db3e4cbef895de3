package main

import (
	"fmt"
	"os"

	"github.com/codefionn/calcschnell/internal/calculator"
	"github.com/codefionn/calcschnell/internal/config"
	"github.com/codefionn/calcschnell/internal/consts"
	"github.com/codefionn/calcschnell/internal/history"
	"github.com/codefionn/calcschnell/internal/logger"
	"github.com/spf13/cobra"
)

// app is the state shared by all subcommands
type app struct {
	cfg        *config.Config
	configPath string
	history    *history.Store // nil when disabled or unavailable
}

// setup loads the configuration, applies environment and flag overrides,
// initializes the global logger and opens the history. With logToStderr the
// log goes to stderr instead of the configured log file.
func setup(cmd *cobra.Command, logToStderr bool) (*app, error) {
	path := configPath
	if path == "" {
		path = config.GetConfigPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.ApplyEnvOverrides()

	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if cmd.Flags().Changed("precision") {
		if precision < consts.DefaultPrecision {
			return nil, fmt.Errorf("invalid precision %d: must be %d or greater", precision, consts.DefaultPrecision)
		}
		cfg.Precision = precision
	}
	if noHistory {
		cfg.HistoryEnabled = false
	}

	level := logger.ParseLevel(cfg.LogLevel)
	if logToStderr {
		logger.SetGlobal(logger.NewWithWriter(level, os.Stderr, ""))
	} else if err := logger.Init(level, cfg.LogPath); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.Debug("config loaded from %s", path)

	a := &app{cfg: cfg, configPath: path}
	if cfg.HistoryEnabled {
		store, err := history.Open(cfg.HistoryPath)
		if err != nil {
			logger.Warn("history unavailable: %v", err)
		} else {
			store.SetLimit(cfg.HistoryLimit)
			a.history = store
		}
	}

	return a, nil
}

// newCalculator creates a calculator using the configured precision and history
func (a *app) newCalculator() *calculator.Calculator {
	opts := []calculator.Option{calculator.WithPrecision(a.cfg.Precision)}
	if a.history != nil {
		opts = append(opts, calculator.WithRecorder(a.history))
	}
	return calculator.New(opts...)
}

func (a *app) Close() {
	if a.history != nil {
		if err := a.history.Close(); err != nil {
			logger.Warn("failed to close history: %v", err)
		}
	}
	if err := logger.Global().Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to close logger: %v\n", err)
	}
}
