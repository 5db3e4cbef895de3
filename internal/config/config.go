package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/codefionn/calcschnell/internal/consts"
)

const appName = "calcschnell"

// Environment variables overriding file values
const (
	EnvLogLevel    = "CALCSCHNELL_LOG_LEVEL"
	EnvLogPath     = "CALCSCHNELL_LOG_PATH"
	EnvHistoryPath = "CALCSCHNELL_HISTORY_PATH"
)

// Config represents application configuration
type Config struct {
	LogLevel       string `json:"log_level"` // debug, info, warn, error, none
	LogPath        string `json:"-"`
	Precision      int    `json:"precision"` // -1 for shortest form, otherwise fixed fractional digits
	HistoryEnabled bool   `json:"history_enabled"`
	HistoryLimit   int    `json:"history_limit"`
	HistoryPath    string `json:"-"`
	ServeAddr      string `json:"serve_addr"`
	Mouse          bool   `json:"mouse"` // enable mouse clicks on the keypad
}

func defaultConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		if appData := strings.TrimSpace(os.Getenv("APPDATA")); appData != "" {
			return filepath.Join(appData, appName)
		}
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, "AppData", "Roaming", appName)
	default:
		if configHome := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); configHome != "" {
			return filepath.Join(configHome, appName)
		}
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, ".config", appName)
	}
}

func defaultStateDir() string {
	switch runtime.GOOS {
	case "linux":
		if stateHome := strings.TrimSpace(os.Getenv("XDG_STATE_HOME")); stateHome != "" {
			return filepath.Join(stateHome, appName)
		}
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, ".local", "state", appName)
	case "windows":
		if localAppData := strings.TrimSpace(os.Getenv("LOCALAPPDATA")); localAppData != "" {
			return filepath.Join(localAppData, appName)
		}
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, "AppData", "Local", appName)
	default:
		return defaultConfigDir()
	}
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	stateDir := defaultStateDir()

	return &Config{
		LogLevel:       "info",
		LogPath:        filepath.Join(stateDir, appName+".log"),
		Precision:      consts.DefaultPrecision,
		HistoryEnabled: true,
		HistoryLimit:   consts.DefaultHistoryLimit,
		HistoryPath:    filepath.Join(stateDir, "history.db"),
		ServeAddr:      consts.DefaultServeAddr,
		Mouse:          true,
	}
}

// Load loads configuration from file, overlaying it on the defaults.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, err
	}

	// Unmarshal into default config (overrides only provided fields)
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	defaults := DefaultConfig()
	if strings.TrimSpace(config.LogLevel) == "" {
		config.LogLevel = defaults.LogLevel
	}
	if config.HistoryLimit <= 0 {
		config.HistoryLimit = defaults.HistoryLimit
	}
	if strings.TrimSpace(config.ServeAddr) == "" {
		config.ServeAddr = defaults.ServeAddr
	}
	if config.Precision < consts.DefaultPrecision {
		config.Precision = consts.DefaultPrecision
	}

	return config, nil
}

// ApplyEnvOverrides lets environment variables override file values
func (c *Config) ApplyEnvOverrides() {
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.LogLevel = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogPath)); v != "" {
		c.LogPath = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvHistoryPath)); v != "" {
		c.HistoryPath = v
	}
}

// Save saves configuration to file
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// GetConfigPath returns the default config path
func GetConfigPath() string {
	return filepath.Join(defaultConfigDir(), "config.json")
}
