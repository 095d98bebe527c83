// Package config provides configuration utilities for the application.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/pennyworth-app/pennyworth/internal/common"
)

// Config holds the engine settings loaded from the config file and
// PENNY_-prefixed environment variables.
type Config struct {
	DBPath          string
	DefaultCurrency string
	WindowDays      int
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		DBPath:          "~/.local/share/penny/penny.db",
		DefaultCurrency: "USD",
		WindowDays:      30,
	}
}

// Load reads configuration from Viper, falling back to defaults. Follows
// this precedence:
// 1. Viper configuration (from config file or PENNY_ env vars)
// 2. Default values
func Load() (Config, error) {
	cfg := Default()

	if v := viper.GetString("database.path"); v != "" {
		cfg.DBPath = v
	}
	if v := viper.GetString("currency"); v != "" {
		cfg.DefaultCurrency = v
	}
	if v := viper.GetInt("bills.window_days"); v != 0 {
		cfg.WindowDays = v
	}

	cfg.DBPath = ExpandPath(cfg.DBPath)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the loaded configuration.
func (c Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("%w: database path", common.ErrMissingConfig)
	}
	if c.WindowDays <= 0 {
		return fmt.Errorf("%w: bills window must be positive, got %d", common.ErrInvalidConfig, c.WindowDays)
	}
	return nil
}

// ExpandPath expands ~ and environment variables in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}
