package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables that override the config file.
const (
	EnvModel     = "WEALTHYWAYS_MODEL"
	EnvHistoryDB = "WEALTHYWAYS_HISTORY_DB"
	EnvHistory   = "WEALTHYWAYS_HISTORY"
	EnvTheme     = "WEALTHYWAYS_THEME"
	EnvAddr      = "WEALTHYWAYS_ADDR"
	EnvLogLevel  = "LOG_LEVEL"
)

// DotEnvFile is read from the working directory when present. Variables
// already set in the environment win over the file.
var DotEnvFile = ".env"

func applyEnv(cfg *Config) error {
	if err := godotenv.Load(DotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("reading %s: %w", DotEnvFile, err)
	}

	if v := os.Getenv(EnvModel); v != "" {
		cfg.Model.Path = v
	}
	if v := os.Getenv(EnvHistoryDB); v != "" {
		cfg.History.Path = v
	}
	if v := os.Getenv(EnvHistory); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvHistory, err)
		}
		cfg.History.Enabled = enabled
	}
	if v := os.Getenv(EnvTheme); v != "" {
		cfg.Appearance.Theme = v
	}
	if v := os.Getenv(EnvAddr); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	return nil
}
