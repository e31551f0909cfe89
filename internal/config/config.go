// Package config handles the smoke runner configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the smoke runner.
type Config struct {
	// Env selects the "<Env>.env" file loaded before reading variables.
	Env string
	// LogLevel is the minimum logged level. Default: debug
	LogLevel string
	// LogFormat is "console" or "json". Default: console
	LogFormat string
	// TargetDir is the directory listed by the file_list test case.
	// Default: the user home directory
	TargetDir string
	// WorkDir is the directory the random_file test case writes to.
	// Default: the current working directory
	WorkDir string
}

// Load reads configuration from environment variables, after loading the
// optional env file. Variables already set in the environment take
// precedence over the file.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.Env = os.Getenv("SMOKE_ENV")

	if err := loadEnvFile(cfg.Env); err != nil {
		return nil, err
	}

	cfg.LogLevel = strings.ToLower(getEnvOrDefault("LOG_LEVEL", "debug"))
	cfg.LogFormat = strings.ToLower(getEnvOrDefault("LOG_FORMAT", "console"))
	if cfg.LogFormat != "console" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("invalid LOG_FORMAT: %q", cfg.LogFormat)
	}

	cfg.TargetDir = os.Getenv("SMOKE_TARGET_DIR")
	if cfg.TargetDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		cfg.TargetDir = home
	}
	cfg.WorkDir = os.Getenv("SMOKE_WORK_DIR")

	return cfg, nil
}

// loadEnvFile loads "<env>.env", or ".env" when env is empty.
// A missing file is not an error.
func loadEnvFile(env string) error {
	err := godotenv.Load(env + ".env")
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("failed to load %s.env: %w", env, err)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
