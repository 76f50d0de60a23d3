package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"checkmk-matrix-notify/config"
)

// InitLogger initializes the structured logger. Diagnostics go to
// standard error; standard output is reserved for the single success
// line the monitoring system consumes.
func InitLogger() *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)
	return logger
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (config.AppConfig, error) {
	// Load .env file if it exists (development)
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return config.AppConfig{}, fmt.Errorf("load .env file: %w", err)
		}
	}

	var cfg config.AppConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	cfg.Sanitize()
	return cfg, nil
}

// MissingVars extracts the names of required environment variables
// that were absent or empty. A non-empty result means the failure is
// permanent misconfiguration: the caller must exit with the no-retry
// status and must not attempt delivery.
func MissingVars(err error) []string {
	var agg env.AggregateError
	if !errors.As(err, &agg) {
		return nil
	}

	var missing []string
	for _, e := range agg.Errors {
		var notSet env.EnvVarIsNotSetError
		if errors.As(e, &notSet) {
			missing = append(missing, notSet.Key)
			continue
		}
		var empty env.EmptyVarError
		if errors.As(e, &empty) {
			missing = append(missing, empty.Key)
		}
	}
	return missing
}
