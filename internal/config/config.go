package config

import (
	"os"
	"strconv"

	"randeval/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Analysis AnalysisConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// AnalysisConfig holds defaults for an analysis session
type AnalysisConfig struct {
	// DefaultAlpha is used when a caller does not specify a
	// significance level.
	DefaultAlpha float64
	// ChiIntervals is the default number of class intervals for the
	// chi-square and Kolmogorov-Smirnov goodness-of-fit tests.
	ChiIntervals int
	// RunsThreshold splits the sequence into above/below symbols for
	// the runs above/below test family.
	RunsThreshold float64
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Analysis: AnalysisConfig{
			DefaultAlpha:  0.05,
			ChiIntervals:  10,
			RunsThreshold: 0.5,
		},
	}

	if v := os.Getenv("DEFAULT_ALPHA"); v != "" {
		alpha, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, errors.Wrap(err, "invalid DEFAULT_ALPHA")
		}
		cfg.Analysis.DefaultAlpha = alpha
	}
	if v := os.Getenv("CHI_INTERVALS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.Wrap(err, "invalid CHI_INTERVALS")
		}
		cfg.Analysis.ChiIntervals = n
	}
	if v := os.Getenv("RUNS_THRESHOLD"); v != "" {
		t, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, errors.Wrap(err, "invalid RUNS_THRESHOLD")
		}
		cfg.Analysis.RunsThreshold = t
	}

	if err := validate(cfg); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if !(cfg.Analysis.DefaultAlpha > 0 && cfg.Analysis.DefaultAlpha < 1) {
		return errors.New(errors.CodeConfig, "DEFAULT_ALPHA must be in (0,1)")
	}
	if cfg.Analysis.ChiIntervals < 2 {
		return errors.New(errors.CodeConfig, "CHI_INTERVALS must be at least 2")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
