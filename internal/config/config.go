package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds every runtime setting, loaded from DASHBOARD_* environment
// variables with the defaults below.
type Config struct {
	Port         int           `envconfig:"PORT" default:"8080"`
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout  time.Duration `envconfig:"IDLE_TIMEOUT" default:"60s"`

	RawDir       string `envconfig:"RAW_DIR" default:"data/raw"`
	ProcessedDir string `envconfig:"PROCESSED_DIR" default:"data/processed"`
	DBPath       string `envconfig:"DB_PATH" default:"dashboard.db"`

	// Plausible bounds for the year field after coercion; rows outside the
	// range are dropped and counted. The source series span 2003-2024.
	MinYear int `envconfig:"MIN_YEAR" default:"2000"`
	MaxYear int `envconfig:"MAX_YEAR" default:"2035"`

	// Institutions are cleaned in parallel, at most this many at a time.
	CleanWorkers int `envconfig:"CLEAN_WORKERS" default:"2"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("DASHBOARD", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks settings that envconfig defaults cannot guarantee.
func (c *Config) Validate() error {
	if c.MinYear > c.MaxYear {
		return fmt.Errorf("invalid year range: min %d > max %d", c.MinYear, c.MaxYear)
	}
	if c.CleanWorkers < 1 {
		return fmt.Errorf("clean workers must be at least 1, got %d", c.CleanWorkers)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	return nil
}
