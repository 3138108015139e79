package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// ---------------------------------------------------------------------------
// Configuration structs
// ---------------------------------------------------------------------------

// Config is the top-level configuration for the sentiment dashboard.
type Config struct {
	API       API       `yaml:"api"`
	Dashboard Dashboard `yaml:"dashboard"`
	Logging   Logging   `yaml:"logging"`
}

// API holds the sentiment service endpoint configuration.
type API struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Timeout returns the request timeout as a duration.
func (a API) Timeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// Dashboard holds display defaults for both clients.
type Dashboard struct {
	DefaultSymbol string `yaml:"default_symbol"`
	ChartHeight   int    `yaml:"chart_height"`
}

// Logging configures the application logger.
type Logging struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default returns the built-in configuration. The dashboard is usable with
// no config file at all when the sentiment service runs on its default port.
func Default() *Config {
	return &Config{
		API: API{
			BaseURL:        "http://localhost:8000",
			TimeoutSeconds: 10,
		},
		Dashboard: Dashboard{
			DefaultSymbol: "AAPL",
			ChartHeight:   12,
		},
		Logging: Logging{
			Level: "info",
		},
	}
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// Load builds the configuration: built-in defaults, then the YAML file at
// path (skipped when path is empty), then environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// applyEnvOverrides checks well-known environment variables and overrides the
// corresponding configuration fields when they are set.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SENTIMENT_API_URL"); v != "" {
		cfg.API.BaseURL = v
	}

	if v := os.Getenv("SENTIMENT_API_TIMEOUT"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.API.TimeoutSeconds = secs
		}
	}

	if v := os.Getenv("SENTIMENT_DEFAULT_SYMBOL"); v != "" {
		cfg.Dashboard.DefaultSymbol = v
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}

	if v := os.Getenv("SENTIMENT_LOG_FILE"); v != "" {
		cfg.Logging.File = v
	}
}
