package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	// FetchIntervalMinutes is how often the fetch cycle runs.
	FetchIntervalMinutes int `yaml:"fetch_interval_minutes"`
	// Symbols is the ordered ticker list, fixed for the process lifetime.
	Symbols []string `yaml:"symbols"`
	// LogLevel is one of DEBUG, INFO, WARN, ERROR.
	LogLevel string `yaml:"log_level"`
	// Port for the HTTP server.
	Port int `yaml:"port"`
	// MaxDataAgeSeconds is accepted for compatibility with existing
	// deployments but currently read by nothing in the fetch/serve path.
	MaxDataAgeSeconds int `yaml:"max_data_age_seconds"`
	// DataSource selects the fetcher: "yahoo" (default) or "mock".
	DataSource string `yaml:"data_source"`
	// Proxy is an optional outbound HTTP proxy URL.
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file (if it exists), then applies
// environment variable overrides, then fills defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if len(data) > 0 {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	// Environment variable overrides
	if v := os.Getenv("FETCH_INTERVAL"); v != "" {
		var n int
		if _, err := fmt.Sscanf(v, "%d", &n); err == nil {
			cfg.FetchIntervalMinutes = n
		}
	}
	if v := os.Getenv("SYMBOLS"); v != "" {
		cfg.Symbols = splitSymbols(v)
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("PORT"); v != "" {
		var n int
		if _, err := fmt.Sscanf(v, "%d", &n); err == nil {
			cfg.Port = n
		}
	}
	if v := os.Getenv("MAX_DATA_AGE_SECONDS"); v != "" {
		var n int
		if _, err := fmt.Sscanf(v, "%d", &n); err == nil {
			cfg.MaxDataAgeSeconds = n
		}
	}
	if v := os.Getenv("DATA_SOURCE"); v != "" {
		cfg.DataSource = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Symbols are case-normalized once here; everything downstream
	// (cache keys, API responses, dashboard) uses the upper-cased form.
	for i, s := range cfg.Symbols {
		cfg.Symbols[i] = strings.ToUpper(strings.TrimSpace(s))
	}

	// Defaults
	if cfg.FetchIntervalMinutes == 0 {
		cfg.FetchIntervalMinutes = 5
	}
	if len(cfg.Symbols) == 0 {
		cfg.Symbols = []string{"MSTR", "MSTU"}
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "INFO"
	}
	if cfg.Port == 0 {
		cfg.Port = 8000
	}
	if cfg.MaxDataAgeSeconds == 0 {
		cfg.MaxDataAgeSeconds = 24 * 60 * 60
	}
	if cfg.DataSource == "" {
		cfg.DataSource = "yahoo"
	}

	return cfg, nil
}

// Validate checks that all required fields are usable.
func (c *Config) Validate() error {
	if c.FetchIntervalMinutes <= 0 {
		return fmt.Errorf("fetch_interval_minutes must be positive")
	}
	if len(c.Symbols) == 0 {
		return fmt.Errorf("symbols must not be empty")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.MaxDataAgeSeconds < 0 {
		return fmt.Errorf("max_data_age_seconds must not be negative")
	}
	if c.DataSource != "yahoo" && c.DataSource != "mock" {
		return fmt.Errorf("data_source must be yahoo or mock, got %q", c.DataSource)
	}
	return nil
}

// FetchInterval returns the fetch interval as a duration.
func (c *Config) FetchInterval() time.Duration {
	return time.Duration(c.FetchIntervalMinutes) * time.Minute
}

func splitSymbols(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToUpper(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
