// Package config provides application configuration from an optional YAML
// file and environment variables.
package config

import (
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// DefaultDebounce is the input quiet period before a search runs
const DefaultDebounce = 200 * time.Millisecond

// Config holds application configuration
type Config struct {
	SiteRoot  string        `yaml:"siteRoot"`
	BasePath  string        `yaml:"basePath"`
	IndexPath string        `yaml:"index"`
	Debounce  time.Duration `yaml:"debounce"`
	APIHost   string        `yaml:"apiHost"`
	APIPort   string        `yaml:"apiPort"`
	LogLevel  string        `yaml:"logLevel"`
}

// Load reads configuration from CONFIG_FILE (when set) and then applies
// environment variables on top.
func Load() (*Config, error) {
	cfg := &Config{
		SiteRoot: "./public",
		Debounce: DefaultDebounce,
		APIHost:  "127.0.0.1",
		APIPort:  "8080",
		LogLevel: "info",
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	cfg.SiteRoot = getEnv("SITE_ROOT", cfg.SiteRoot)
	cfg.BasePath = getEnv("SEARCH_BASE_PATH", cfg.BasePath)
	cfg.IndexPath = getEnv("SEARCH_INDEX", cfg.IndexPath)
	cfg.APIHost = getEnv("API_HOST", cfg.APIHost)
	cfg.APIPort = getEnv("API_PORT", cfg.APIPort)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)

	if v := os.Getenv("SEARCH_DEBOUNCE"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SEARCH_DEBOUNCE %q: %w", v, err)
		}
		cfg.Debounce = d
	}

	if cfg.Debounce <= 0 {
		return nil, fmt.Errorf("debounce must be positive, got %s", cfg.Debounce)
	}
	if cfg.SiteRoot == "" {
		return nil, fmt.Errorf("SITE_ROOT is required")
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
