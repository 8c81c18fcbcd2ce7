package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.APIPort != "8080" {
		t.Errorf("expected default APIPort=8080, got %s", cfg.APIPort)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("expected default LogLevel=info, got %s", cfg.LogLevel)
	}

	if cfg.Debounce != DefaultDebounce {
		t.Errorf("expected default Debounce=%s, got %s", DefaultDebounce, cfg.Debounce)
	}

	if cfg.BasePath != "" {
		t.Errorf("expected empty BasePath, got %q", cfg.BasePath)
	}
}

func TestLoadWithEnv(t *testing.T) {
	t.Setenv("API_PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SEARCH_BASE_PATH", "../")
	t.Setenv("SEARCH_DEBOUNCE", "50ms")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.APIPort != "9000" {
		t.Errorf("expected APIPort=9000, got %s", cfg.APIPort)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("expected LogLevel=debug, got %s", cfg.LogLevel)
	}

	if cfg.BasePath != "../" {
		t.Errorf("expected BasePath=../, got %q", cfg.BasePath)
	}

	if cfg.Debounce != 50*time.Millisecond {
		t.Errorf("expected Debounce=50ms, got %s", cfg.Debounce)
	}
}

func TestLoadInvalidDebounce(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"unparsable", "soon"},
		{"zero", "0s"},
		{"negative", "-1s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SEARCH_DEBOUNCE", tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("expected error for SEARCH_DEBOUNCE=%q", tt.value)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sitesearch.yaml")
	content := "siteRoot: ./site\nbasePath: ../../\ndebounce: 150ms\napiPort: \"7000\"\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("API_PORT", "7100")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.SiteRoot != "./site" {
		t.Errorf("expected SiteRoot=./site, got %s", cfg.SiteRoot)
	}
	if cfg.BasePath != "../../" {
		t.Errorf("expected BasePath=../../, got %s", cfg.BasePath)
	}
	if cfg.Debounce != 150*time.Millisecond {
		t.Errorf("expected Debounce=150ms, got %s", cfg.Debounce)
	}
	if cfg.APIPort != "7100" {
		t.Errorf("expected env to override file APIPort, got %s", cfg.APIPort)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	if _, err := Load(); err == nil {
		t.Error("expected error for missing config file")
	}
}
