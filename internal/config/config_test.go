package config

import (
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Colors.K != 5 {
		t.Errorf("Expected default K 5, got %d", cfg.Colors.K)
	}
	if cfg.Insight.Backend != "none" {
		t.Errorf("Expected default backend none, got %s", cfg.Insight.Backend)
	}
	if cfg.Insight.Model != "minicpm-v" {
		t.Errorf("Expected default model minicpm-v, got %s", cfg.Insight.Model)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"zero k", func(c *Config) { c.Colors.K = 0 }, true},
		{"huge k", func(c *Config) { c.Colors.K = 100 }, true},
		{"negative quality floor", func(c *Config) { c.Detection.MinQuality = -1 }, true},
		{"bad backend", func(c *Config) { c.Insight.Backend = "openai" }, true},
		{"empty backend", func(c *Config) { c.Insight.Backend = "" }, false},
		{"negative dim", func(c *Config) { c.Insight.MaxImageDim = -1 }, true},
		{"zero jpeg quality", func(c *Config) { c.Insight.JPEGQuality = 0 }, true},
		{"jpeg quality over 100", func(c *Config) { c.Insight.JPEGQuality = 101 }, true},
	}

	for _, tt := range tests {
		cfg := Default()
		tt.modify(cfg)
		err := cfg.Validate()
		if tt.wantErr && err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
		if !tt.wantErr && err != nil {
			t.Errorf("%s: unexpected error: %v", tt.name, err)
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg := Default()
	cfg.Colors.K = 8
	cfg.Insight.Backend = "ollama"
	cfg.Detection.CascadePath = "/opt/cascades/facefinder"

	if err := cfg.SaveToFile(path); err != nil {
		t.Fatalf("SaveToFile failed: %v", err)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if loaded.Colors.K != 8 {
		t.Errorf("Expected K 8, got %d", loaded.Colors.K)
	}
	if loaded.Insight.Backend != "ollama" {
		t.Errorf("Expected backend ollama, got %s", loaded.Insight.Backend)
	}
	if loaded.Detection.CascadePath != "/opt/cascades/facefinder" {
		t.Errorf("Cascade path lost in round trip: %s", loaded.Detection.CascadePath)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if _, err := LoadFromFile("/nonexistent/config.json"); err == nil {
		t.Error("Expected error for missing config file")
	}
}

func TestGetConfigPath(t *testing.T) {
	if GetConfigPath() == "" {
		t.Error("GetConfigPath should never be empty")
	}
}
