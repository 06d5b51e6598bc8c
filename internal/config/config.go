package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds the application configuration
type Config struct {
	Colors    ColorsConfig    `json:"colors"`
	Detection DetectionConfig `json:"detection"`
	Insight   InsightConfig   `json:"insight"`
	Output    OutputConfig    `json:"output"`
}

// ColorsConfig holds configuration for dominant-color extraction
type ColorsConfig struct {
	K int `json:"k"`
}

// DetectionConfig holds configuration for face detection
type DetectionConfig struct {
	// CascadePath points at a pigo binary cascade file. Empty disables
	// face detection (zero faces reported).
	CascadePath string  `json:"cascade_path"`
	MinQuality  float64 `json:"min_quality"`
}

// InsightConfig holds configuration for the external vision-model call
type InsightConfig struct {
	// Backend selects the insight client: "ollama", "llamacpp" or
	// "none".
	Backend     string `json:"backend"`
	URL         string `json:"url"`
	Model       string `json:"model"`
	MaxImageDim int    `json:"max_image_dim"`
	JPEGQuality int    `json:"jpeg_quality"`

	// Basic selects the short analysis prompt for faster models.
	Basic bool `json:"basic"`
}

// OutputConfig holds configuration for profile output
type OutputConfig struct {
	Pretty bool   `json:"pretty"`
	Path   string `json:"path"`
}

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		Colors: ColorsConfig{
			K: 5,
		},
		Detection: DetectionConfig{
			CascadePath: "",
			MinQuality:  5.0,
		},
		Insight: InsightConfig{
			Backend:     "none",
			URL:         "http://localhost:11434",
			Model:       "minicpm-v",
			MaxImageDim: 1024,
			JPEGQuality: 85,
		},
		Output: OutputConfig{
			Pretty: true,
			Path:   "",
		},
	}
}

// LoadFromFile loads configuration from a JSON file
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// SaveToFile saves configuration to a JSON file
func (c *Config) SaveToFile(filename string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Colors.K < 1 || c.Colors.K > 64 {
		return fmt.Errorf("colors.k must be between 1 and 64")
	}

	if c.Detection.MinQuality < 0 {
		return fmt.Errorf("detection.min_quality must not be negative")
	}

	switch c.Insight.Backend {
	case "ollama", "llamacpp", "none", "":
	default:
		return fmt.Errorf("insight.backend must be one of: ollama, llamacpp, none")
	}

	if c.Insight.MaxImageDim < 0 {
		return fmt.Errorf("insight.max_image_dim must not be negative")
	}

	if c.Insight.JPEGQuality < 1 || c.Insight.JPEGQuality > 100 {
		return fmt.Errorf("insight.jpeg_quality must be between 1 and 100")
	}

	return nil
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./config.json"
	}
	return filepath.Join(home, ".config", "image-profiler", "config.json")
}
