// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config represents the job configuration. Values can come from a JSON file,
// CLI flags or the environment; flags win over file values, and the
// environment backfills whatever is still empty.
type Config struct {
	// Connections
	DatabaseURL   string `json:"database_url,omitempty"`   // PostgreSQL connection URL
	GeminiAPIKey  string `json:"gemini_api_key,omitempty"` // Content generation capability
	OpenAIAPIKey  string `json:"openai_api_key,omitempty"` // Image generation capability
	OpenAIBaseURL string `json:"openai_base_url,omitempty"` // Override for the images endpoint

	// Output
	ImagesDir string `json:"images_dir,omitempty"` // Directory for generated images

	// Behavior
	Workers             int  `json:"workers,omitempty"`               // Bounded parallelism across entries
	GenTimeoutSeconds   int  `json:"gen_timeout_seconds,omitempty"`   // Per-call bound for content generation
	ImageTimeoutSeconds int  `json:"image_timeout_seconds,omitempty"` // Per-call bound for image synthesis
	Verbose             bool `json:"verbose,omitempty"`               // Debug-level logging
}

// Defaults returns the built-in defaults for optional values.
func Defaults() Config {
	return Config{
		ImagesDir:           "generated_images",
		Workers:             3,
		GenTimeoutSeconds:   120,
		ImageTimeoutSeconds: 120,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// ApplyEnv backfills empty values from the environment.
func (c *Config) ApplyEnv() {
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if c.GeminiAPIKey == "" {
		c.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.OpenAIAPIKey == "" {
		c.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	}
	if c.OpenAIBaseURL == "" {
		c.OpenAIBaseURL = os.Getenv("OPENAI_BASE_URL")
	}
	if c.ImagesDir == "" {
		c.ImagesDir = os.Getenv("IMAGES_DIR")
	}
	if c.Workers == 0 {
		if n, err := strconv.Atoi(os.Getenv("WORKERS")); err == nil && n > 0 {
			c.Workers = n
		}
	}
}

// MergeWithDefaults returns a new Config with unset fields filled from
// defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.ImagesDir == "" {
		result.ImagesDir = defaults.ImagesDir
	}
	if result.Workers == 0 {
		result.Workers = defaults.Workers
	}
	if result.GenTimeoutSeconds == 0 {
		result.GenTimeoutSeconds = defaults.GenTimeoutSeconds
	}
	if result.ImageTimeoutSeconds == 0 {
		result.ImageTimeoutSeconds = defaults.ImageTimeoutSeconds
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// Validate checks that every required value is present and ranges are sane.
// A missing required value is a startup-time fatal error, never a per-entry
// one.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("config error: database URL is required (DATABASE_URL env var, --db-url flag, or config file)")
	}
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("config error: Gemini API key is required (GEMINI_API_KEY env var, --gemini-key flag, or config file)")
	}
	if c.OpenAIAPIKey == "" {
		return fmt.Errorf("config error: OpenAI API key is required (OPENAI_API_KEY env var, --openai-key flag, or config file)")
	}
	if c.ImagesDir == "" {
		return fmt.Errorf("config error: images directory must not be empty")
	}
	if c.Workers < 0 {
		return fmt.Errorf("config error: 'workers' must be non-negative")
	}
	if c.GenTimeoutSeconds < 0 || c.ImageTimeoutSeconds < 0 {
		return fmt.Errorf("config error: timeouts must be non-negative")
	}
	return nil
}
