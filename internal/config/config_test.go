package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeConfig() Config {
	return Config{
		DatabaseURL:  "postgres://localhost/content",
		GeminiAPIKey: "gem-key",
		OpenAIAPIKey: "oa-key",
		ImagesDir:    "generated_images",
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"database_url": "postgres://db/x",
		"gemini_api_key": "g",
		"openai_api_key": "o",
		"images_dir": "imgs",
		"workers": 5
	}`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres://db/x", cfg.DatabaseURL)
	assert.Equal(t, "imgs", cfg.ImagesDir)
	assert.Equal(t, 5, cfg.Workers)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o644))
	_, err = LoadConfig(bad)
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://env/db")
	t.Setenv("GEMINI_API_KEY", "env-gem")
	t.Setenv("OPENAI_API_KEY", "env-oa")
	t.Setenv("IMAGES_DIR", "env-images")
	t.Setenv("WORKERS", "7")

	var cfg Config
	cfg.ApplyEnv()

	assert.Equal(t, "postgres://env/db", cfg.DatabaseURL)
	assert.Equal(t, "env-gem", cfg.GeminiAPIKey)
	assert.Equal(t, "env-oa", cfg.OpenAIAPIKey)
	assert.Equal(t, "env-images", cfg.ImagesDir)
	assert.Equal(t, 7, cfg.Workers)
}

func TestApplyEnv_DoesNotOverride(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://env/db")

	cfg := Config{DatabaseURL: "postgres://explicit/db"}
	cfg.ApplyEnv()

	assert.Equal(t, "postgres://explicit/db", cfg.DatabaseURL)
}

func TestMergeWithDefaults(t *testing.T) {
	var cfg Config
	merged := cfg.MergeWithDefaults(Defaults())

	assert.Equal(t, "generated_images", merged.ImagesDir)
	assert.Equal(t, 3, merged.Workers)
	assert.Equal(t, 120, merged.GenTimeoutSeconds)
	assert.Equal(t, 120, merged.ImageTimeoutSeconds)

	cfg = Config{ImagesDir: "custom", Workers: 1}
	merged = cfg.MergeWithDefaults(Defaults())
	assert.Equal(t, "custom", merged.ImagesDir)
	assert.Equal(t, 1, merged.Workers)
}

func TestValidate(t *testing.T) {
	cfg := completeConfig()
	assert.NoError(t, cfg.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing database url", func(c *Config) { c.DatabaseURL = "" }},
		{"missing gemini key", func(c *Config) { c.GeminiAPIKey = "" }},
		{"missing openai key", func(c *Config) { c.OpenAIAPIKey = "" }},
		{"missing images dir", func(c *Config) { c.ImagesDir = "" }},
		{"negative workers", func(c *Config) { c.Workers = -1 }},
		{"negative timeout", func(c *Config) { c.GenTimeoutSeconds = -5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := completeConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
