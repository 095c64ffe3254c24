package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/svtypes/internal/fetcher"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "svtypes.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, fetcher.DefaultBaseURL, cfg.Fetch.BaseURL)
	assert.Equal(t, 500*time.Millisecond, cfg.Fetch.Delay)
	assert.Equal(t, "synthesizer-v-api.d.ts", cfg.Generate.Output)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
log:
  level: debug
fetch:
  base_url: https://mirror.example.com/scripting/
  delay: 2s
  timeout: 10s
generate:
  input_dir: pages
  overrides: extra.yml
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format, "unset keys keep their defaults")
	assert.Equal(t, "https://mirror.example.com/scripting/", cfg.Fetch.BaseURL)
	assert.Equal(t, 2*time.Second, cfg.Fetch.Delay)
	assert.Equal(t, 10*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, "dreamtonics-api", cfg.Fetch.OutputDir)
	assert.Equal(t, "pages", cfg.Generate.InputDir)
	assert.Equal(t, "extra.yml", cfg.Generate.Overrides)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err, "an explicit config file must exist")

	_, err = LoadConfig(writeConfig(t, "fetch: [not, a, map]"))
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad base url", func(c *Config) { c.Fetch.BaseURL = "not a url" }},
		{"negative delay", func(c *Config) { c.Fetch.Delay = -time.Second }},
		{"zero timeout", func(c *Config) { c.Fetch.Timeout = 0 }},
		{"empty output dir", func(c *Config) { c.Fetch.OutputDir = "" }},
		{"empty input dir", func(c *Config) { c.Generate.InputDir = "" }},
		{"empty output", func(c *Config) { c.Generate.Output = "" }},
		{"unknown log level", func(c *Config) { c.Log.Level = "verbose" }},
		{"unknown log format", func(c *Config) { c.Log.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	t.Run("zero delay is allowed", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Fetch.Delay = 0
		assert.NoError(t, cfg.Validate())
	})
}
