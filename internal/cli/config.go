package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/example/svtypes/internal/fetcher"
	"github.com/example/svtypes/internal/logger"
)

// DefaultConfigPath is read when --config is not given and the file exists.
const DefaultConfigPath = ".svtypes.yml"

// Config is the merged configuration of both commands.
type Config struct {
	Log      logger.Config  `yaml:"log"`
	Fetch    FetchConfig    `yaml:"fetch"`
	Generate GenerateConfig `yaml:"generate"`
}

// FetchConfig controls the page download.
type FetchConfig struct {
	BaseURL   string        `yaml:"base_url" validate:"required,url"`
	OutputDir string        `yaml:"output_dir" validate:"required"`
	Delay     time.Duration `yaml:"delay" validate:"min=0"`
	Timeout   time.Duration `yaml:"timeout" validate:"gt=0"`
	UserAgent string        `yaml:"user_agent"`
}

// GenerateConfig controls parsing and rendering.
type GenerateConfig struct {
	InputDir  string `yaml:"input_dir" validate:"required"`
	Output    string `yaml:"output" validate:"required"`
	Overrides string `yaml:"overrides"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		Log: logger.Config{Level: "info", Format: "text"},
		Fetch: FetchConfig{
			BaseURL:   fetcher.DefaultBaseURL,
			OutputDir: "dreamtonics-api",
			Delay:     fetcher.DefaultDelay,
			Timeout:   fetcher.DefaultTimeout,
			UserAgent: fetcher.DefaultUserAgent,
		},
		Generate: GenerateConfig{
			InputDir: "dreamtonics-api",
			Output:   "synthesizer-v-api.d.ts",
		},
	}
}

// LoadConfig reads path on top of the defaults. An empty path falls back to
// DefaultConfigPath, which may be absent.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Validate checks the merged configuration.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
