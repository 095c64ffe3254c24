// Package cli provides the svtypes-fetch and svtypes-gen commands.
package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/example/svtypes/internal/logger"
)

// commonFlags are shared by both commands.
type commonFlags struct {
	configPath string
	logLevel   string
	logFormat  string
}

func (f *commonFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.configPath, "config", "", "Path to config file (default "+DefaultConfigPath+" if present)")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "info", "Log level: debug, info, warn or error")
	cmd.Flags().StringVar(&f.logFormat, "log-format", "text", "Log format: text or json")
}

// load reads the config file and applies the flags the user set, which win
// over file values.
func (f *commonFlags) load(cmd *cobra.Command, apply func(cfg *Config, changed func(string) bool)) (Config, *slog.Logger, error) {
	cfg, err := LoadConfig(f.configPath)
	if err != nil {
		return cfg, nil, err
	}

	changed := cmd.Flags().Changed
	if changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
	if changed("log-format") {
		cfg.Log.Format = f.logFormat
	}
	apply(&cfg, changed)

	if err := cfg.Validate(); err != nil {
		return cfg, nil, err
	}
	return cfg, logger.NewLogger(cfg.Log, cmd.ErrOrStderr()), nil
}

// ExecuteFetch runs the download command with the process arguments.
func ExecuteFetch() error {
	return NewFetchCommand().Execute()
}

// ExecuteGenerate runs the declaration generator with the process arguments.
func ExecuteGenerate() error {
	return NewGenerateCommand().Execute()
}
