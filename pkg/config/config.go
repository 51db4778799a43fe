package config

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/talfridmen/iotracer/pkg/parser"
)

// Load reads and validates a configuration file layered over the
// defaults.
func Load(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks a configuration for errors.
func Validate(cfg *Config) error {
	if _, err := parser.NewMatcher(cfg.Patterns); err != nil {
		return fmt.Errorf("patterns: %w", err)
	}

	switch cfg.Output.Format {
	case "svg", "json", "text":
	default:
		return fmt.Errorf("output.format: invalid format %q (must be svg, json, or text)", cfg.Output.Format)
	}

	if cfg.Output.Scale <= 0 {
		return fmt.Errorf("output.scale: must be positive, got %d", cfg.Output.Scale)
	}
	if cfg.Output.RowHeight <= 0 {
		return fmt.Errorf("output.row_height: must be positive, got %d", cfg.Output.RowHeight)
	}

	return nil
}
