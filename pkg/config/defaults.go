package config

import "os"

// Default values for configuration.
const (
	DefaultFormat    = "svg"
	DefaultScale     = 1000 // px per second
	DefaultRowHeight = 20
)

// Environment variable names.
const (
	EnvStraceBinary = "IOTRACER_STRACE_BIN"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Patterns: []string{"*"},
		Strace: StraceConfig{
			SaveRaw: true,
		},
		Output: OutputConfig{
			Format:    DefaultFormat,
			Scale:     DefaultScale,
			RowHeight: DefaultRowHeight,
		},
	}
}

// applyEnvironmentOverrides applies environment variable overrides to
// the config.
func (c *Config) applyEnvironmentOverrides() {
	if bin := os.Getenv(EnvStraceBinary); bin != "" {
		c.Strace.Binary = bin
	}
}
