// Package config provides configuration loading and validation for iotracer.
package config

// Config is the root configuration structure loaded from YAML. Every
// field has a default; the config file and command-line flags only
// override.
type Config struct {
	// Patterns are glob include filters for traced paths.
	Patterns []string `yaml:"patterns,omitempty"`

	// KeepTimestamps disables timestamp normalization, keeping the
	// absolute times recorded in the trace.
	KeepTimestamps bool `yaml:"keep_timestamps,omitempty"`

	Strace StraceConfig `yaml:"strace,omitempty"`
	Output OutputConfig `yaml:"output,omitempty"`
}

// StraceConfig controls how the tracer is invoked.
type StraceConfig struct {
	// Binary is the strace executable to invoke.
	Binary string `yaml:"binary,omitempty"`

	// SaveRaw persists the captured trace to the working directory
	// after a live run.
	SaveRaw bool `yaml:"save_raw,omitempty"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	// Format selects the report renderer (svg, json, text).
	Format string `yaml:"format,omitempty"`

	// Scale is the SVG horizontal resolution in pixels per second.
	Scale int `yaml:"scale,omitempty"`

	// RowHeight is the height in pixels of one action rectangle.
	RowHeight int `yaml:"row_height,omitempty"`
}
