package output

import (
	"context"
	"io"
)

// Formatter renders a trace report in a specific format.
type Formatter interface {
	// Format renders the report to the given writer.
	Format(ctx context.Context, report *Report, w io.Writer) error

	// Name returns the format name (svg, json, text).
	Name() string
}

// FormatOptions controls formatter behavior.
type FormatOptions struct {
	// Verbose enables detailed output including per-action listings.
	Verbose bool

	// Quiet enables minimal summary-only output.
	Quiet bool

	// Scale is the SVG horizontal resolution in pixels per second.
	Scale int

	// RowHeight is the SVG height of one action rectangle.
	RowHeight int
}
