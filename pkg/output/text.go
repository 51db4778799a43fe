package output

import (
	"context"
	"fmt"
	"io"

	"github.com/talfridmen/iotracer/pkg/parser"
)

// TextFormatter formats reports as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(_ context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		return f.formatQuiet(report, w)
	}
	return f.formatFull(report, w)
}

func (f *TextFormatter) formatQuiet(report *Report, w io.Writer) error {
	fmt.Fprintf(w, "iotracer: %d actions across %d paths\n",
		report.Summary.Actions, report.Summary.Paths)
	return nil
}

func (f *TextFormatter) formatFull(report *Report, w io.Writer) error {
	fmt.Fprintln(w, "=== File I/O Timeline ===")
	fmt.Fprintln(w)

	for _, path := range report.lanes.Paths() {
		fmt.Fprintf(w, "%s\n", path)
		for _, a := range report.Actions {
			if a.Path != path {
				continue
			}
			f.formatAction(&a, w)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "Summary: %d actions, %d paths\n",
		report.Summary.Actions, report.Summary.Paths)

	if f.opts.Verbose {
		fmt.Fprintf(w, "Lines scanned: %d (%d parsed, %d skipped)\n",
			report.Summary.Lines, report.Summary.Parsed, report.Summary.Skipped)
		fmt.Fprintf(w, "Source: %s\n", report.Metadata.Source)
	}

	return nil
}

func (f *TextFormatter) formatAction(a *parser.Action, w io.Writer) {
	label := kindLabel(a.Kind)

	if !a.HasStart {
		fmt.Fprintf(w, "  %-10s ?..%.6f (opened before trace)\n", label, a.End)
		return
	}

	fmt.Fprintf(w, "  %-10s %.6f..%.6f (%.6fs)\n", label, a.Start, a.End, a.Duration())

	if f.opts.Verbose && a.Synthesized {
		fmt.Fprintf(w, "             descriptor inherited, interval inferred\n")
	}
}

func kindLabel(kind parser.ActionKind) string {
	switch kind {
	case parser.KindRead:
		return "read"
	case parser.KindWrite:
		return "write"
	default:
		return "open/close"
	}
}
