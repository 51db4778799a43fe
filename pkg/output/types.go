// Package output renders a parsed trace timeline as SVG, JSON or text.
package output

import (
	"time"

	"github.com/talfridmen/iotracer/pkg/parser"
)

// Report is the complete output of one trace run.
type Report struct {
	// Summary provides aggregate statistics.
	Summary Summary `json:"summary"`

	// Actions are the completed access intervals, in observation
	// order, with timestamps already normalized unless the report was
	// built with keep-timestamps.
	Actions []parser.Action `json:"actions"`

	// Lanes maps each path to its vertical rendering offset.
	Lanes map[string]int `json:"lanes"`

	// Metadata provides context about the run.
	Metadata Metadata `json:"metadata"`

	lanes *parser.LaneTable
}

// Summary provides aggregate statistics.
type Summary struct {
	// Lines/Parsed/Skipped count the scanned trace lines.
	Lines   int `json:"lines"`
	Parsed  int `json:"parsed"`
	Skipped int `json:"skipped"`

	// Actions is the number of emitted access intervals.
	Actions int `json:"actions"`

	// Paths is the number of distinct paths touched.
	Paths int `json:"paths"`
}

// Metadata provides context about the run.
type Metadata struct {
	// Source describes where the trace came from (file path, command,
	// or pid).
	Source string `json:"source"`

	// Patterns are the glob filters that were applied.
	Patterns []string `json:"patterns"`

	// KeepTimestamps records whether normalization was skipped.
	KeepTimestamps bool `json:"keep_timestamps"`

	// TracedAt is when the trace was parsed.
	TracedAt time.Time `json:"traced_at"`
}

// ReportOptions configures report construction.
type ReportOptions struct {
	Source   string
	Patterns []string

	// KeepTimestamps leaves the actions' absolute trace timestamps in
	// place instead of rebasing them to the earliest observed start.
	KeepTimestamps bool
}

// NewReport builds a Report from a parse result. Unless
// KeepTimestamps is set, timestamps are rebased so the earliest known
// start becomes zero; an action whose own start was never observed
// gets zero as its post-normalization start.
func NewReport(result *parser.Result, opts ReportOptions) *Report {
	actions := result.Actions
	if !opts.KeepTimestamps {
		actions = normalize(actions)
	}

	lanes := make(map[string]int, len(result.Lanes.Paths()))
	for _, p := range result.Lanes.Paths() {
		lanes[p] = result.Lanes.HeightFor(p)
	}

	return &Report{
		Summary: Summary{
			Lines:   result.Stats.Lines,
			Parsed:  result.Stats.Parsed,
			Skipped: result.Stats.Skipped,
			Actions: len(actions),
			Paths:   len(lanes),
		},
		Actions: actions,
		Lanes:   lanes,
		Metadata: Metadata{
			Source:         opts.Source,
			Patterns:       opts.Patterns,
			KeepTimestamps: opts.KeepTimestamps,
			TracedAt:       time.Now(),
		},
		lanes: result.Lanes,
	}
}

// normalize rebases timestamps by the minimum known start. Actions
// with no observed start land at zero.
func normalize(actions []parser.Action) []parser.Action {
	min, ok := minStart(actions)
	if !ok {
		return actions
	}

	out := make([]parser.Action, len(actions))
	for i, a := range actions {
		if a.HasStart {
			a.Start -= min
		} else {
			a.Start = 0
		}
		a.End -= min
		out[i] = a
	}
	return out
}

func minStart(actions []parser.Action) (float64, bool) {
	var min float64
	found := false
	for _, a := range actions {
		if !a.HasStart {
			continue
		}
		if !found || a.Start < min {
			min = a.Start
			found = true
		}
	}
	return min, found
}
