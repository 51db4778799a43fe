package output

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
)

func TestJSONFormatter_Full(t *testing.T) {
	report := NewReport(sampleResult(t), ReportOptions{Source: "capture.strace", Patterns: []string{"*"}})

	var buf bytes.Buffer
	f := NewJSONFormatter(FormatOptions{})
	if err := f.Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var decoded struct {
		Summary Summary `json:"summary"`
		Actions []struct {
			Path string `json:"path"`
			Kind string `json:"kind"`
		} `json:"actions"`
		Lanes    map[string]int `json:"lanes"`
		Metadata Metadata       `json:"metadata"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if decoded.Summary.Actions != 3 {
		t.Errorf("summary.actions = %d, want 3", decoded.Summary.Actions)
	}
	if len(decoded.Actions) != 3 {
		t.Fatalf("got %d actions, want 3", len(decoded.Actions))
	}
	if decoded.Actions[0].Kind != "read" {
		t.Errorf("first action kind = %q, want read", decoded.Actions[0].Kind)
	}
	if decoded.Lanes["/tmp/f"] != 40 {
		t.Errorf("lanes[/tmp/f] = %d, want 40", decoded.Lanes["/tmp/f"])
	}
	if decoded.Metadata.Source != "capture.strace" {
		t.Errorf("metadata.source = %q", decoded.Metadata.Source)
	}
}

func TestJSONFormatter_Quiet(t *testing.T) {
	report := NewReport(sampleResult(t), ReportOptions{Source: "capture.strace"})

	var buf bytes.Buffer
	f := NewJSONFormatter(FormatOptions{Quiet: true})
	if err := f.Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var summary Summary
	if err := json.Unmarshal(buf.Bytes(), &summary); err != nil {
		t.Fatalf("quiet output is not a summary: %v", err)
	}
	if summary.Actions != 3 || summary.Paths != 2 {
		t.Errorf("summary = %+v", summary)
	}
}
