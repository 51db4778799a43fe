package output

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/talfridmen/iotracer/pkg/parser"
)

func renderSVG(t *testing.T, opts FormatOptions) string {
	t.Helper()
	report := NewReport(sampleResult(t), ReportOptions{Source: "test"})

	var buf bytes.Buffer
	f := NewSVGFormatter(opts)
	if err := f.Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	return buf.String()
}

func TestSVGFormatter_Document(t *testing.T) {
	out := renderSVG(t, FormatOptions{})

	if !strings.Contains(out, "<svg") || !strings.Contains(out, "</svg>") {
		t.Error("output is not an SVG document")
	}
	if strings.Count(out, "<rect") != 3 {
		t.Errorf("got %d rects, want 3", strings.Count(out, "<rect"))
	}
}

func TestSVGFormatter_PathLabels(t *testing.T) {
	out := renderSVG(t, FormatOptions{})

	if !strings.Contains(out, ">/tmp/f</text>") {
		t.Error("missing /tmp/f label")
	}
	if !strings.Contains(out, ">/inherited</text>") {
		t.Error("missing /inherited label")
	}
	// Labels sit 15px below the lane top, 5px from the left edge.
	if !strings.Contains(out, `x="5" y="55"`) {
		t.Error("first label not at (5, 55)")
	}
}

func TestSVGFormatter_Styles(t *testing.T) {
	out := renderSVG(t, FormatOptions{})

	if !strings.Contains(out, "stroke:lightgreen;fill:lightgreen;fill-opacity:0.5") {
		t.Error("read style missing")
	}
	if !strings.Contains(out, "stroke:black;fill:white;fill-opacity:0") {
		t.Error("open_close style missing")
	}
}

func TestSVGFormatter_Scale(t *testing.T) {
	// Read interval [0.002, 0.005] at 1000 px/s → x=2, width=3.
	out := renderSVG(t, FormatOptions{Scale: 1000, RowHeight: 20})
	if !strings.Contains(out, `x="2" y="40" width="3" height="20"`) {
		t.Errorf("read rect not scaled as expected:\n%s", out)
	}
}

func TestSVGFormatter_AbsentStartDrawsFromZero(t *testing.T) {
	out := renderSVG(t, FormatOptions{Scale: 1000, RowHeight: 20})

	// Inherited close: no start, end 0.021 → x=0, width=21, lane 70.
	if !strings.Contains(out, `x="0" y="70" width="21" height="20"`) {
		t.Errorf("inherited rect not drawn from zero:\n%s", out)
	}
}

func TestStyleFor_CoversAllKinds(t *testing.T) {
	tests := []struct {
		kind   parser.ActionKind
		stroke string
	}{
		{parser.KindOpenClose, "black"},
		{parser.KindRead, "lightgreen"},
		{parser.KindWrite, "lightblue"},
	}

	for _, tt := range tests {
		style := styleFor(tt.kind)
		if style.Stroke != tt.stroke {
			t.Errorf("styleFor(%s).Stroke = %q, want %q", tt.kind, style.Stroke, tt.stroke)
		}
		if style.StrokeWidth != 0.1 {
			t.Errorf("styleFor(%s).StrokeWidth = %v, want 0.1", tt.kind, style.StrokeWidth)
		}
	}
}
