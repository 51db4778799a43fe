package output

import (
	"context"
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/talfridmen/iotracer/pkg/parser"
)

// Style describes how one action kind is drawn.
type Style struct {
	Stroke      string
	Fill        string
	FillOpacity float64
	StrokeWidth float64
}

// css renders the style as an inline SVG style attribute value.
func (s Style) css() string {
	return fmt.Sprintf("stroke:%s;fill:%s;fill-opacity:%g;stroke-width:%g",
		s.Stroke, s.Fill, s.FillOpacity, s.StrokeWidth)
}

// styleFor maps the three action kinds to their styles: open-to-close
// lifetimes are unfilled outlines, reads and writes translucent fills.
func styleFor(kind parser.ActionKind) Style {
	switch kind {
	case parser.KindRead:
		return Style{Stroke: "lightgreen", Fill: "lightgreen", FillOpacity: 0.5, StrokeWidth: 0.1}
	case parser.KindWrite:
		return Style{Stroke: "lightblue", Fill: "lightblue", FillOpacity: 0.5, StrokeWidth: 0.1}
	default:
		return Style{Stroke: "black", Fill: "white", FillOpacity: 0, StrokeWidth: 0.1}
	}
}

// SVGFormatter draws the timeline: one labeled row per path at its
// assigned lane height, one rectangle per action.
type SVGFormatter struct {
	opts FormatOptions
}

// NewSVGFormatter creates a new SVG formatter with the given options.
func NewSVGFormatter(opts FormatOptions) *SVGFormatter {
	if opts.Scale <= 0 {
		opts.Scale = 1000
	}
	if opts.RowHeight <= 0 {
		opts.RowHeight = 20
	}
	return &SVGFormatter{opts: opts}
}

// Name returns the format name.
func (f *SVGFormatter) Name() string {
	return "svg"
}

// Format renders the report as an SVG document. Seconds are converted
// to pixels by the configured scale; an action whose start was never
// observed draws from x=0.
func (f *SVGFormatter) Format(_ context.Context, report *Report, w io.Writer) error {
	canvas := svg.New(w)
	canvas.Start(f.canvasWidth(report), f.canvasHeight(report))

	for _, path := range report.lanes.Paths() {
		canvas.Text(5, report.Lanes[path]+15, path)
	}

	for _, a := range report.Actions {
		x := 0
		if a.HasStart {
			x = f.px(a.Start)
		}
		width := f.px(a.End) - x
		if width < 1 {
			width = 1
		}
		canvas.Rect(x, report.Lanes[a.Path], width, f.opts.RowHeight,
			fmt.Sprintf("style=%q", styleFor(a.Kind).css()))
	}

	canvas.End()
	return nil
}

// px converts seconds to pixels, rounding to the nearest pixel so
// accumulated float error cannot shave a column off an interval.
func (f *SVGFormatter) px(seconds float64) int {
	return int(math.Round(seconds * float64(f.opts.Scale)))
}

func (f *SVGFormatter) canvasWidth(report *Report) int {
	var maxEnd float64
	for _, a := range report.Actions {
		if a.End > maxEnd {
			maxEnd = a.End
		}
	}
	return f.px(maxEnd) + 20
}

func (f *SVGFormatter) canvasHeight(report *Report) int {
	return report.lanes.Max() + f.opts.RowHeight + 10
}
