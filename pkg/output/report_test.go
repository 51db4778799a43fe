package output

import (
	"math"
	"strings"
	"testing"

	"github.com/talfridmen/iotracer/pkg/parser"
)

func almost(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func sampleResult(t *testing.T) *parser.Result {
	t.Helper()
	trace := `10.000 openat(AT_FDCWD, "/tmp/f", O_RDONLY) = 3 <0.001>
10.002 read(3</tmp/f>, "", 10) = 10 <0.003>
10.010 close(3</tmp/f>) = 0 <0.001>
10.020 close(5</inherited>) = 0 <0.001>
`
	result, err := parser.Parse(strings.NewReader(trace), parser.Options{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return result
}

func TestNewReport_Normalizes(t *testing.T) {
	report := NewReport(sampleResult(t), ReportOptions{Source: "test"})

	// Earliest known start (10.000) becomes zero.
	read := report.Actions[0]
	if !almost(read.Start, 0.002) {
		t.Errorf("read start = %v, want 0.002", read.Start)
	}
	if !almost(read.End, 0.005) {
		t.Errorf("read end = %v, want 0.005", read.End)
	}

	oc := report.Actions[1]
	if oc.Start != 0 || !almost(oc.End, 0.011) {
		t.Errorf("open_close = [%v, %v], want [0, 0.011]", oc.Start, oc.End)
	}
}

func TestNewReport_AbsentStartBecomesZero(t *testing.T) {
	report := NewReport(sampleResult(t), ReportOptions{Source: "test"})

	inherited := report.Actions[2]
	if inherited.HasStart {
		t.Fatal("inherited close should have no start")
	}
	if inherited.Start != 0 {
		t.Errorf("post-normalization start = %v, want sentinel 0", inherited.Start)
	}
	if !almost(inherited.End, 0.021) {
		t.Errorf("end = %v, want 0.021", inherited.End)
	}
}

func TestNewReport_KeepTimestamps(t *testing.T) {
	report := NewReport(sampleResult(t), ReportOptions{Source: "test", KeepTimestamps: true})

	if report.Actions[0].Start != 10.002 {
		t.Errorf("start = %v, want absolute 10.002", report.Actions[0].Start)
	}
	if !report.Metadata.KeepTimestamps {
		t.Error("metadata does not record keep-timestamps mode")
	}
}

func TestNewReport_Summary(t *testing.T) {
	report := NewReport(sampleResult(t), ReportOptions{Source: "test"})

	if report.Summary.Actions != 3 {
		t.Errorf("Actions = %d, want 3", report.Summary.Actions)
	}
	if report.Summary.Paths != 2 {
		t.Errorf("Paths = %d, want 2", report.Summary.Paths)
	}
	if report.Summary.Parsed != 4 {
		t.Errorf("Parsed = %d, want 4", report.Summary.Parsed)
	}
}

func TestNewReport_Lanes(t *testing.T) {
	report := NewReport(sampleResult(t), ReportOptions{Source: "test"})

	if report.Lanes["/tmp/f"] != 40 {
		t.Errorf("/tmp/f lane = %d, want 40", report.Lanes["/tmp/f"])
	}
	if report.Lanes["/inherited"] != 70 {
		t.Errorf("/inherited lane = %d, want 70", report.Lanes["/inherited"])
	}
}
