// Package parser turns raw strace output into a timeline of file accesses.
package parser

// SyscallRecord is a single parsed trace line.
type SyscallRecord struct {
	// StartTime is the timestamp of the call in seconds, monotonic
	// within a single trace.
	StartTime float64

	// Syscall is the bare syscall name (e.g. "openat").
	Syscall string

	// Args are the raw argument tokens, comma-split and trimmed.
	// No structural parsing happens at this stage.
	Args []string

	// Ret is the numeric return value. Only meaningful when RetKnown
	// is true; strace prints "?" for calls it could not resolve.
	Ret int

	// RetKnown reports whether Ret carries a value.
	RetKnown bool

	// Duration is the wall-clock cost of the call in seconds.
	Duration float64
}

// OpenEntry is the pending-open state for one file descriptor.
type OpenEntry struct {
	// Path is the file the descriptor refers to.
	Path string

	// Start is when the descriptor was opened. Only meaningful when
	// HasStart is true; a descriptor inherited from before the trace
	// attached has no observed open time.
	Start float64

	// HasStart reports whether Start carries a value.
	HasStart bool
}

// ActionKind classifies a completed access interval.
type ActionKind string

const (
	// KindOpenClose is an open-to-close descriptor lifetime.
	KindOpenClose ActionKind = "open_close"
	// KindRead is a single read call.
	KindRead ActionKind = "read"
	// KindWrite is a single write call.
	KindWrite ActionKind = "write"
)

// Action is a completed, filtered access interval.
type Action struct {
	Path string `json:"path"`

	// Start is the interval start in seconds. Only meaningful when
	// HasStart is true: an OPEN_CLOSE interval for a descriptor that
	// existed before the trace attached has no observed start.
	Start    float64 `json:"start"`
	HasStart bool    `json:"has_start"`

	// End is the interval end in seconds (call start + call duration).
	End float64 `json:"end"`

	Kind ActionKind `json:"kind"`

	// Synthesized marks an interval whose descriptor was never
	// observed opening; its open metadata is inferred from the
	// decorated argument rather than a tracked open call.
	Synthesized bool `json:"synthesized,omitempty"`
}

// Duration returns the interval length in seconds, zero when the start
// was never observed.
func (a Action) Duration() float64 {
	if !a.HasStart {
		return 0
	}
	return a.End - a.Start
}

// Syscall classification. Only these participate in interval
// reconstruction; every other record passes through untouched.
var (
	openSyscalls  = map[string]bool{"open": true, "openat": true}
	closeSyscalls = map[string]bool{"close": true}
	readSyscalls  = map[string]bool{"read": true}
	writeSyscalls = map[string]bool{"write": true}
)

// openPathArg returns the argument index holding the target path of an
// open-family syscall: open(path, ...) carries it first, while
// openat(dirfd, path, ...) carries it second.
func openPathArg(syscall string) int {
	if syscall == "openat" {
		return 1
	}
	return 0
}
