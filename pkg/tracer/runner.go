// Package tracer acquires raw strace output from a live command or a
// running process. The parser itself is agnostic to where the text
// came from; this package is the collaborator that produces it.
package tracer

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// DefaultBinary is the tracer executable invoked when none is
// configured.
const DefaultBinary = "strace"

// traceFlags asks strace for absolute microsecond timestamps (-ttt),
// per-call durations (-T), followed forks (-f), and descriptor
// arguments annotated with their resolved paths (--decode-fds=path).
// The decorated annotations are what descriptor correlation depends
// on.
var traceFlags = []string{"-tttTf", "--decode-fds=path"}

// Runner invokes the tracer.
type Runner struct {
	// Binary is the strace executable; DefaultBinary when empty.
	Binary string
}

// CommandArgs returns the tracer invocation for running a command
// under the tracer. Exposed for testing; the command string is split
// on whitespace, as the tracer receives it argv-style.
func (r *Runner) CommandArgs(command string) []string {
	return append(append([]string{}, traceFlags...), strings.Fields(command)...)
}

// AttachArgs returns the tracer invocation for attaching to a pid.
func (r *Runner) AttachArgs(pid int) []string {
	return append(append([]string{}, traceFlags...), "-p", strconv.Itoa(pid))
}

// Run executes command under the tracer and returns the raw trace
// text. strace writes the trace to stderr; the traced command's own
// stdout/stderr are discarded.
func (r *Runner) Run(ctx context.Context, command string) (string, error) {
	return r.capture(ctx, r.CommandArgs(command))
}

// Attach attaches the tracer to a running process until it exits or
// the context is cancelled, and returns the raw trace text.
func (r *Runner) Attach(ctx context.Context, pid int) (string, error) {
	return r.capture(ctx, r.AttachArgs(pid))
}

func (r *Runner) capture(ctx context.Context, args []string) (string, error) {
	binary := r.Binary
	if binary == "" {
		binary = DefaultBinary
	}

	cmd := exec.CommandContext(ctx, binary, args...)
	var stderr strings.Builder
	cmd.Stderr = &stderr

	// The traced program may legitimately fail; the trace on stderr is
	// still worth parsing. Only a missing tracer binary is fatal.
	if err := cmd.Run(); err != nil {
		if _, ok := err.(*exec.ExitError); !ok {
			return "", fmt.Errorf("running %s: %w", binary, err)
		}
	}

	return stderr.String(), nil
}

// SaveRaw persists a captured trace next to the invocation so a run
// can be re-parsed later without re-tracing. Returns the written path.
func SaveRaw(dir, trace string) (string, error) {
	name := "iotracer.strace-" + time.Now().Format("20060102150405")
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(trace), 0o644); err != nil {
		return "", fmt.Errorf("saving raw trace: %w", err)
	}
	return path, nil
}
