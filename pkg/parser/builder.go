package parser

import (
	"bufio"
	"fmt"
	"io"
)

// Options configures a parse run.
type Options struct {
	// Patterns are glob include filters applied to every emitted
	// action's path. Empty means DefaultPatterns (include everything).
	Patterns []string
}

// Stats counts what happened to the scanned lines.
type Stats struct {
	Lines   int `json:"lines"`   // lines scanned
	Parsed  int `json:"parsed"`  // lines matching the grammar
	Skipped int `json:"skipped"` // noise lines dropped
}

// Result is the outcome of one parse run: the completed access
// intervals in the order they were observed closing, plus the lane
// assignments for rendering.
type Result struct {
	Actions []Action
	Lanes   *LaneTable
	Stats   Stats
}

// Parse scans the trace once, line by line, correlating descriptor
// lifecycles into actions. Lines that do not match the grammar are
// dropped. A missing descriptor/path annotation on a read, write or
// close is fatal: continuing would desynchronize the descriptor table
// for every subsequent line.
func Parse(r io.Reader, opts Options) (*Result, error) {
	matcher, err := NewMatcher(opts.Patterns)
	if err != nil {
		return nil, err
	}

	b := &builder{
		fds:     NewFDTable(),
		matcher: matcher,
		result:  &Result{Lanes: NewLaneTable()},
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024) // 1MB max line size

	for scanner.Scan() {
		b.result.Stats.Lines++
		rec, ok := ParseLine(scanner.Text())
		if !ok {
			b.result.Stats.Skipped++
			continue
		}
		b.result.Stats.Parsed++
		if err := b.consume(rec); err != nil {
			return nil, fmt.Errorf("line %d: %w", b.result.Stats.Lines, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading trace: %w", err)
	}

	return b.result, nil
}

// builder holds the mutable state of one parse run.
type builder struct {
	fds     *FDTable
	matcher *Matcher
	result  *Result
}

func (b *builder) consume(rec *SyscallRecord) error {
	switch {
	case openSyscalls[rec.Syscall]:
		b.fds.Open(rec)

	case closeSyscalls[rec.Syscall]:
		fd, path, err := b.decodeFirstArg(rec)
		if err != nil || isStdStream(fd) {
			return err
		}
		entry, tracked := b.fds.ResolveClose(fd, path)
		b.emit(Action{
			Path:        entry.Path,
			Start:       entry.Start,
			HasStart:    entry.HasStart,
			End:         rec.StartTime + rec.Duration,
			Kind:        KindOpenClose,
			Synthesized: !tracked,
		})

	case readSyscalls[rec.Syscall], writeSyscalls[rec.Syscall]:
		fd, path, err := b.decodeFirstArg(rec)
		if err != nil || isStdStream(fd) {
			return err
		}
		entry, tracked := b.fds.ResolveAccess(fd, path)
		kind := KindRead
		if writeSyscalls[rec.Syscall] {
			kind = KindWrite
		}
		// Each read/write is its own interval, timed by the call
		// itself, never merged with siblings on the same descriptor.
		b.emit(Action{
			Path:        entry.Path,
			Start:       rec.StartTime,
			HasStart:    true,
			End:         rec.StartTime + rec.Duration,
			Kind:        kind,
			Synthesized: !tracked,
		})
	}
	return nil
}

func (b *builder) decodeFirstArg(rec *SyscallRecord) (int, string, error) {
	if len(rec.Args) == 0 {
		return 0, "", &DecodeError{Arg: ""}
	}
	return DecodeFdArg(rec.Args[0])
}

// emit appends the action if its path passes the include filter, and
// lazily assigns the path its rendering lane.
func (b *builder) emit(a Action) {
	if !b.matcher.Match(a.Path) {
		return
	}
	b.result.Lanes.HeightFor(a.Path)
	b.result.Actions = append(b.result.Actions, a)
}
