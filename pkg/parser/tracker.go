package parser

import "strings"

// Descriptors 1 and 2 are the traced process's stdout/stderr. They are
// never tracked and never produce actions.
func isStdStream(fd int) bool {
	return fd == 1 || fd == 2
}

// FDTable correlates descriptor numbers with their pending open. One
// entry per currently-open descriptor; reuse after close starts a
// fresh entry. Scoped to a single parse invocation.
type FDTable struct {
	entries map[int]OpenEntry
}

// NewFDTable returns an empty descriptor table.
func NewFDTable() *FDTable {
	return &FDTable{entries: make(map[int]OpenEntry)}
}

// Open records an open-family syscall. The descriptor is the call's
// return value; a negative return (failed open) is still tracked,
// preserving the interval even if its validity is dubious. A call with
// an unresolved return value cannot key the table and is ignored.
func (t *FDTable) Open(rec *SyscallRecord) {
	if !rec.RetKnown || isStdStream(rec.Ret) {
		return
	}
	idx := openPathArg(rec.Syscall)
	if idx >= len(rec.Args) {
		return
	}
	t.entries[rec.Ret] = OpenEntry{
		Path:     strings.Trim(rec.Args[idx], `"`),
		Start:    rec.StartTime,
		HasStart: true,
	}
}

// ResolveClose consumes the entry for a closing descriptor. When the
// descriptor was never observed opening (it existed before the trace
// attached), a default entry is synthesized from the decoded path so
// the close still yields an interval. The second return value reports
// whether the entry was tracked (true) or synthesized (false).
func (t *FDTable) ResolveClose(fd int, path string) (OpenEntry, bool) {
	entry, ok := t.entries[fd]
	if !ok {
		return OpenEntry{Path: path}, false
	}
	delete(t.entries, fd)
	return entry, true
}

// ResolveAccess looks up the entry for a descriptor being read or
// written, without consuming it. Reads and writes never require a
// prior observed open, so an untracked descriptor resolves to the same
// synthesized default as ResolveClose.
func (t *FDTable) ResolveAccess(fd int, path string) (OpenEntry, bool) {
	entry, ok := t.entries[fd]
	if !ok {
		return OpenEntry{Path: path}, false
	}
	return entry, true
}

// Len returns the number of descriptors currently tracked as open.
func (t *FDTable) Len() int {
	return len(t.entries)
}
