package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Line grammar for strace run with -tttT:
//
//	<start_time> <syscall>(<args>) = <return_code>[<decorated>] ... <duration>
//
// The return value may itself carry a decorated path (--decode-fds),
// and resumed/annotated calls insert extra text before the trailing
// duration, so both are tolerated.
var lineRe = regexp.MustCompile(
	`^([\d.]+) (\w+)\((.*)\)\s+= (-?\d+|0x[0-9a-f]+|\?)(?:<.*?>)? (?:.* )?<([\d.]+)>`)

// Decorated descriptor arguments look like 3</tmp/file>: the numeric
// descriptor annotated by strace with its resolved path.
var decoratedRe = regexp.MustCompile(`^(.*?)<(.*)>$`)

// DecodeError reports a read/write/close argument that was expected to
// carry a descriptor/path annotation but did not. It is fatal to the
// parse run: continuing would desynchronize the descriptor table for
// every later line.
type DecodeError struct {
	Arg string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("argument %q is not a decorated descriptor (was strace run with --decode-fds=path?)", e.Arg)
}

// ParseLine parses one raw trace line into a SyscallRecord. The second
// return value is false for lines that do not match the grammar;
// tracer banners, signal notices and partial lines are expected noise
// and are the caller's cue to skip.
func ParseLine(line string) (*SyscallRecord, bool) {
	m := lineRe.FindStringSubmatch(line)
	if m == nil {
		return nil, false
	}

	start, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil, false
	}
	duration, err := strconv.ParseFloat(m[5], 64)
	if err != nil {
		return nil, false
	}

	rec := &SyscallRecord{
		StartTime: start,
		Syscall:   m[2],
		Args:      splitArgs(m[3]),
		Duration:  duration,
	}

	// "?" marks a return value strace could not resolve.
	if ret := m[4]; ret != "?" {
		var n int64
		if strings.Contains(ret, "x") {
			n, err = strconv.ParseInt(strings.TrimPrefix(ret, "0x"), 16, 64)
		} else {
			n, err = strconv.ParseInt(ret, 10, 64)
		}
		if err == nil {
			rec.Ret = int(n)
			rec.RetKnown = true
		}
	}

	return rec, true
}

// DecodeFdArg extracts the descriptor and resolved path from a
// decorated argument like 3</etc/passwd>. A malformed annotation
// returns a *DecodeError.
func DecodeFdArg(arg string) (int, string, error) {
	m := decoratedRe.FindStringSubmatch(arg)
	if m == nil {
		return 0, "", &DecodeError{Arg: arg}
	}
	fd, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, "", &DecodeError{Arg: arg}
	}
	return fd, m[2], nil
}

func splitArgs(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	args := make([]string, len(parts))
	for i, p := range parts {
		args[i] = strings.TrimSpace(p)
	}
	return args
}
