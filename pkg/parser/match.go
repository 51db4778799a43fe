package parser

import (
	"fmt"

	"github.com/gobwas/glob"
)

// DefaultPatterns matches every path.
var DefaultPatterns = []string{"*"}

// Matcher tests paths against a set of shell-style glob include
// patterns (*, ?, character classes). A path is included when it
// matches at least one pattern.
type Matcher struct {
	globs []glob.Glob
}

// NewMatcher compiles the patterns. An empty set falls back to
// DefaultPatterns. Compilation errors surface before any parsing
// begins, so a malformed pattern cannot silently drop actions mid-run.
func NewMatcher(patterns []string) (*Matcher, error) {
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}
	m := &Matcher{globs: make([]glob.Glob, 0, len(patterns))}
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", p, err)
		}
		m.globs = append(m.globs, g)
	}
	return m, nil
}

// Match reports whether the path matches at least one pattern.
func (m *Matcher) Match(path string) bool {
	for _, g := range m.globs {
		if g.Match(path) {
			return true
		}
	}
	return false
}
