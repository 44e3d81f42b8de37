// Package search implements literal, case-insensitive find and replace over
// record text, highlight splitting for rendered spans, and the cyclic
// current-match pointer.
package search

import (
	"regexp"
	"strings"
)

// Range is a half-open byte range [Start, End) of a match within a string.
type Range struct {
	Start int
	End   int
}

// Matcher finds occurrences of one literal term, ignoring case. The zero
// Matcher and a Matcher built from an empty term match nothing.
type Matcher struct {
	term string
	re   *regexp.Regexp
}

// NewMatcher compiles term for literal matching. Characters that have a
// meaning in patterns are quoted, so "a.b" only ever matches "a.b".
func NewMatcher(term string) *Matcher {
	m := &Matcher{term: term}
	if term != "" {
		m.re = regexp.MustCompile("(?i)" + regexp.QuoteMeta(term))
	}
	return m
}

// Term returns the term the matcher was built from.
func (m *Matcher) Term() string {
	if m == nil {
		return ""
	}
	return m.term
}

// Empty reports whether the matcher can never match.
func (m *Matcher) Empty() bool {
	return m == nil || m.re == nil
}

// Find returns the non-overlapping matches in text, left to right.
func (m *Matcher) Find(text string) []Range {
	if m.Empty() || text == "" {
		return nil
	}
	locs := m.re.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return nil
	}
	ranges := make([]Range, len(locs))
	for i, loc := range locs {
		ranges[i] = Range{Start: loc[0], End: loc[1]}
	}
	return ranges
}

// Count returns the number of matches in text.
func (m *Matcher) Count(text string) int {
	if m.Empty() || text == "" {
		return 0
	}
	return len(m.re.FindAllStringIndex(text, -1))
}

// Contains reports whether text has at least one match.
func (m *Matcher) Contains(text string) bool {
	if m.Empty() {
		return false
	}
	return m.re.MatchString(text)
}

// ReplaceAll replaces every match in text with repl, taken literally, and
// returns the new text and the number of replacements.
func (m *Matcher) ReplaceAll(text, repl string) (string, int) {
	n := m.Count(text)
	if n == 0 {
		return text, 0
	}
	return m.re.ReplaceAllLiteralString(text, repl), n
}

// ReplaceNth replaces only the n-th (0-based) match in text. It reports false
// when text has fewer than n+1 matches.
func (m *Matcher) ReplaceNth(text string, n int, repl string) (string, bool) {
	if n < 0 {
		return text, false
	}
	ranges := m.Find(text)
	if n >= len(ranges) {
		return text, false
	}
	r := ranges[n]
	var b strings.Builder
	b.Grow(len(text) - (r.End - r.Start) + len(repl))
	b.WriteString(text[:r.Start])
	b.WriteString(repl)
	b.WriteString(text[r.End:])
	return b.String(), true
}
