package search

// Position locates one match in a document: the line it is on and its
// ordinal among the matches of that line.
type Position struct {
	Line       int
	Occurrence int
}

// CountLines returns the number of matches across all lines.
func CountLines(lines []string, m *Matcher) int {
	total := 0
	for _, line := range lines {
		total += m.Count(line)
	}
	return total
}

// Locate maps a document-wide match ordinal, counted in line order and left to
// right within a line, to its Position.
func Locate(lines []string, m *Matcher, n int) (Position, bool) {
	if n < 0 || m.Empty() {
		return Position{}, false
	}
	for i, line := range lines {
		c := m.Count(line)
		if n < c {
			return Position{Line: i, Occurrence: n}, true
		}
		n -= c
	}
	return Position{}, false
}

// ReplaceNth replaces the n-th match of the document and leaves every other
// occurrence untouched. It returns the position that was replaced and the new
// text of that line; lines itself is not modified.
func ReplaceNth(lines []string, m *Matcher, n int, repl string) (Position, string, bool) {
	pos, ok := Locate(lines, m, n)
	if !ok {
		return Position{}, "", false
	}
	text, ok := m.ReplaceNth(lines[pos.Line], pos.Occurrence, repl)
	if !ok {
		return Position{}, "", false
	}
	return pos, text, true
}
