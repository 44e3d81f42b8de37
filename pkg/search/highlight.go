package search

import "github.com/grovetools/jsonlview/pkg/colorize"

// Highlight splits spans at match edges and marks every matched piece with
// its ordinal, starting at first. Matching runs inside each span's text, so a
// highlight never crosses a token boundary. It returns the new spans and the
// number of matches found.
func Highlight(spans colorize.Spans, m *Matcher, first int) (colorize.Spans, int) {
	if m.Empty() {
		return spans, 0
	}

	out := make(colorize.Spans, 0, len(spans))
	ordinal := first
	for _, sp := range spans {
		ranges := m.Find(sp.Text)
		if len(ranges) == 0 {
			out = append(out, sp)
			continue
		}
		pos := 0
		for _, r := range ranges {
			if r.Start > pos {
				out = append(out, colorize.Span{Class: sp.Class, Text: sp.Text[pos:r.Start], Match: -1})
			}
			out = append(out, colorize.Span{Class: sp.Class, Text: sp.Text[r.Start:r.End], Match: ordinal})
			ordinal++
			pos = r.End
		}
		if pos < len(sp.Text) {
			out = append(out, colorize.Span{Class: sp.Class, Text: sp.Text[pos:], Match: -1})
		}
	}
	return out, ordinal - first
}
