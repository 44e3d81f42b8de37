package viewer

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/grovetools/jsonlview/pkg/colorize"
	"github.com/grovetools/jsonlview/pkg/search"
)

// renderedOrdinal maps a match occurrence counted in the raw line to the
// ordinal of the same match among the highlights of base. It returns -1 when
// the rendered form does not show that occurrence verbatim, for example when
// it sits inside an escape sequence, under a duplicate key or across tokens.
func renderedOrdinal(raw string, base colorize.Spans, m *search.Matcher, occurrence int) int {
	matches := m.Find(raw)
	if occurrence < 0 || occurrence >= len(matches) {
		return -1
	}
	target := matches[occurrence]

	// Raw view, parse errors and collapsed previews are a single span that
	// repeats a prefix of the raw line.
	if len(base) == 1 {
		text := base[0].Text
		if !strings.HasPrefix(raw, strings.TrimSuffix(text, colorize.Ellipsis)) {
			return -1
		}
		return indexOfRange(m.Find(text), target)
	}

	rawTokens := lexTokens(raw)
	src, ok := tokenAt(rawTokens, target)
	if !ok || src.path == "" || countPath(rawTokens, src.path) != 1 {
		return -1
	}
	text := raw[src.Start:src.End]
	within := indexOfRange(m.Find(text), search.Range{
		Start: target.Start - src.Start,
		End:   target.End - src.Start,
	})
	if within < 0 {
		return -1
	}

	rendered := base.Text()
	var dst token
	found := false
	for _, t := range lexTokens(rendered) {
		if t.path == src.path {
			dst, found = t, true
			break
		}
	}
	if !found || rendered[dst.Start:dst.End] != text {
		return -1
	}

	before, offset := 0, 0
	for _, sp := range base {
		if offset == dst.Start && sp.Text == text {
			return before + within
		}
		before += m.Count(sp.Text)
		offset += len(sp.Text)
	}
	return -1
}

func indexOfRange(ranges []search.Range, r search.Range) int {
	for i, got := range ranges {
		if got == r {
			return i
		}
	}
	return -1
}

// token is a lexed JSON token. Keys and scalars carry the path of the place
// they occupy in the document; punctuation has an empty path.
type token struct {
	search.Range
	path string
}

func tokenAt(tokens []token, r search.Range) (token, bool) {
	for _, t := range tokens {
		if t.Start <= r.Start && r.End <= t.End {
			return t, true
		}
	}
	return token{}, false
}

func countPath(tokens []token, path string) int {
	n := 0
	for _, t := range tokens {
		if t.path == path {
			n++
		}
	}
	return n
}

type frame struct {
	object  bool
	wantKey bool
	key     string
	index   int
}

func location(stack []frame) string {
	var b strings.Builder
	for _, f := range stack {
		if f.object {
			b.WriteByte('.')
			b.WriteString(strconv.Quote(f.key))
		} else {
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(f.index))
			b.WriteByte(']')
		}
	}
	return b.String()
}

// lexTokens splits a JSON text into tokens: strings with their quotes,
// punctuation, numbers and literals. Whitespace is skipped. Object keys are
// compared decoded, so "\\u0041" and "A" name the same member.
func lexTokens(s string) []token {
	var (
		out   []token
		stack []frame
	)
	top := func() *frame {
		if len(stack) == 0 {
			return nil
		}
		return &stack[len(stack)-1]
	}
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			i++
			continue
		case c == '{' || c == '[':
			stack = append(stack, frame{object: c == '{', wantKey: c == '{'})
			out = append(out, token{Range: search.Range{Start: i, End: i + 1}})
			i++
			continue
		case c == '}' || c == ']':
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			out = append(out, token{Range: search.Range{Start: i, End: i + 1}})
			i++
			continue
		case c == ',':
			if f := top(); f != nil {
				if f.object {
					f.wantKey = true
				} else {
					f.index++
				}
			}
			out = append(out, token{Range: search.Range{Start: i, End: i + 1}})
			i++
			continue
		case c == ':':
			if f := top(); f != nil {
				f.wantKey = false
			}
			out = append(out, token{Range: search.Range{Start: i, End: i + 1}})
			i++
			continue
		}

		j := scanScalar(s, i)
		t := token{Range: search.Range{Start: i, End: j}}
		if f := top(); f != nil && f.object && f.wantKey && c == '"' {
			f.key = decodeKey(s[i:j])
			t.path = location(stack) + "#key"
		} else {
			t.path = location(stack) + "#value"
		}
		out = append(out, t)
		i = j
	}
	return out
}

// scanScalar returns the end of the string, number or literal starting at i.
func scanScalar(s string, i int) int {
	if s[i] != '"' {
		j := i
		for j < len(s) && strings.IndexByte(" \t\r\n{}[],:\"", s[j]) < 0 {
			j++
		}
		return j
	}
	j := i + 1
	for j < len(s) {
		switch s[j] {
		case '\\':
			j += 2
		case '"':
			return j + 1
		default:
			j++
		}
	}
	return len(s)
}

func decodeKey(lit string) string {
	var key string
	if err := json.Unmarshal([]byte(lit), &key); err != nil {
		return lit
	}
	return key
}
