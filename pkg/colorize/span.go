// Package colorize renders parsed JSON values as classified text spans.
//
// Spans carry unescaped text. Escaping for a particular output medium is the
// job of a sink (see HTML, and the terminal renderer in tui/theme), which runs
// only after search highlighting has fixed the span boundaries.
package colorize

import "strings"

// Class is the semantic class of a span.
type Class int

const (
	ClassPlain Class = iota
	ClassKey
	ClassString
	ClassNumber
	ClassBool
	ClassNull
	ClassBracket
	ClassBrace
	ClassColon
	ClassComma
)

var classNames = [...]string{
	ClassPlain:   "plain",
	ClassKey:     "key",
	ClassString:  "string",
	ClassNumber:  "number",
	ClassBool:    "bool",
	ClassNull:    "null",
	ClassBracket: "bracket",
	ClassBrace:   "brace",
	ClassColon:   "colon",
	ClassComma:   "comma",
}

// String returns the lower-case class name.
func (c Class) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}
	return "plain"
}

// Span is a run of text with a single class. Match is the ordinal of the
// search match covering the span within its record, or -1.
type Span struct {
	Class Class
	Text  string
	Match int
}

// Spans is a rendered token stream.
type Spans []Span

// Text concatenates the text of all spans.
func (s Spans) Text() string {
	var b strings.Builder
	for _, sp := range s {
		b.WriteString(sp.Text)
	}
	return b.String()
}

// Lines splits the stream at newline characters. Newlines are removed; a span
// containing newlines is split into pieces of the same class.
func (s Spans) Lines() []Spans {
	lines := []Spans{nil}
	for _, sp := range s {
		parts := strings.Split(sp.Text, "\n")
		for i, part := range parts {
			if i > 0 {
				lines = append(lines, nil)
			}
			if part != "" {
				piece := sp
				piece.Text = part
				lines[len(lines)-1] = append(lines[len(lines)-1], piece)
			}
		}
	}
	return lines
}

func span(c Class, text string) Span {
	return Span{Class: c, Text: text, Match: -1}
}
