package colorize

import (
	"strings"
	"unicode/utf8"

	"github.com/grovetools/jsonlview/pkg/record"
)

const (
	// CompactArrayMax is the longest all-scalar array rendered on one line.
	CompactArrayMax = 6
	// PreviewLimit is the default length, in characters, of a collapsed preview.
	PreviewLimit = 220
	// Ellipsis marks a truncated preview.
	Ellipsis = "…"

	indentUnit = "  "
)

// Render colorizes v at the given nesting depth.
func Render(v *record.Value, depth int) Spans {
	var out Spans
	return appendValue(out, v, depth)
}

func appendValue(out Spans, v *record.Value, depth int) Spans {
	switch v.Kind {
	case record.KindNull:
		return append(out, span(ClassNull, "null"))
	case record.KindBool:
		if v.Bool {
			return append(out, span(ClassBool, "true"))
		}
		return append(out, span(ClassBool, "false"))
	case record.KindNumber:
		return append(out, span(ClassNumber, v.Number))
	case record.KindString:
		return append(out, span(ClassString, quote(v.Str)))
	case record.KindArray:
		return appendArray(out, v, depth)
	case record.KindObject:
		return appendObject(out, v, depth)
	default:
		return append(out, span(ClassPlain, v.Compact()))
	}
}

func appendObject(out Spans, v *record.Value, depth int) Spans {
	if len(v.Members) == 0 {
		return append(out, span(ClassBrace, "{}"))
	}
	ind := indent(depth + 1)
	out = append(out, span(ClassBrace, "{"), span(ClassPlain, "\n"))
	for i, m := range v.Members {
		out = append(out, span(ClassPlain, ind), span(ClassKey, quote(m.Key)), span(ClassColon, ": "))
		out = appendValue(out, m.Value, depth+1)
		if i < len(v.Members)-1 {
			out = append(out, span(ClassComma, ","))
		}
		out = append(out, span(ClassPlain, "\n"))
	}
	return appendClose(out, ClassBrace, "}", depth)
}

func appendArray(out Spans, v *record.Value, depth int) Spans {
	if len(v.Items) == 0 {
		return append(out, span(ClassBracket, "[]"))
	}

	if isCompactArray(v) {
		out = append(out, span(ClassBracket, "["))
		for i, item := range v.Items {
			if i > 0 {
				out = append(out, span(ClassComma, ", "))
			}
			out = appendValue(out, item, depth)
		}
		return append(out, span(ClassBracket, "]"))
	}

	ind := indent(depth + 1)
	out = append(out, span(ClassBracket, "["), span(ClassPlain, "\n"))
	for i, item := range v.Items {
		out = append(out, span(ClassPlain, ind))
		out = appendValue(out, item, depth+1)
		if i < len(v.Items)-1 {
			out = append(out, span(ClassComma, ","))
		}
		out = append(out, span(ClassPlain, "\n"))
	}
	return appendClose(out, ClassBracket, "]", depth)
}

func appendClose(out Spans, c Class, text string, depth int) Spans {
	if depth > 0 {
		out = append(out, span(ClassPlain, indent(depth)))
	}
	return append(out, span(c, text))
}

func isCompactArray(v *record.Value) bool {
	if len(v.Items) > CompactArrayMax {
		return false
	}
	for _, item := range v.Items {
		if !item.IsScalar() {
			return false
		}
	}
	return true
}

func indent(depth int) string {
	return strings.Repeat(indentUnit, depth)
}

// quote renders s as a JSON string literal, leaving non-ASCII text as is.
// Control characters are shown as escapes so a value can never inject line
// breaks or terminal sequences.
func quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch {
		case r == '"' || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case r < 0x20 || r == 0x7f:
			const hex = "0123456789abcdef"
			b.WriteString(`\u00`)
			b.WriteByte(hex[r>>4])
			b.WriteByte(hex[r&0xf])
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// Preview renders the collapsed form of v: compact JSON cut to limit
// characters with a trailing ellipsis, as a single uncolored span.
func Preview(v *record.Value, limit int) Spans {
	if limit <= 0 {
		limit = PreviewLimit
	}
	return Spans{span(ClassPlain, Truncate(v.Compact(), limit))}
}

// Truncate cuts s to limit characters and appends Ellipsis when it was longer.
func Truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i] + Ellipsis
		}
		n++
	}
	return s
}

// Raw renders text verbatim as a single uncolored span. Used for the raw view
// and for records that failed to parse.
func Raw(text string) Spans {
	return Spans{span(ClassPlain, text)}
}
