package colorize

import "strings"

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// EscapeHTML escapes the characters that are unsafe in HTML text and
// attribute values.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

var htmlClasses = map[Class]string{
	ClassKey:     "jk",
	ClassString:  "js",
	ClassNumber:  "jn",
	ClassBool:    "jb",
	ClassNull:    "jl",
	ClassBracket: "jp",
	ClassBrace:   "jc",
	ClassColon:   "jx",
	ClassComma:   "jm",
}

// HTML writes spans as HTML markup. Text is escaped after highlighting, so a
// search match never lands inside an entity. Highlighted spans are wrapped in
// <span class="sh">; the span whose Match equals current also gets "cur".
func HTML(spans Spans, current int) string {
	var b strings.Builder
	for _, sp := range spans {
		text := EscapeHTML(sp.Text)
		if sp.Match >= 0 {
			class := "sh"
			if sp.Match == current {
				class = "sh cur"
			}
			text = `<span class="` + class + `">` + text + `</span>`
		}
		if name, ok := htmlClasses[sp.Class]; ok {
			b.WriteString(`<span class="` + name + `">` + text + `</span>`)
			continue
		}
		b.WriteString(text)
	}
	return b.String()
}
