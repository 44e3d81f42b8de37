package colorize

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/jsonlview/pkg/record"
)

func decode(t *testing.T, text string) *record.Value {
	t.Helper()
	v, err := record.Decode(text)
	require.NoError(t, err)
	return v
}

func TestRenderScalars(t *testing.T) {
	tests := []struct {
		input string
		class Class
		text  string
	}{
		{"null", ClassNull, "null"},
		{"true", ClassBool, "true"},
		{"false", ClassBool, "false"},
		{"1.50", ClassNumber, "1.50"},
		{`"hi"`, ClassString, `"hi"`},
		{`"a\nb"`, ClassString, `"a\nb"`},
		{`"\u001b[31m"`, ClassString, `"\u001b[31m"`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			spans := Render(decode(t, tt.input), 0)
			require.Len(t, spans, 1)
			assert.Equal(t, tt.class, spans[0].Class)
			assert.Equal(t, tt.text, spans[0].Text)
			assert.Equal(t, -1, spans[0].Match)
		})
	}
}

func TestRenderEmptyContainers(t *testing.T) {
	assert.Equal(t, Spans{span(ClassBrace, "{}")}, Render(decode(t, "{}"), 0))
	assert.Equal(t, Spans{span(ClassBracket, "[]")}, Render(decode(t, "[]"), 0))
}

func TestRenderCompactArray(t *testing.T) {
	spans := Render(decode(t, "[1,2,3,4,5,6]"), 0)
	assert.Equal(t, "[1, 2, 3, 4, 5, 6]", spans.Text())

	mixed := Render(decode(t, `[null,"x",true]`), 0)
	assert.Equal(t, `[null, "x", true]`, mixed.Text())
}

func TestRenderLongArrayOnePerLine(t *testing.T) {
	spans := Render(decode(t, "[1,2,3,4,5,6,7]"), 0)
	assert.Equal(t, "[\n  1,\n  2,\n  3,\n  4,\n  5,\n  6,\n  7\n]", spans.Text())
}

func TestRenderNestedArrayNotCompact(t *testing.T) {
	spans := Render(decode(t, "[1,[2]]"), 0)
	assert.Equal(t, "[\n  1,\n  [2]\n]", spans.Text())
}

func TestRenderObject(t *testing.T) {
	spans := Render(decode(t, `{"a":1,"b":{"c":[true,null]},"d":[]}`), 0)
	want := "{\n" +
		"  \"a\": 1,\n" +
		"  \"b\": {\n" +
		"    \"c\": [true, null]\n" +
		"  },\n" +
		"  \"d\": []\n" +
		"}"
	assert.Equal(t, want, spans.Text())

	var keys []string
	for _, sp := range spans {
		if sp.Class == ClassKey {
			keys = append(keys, sp.Text)
		}
	}
	assert.Equal(t, []string{`"a"`, `"b"`, `"c"`, `"d"`}, keys)
}

func TestRenderTokenClasses(t *testing.T) {
	spans := Render(decode(t, `{"k":[1,"s"]}`), 0)
	var got []Class
	for _, sp := range spans {
		if sp.Class != ClassPlain {
			got = append(got, sp.Class)
		}
	}
	assert.Equal(t, []Class{
		ClassBrace, ClassKey, ClassColon,
		ClassBracket, ClassNumber, ClassComma, ClassString, ClassBracket,
		ClassBrace,
	}, got)
}

func TestRenderAtDepth(t *testing.T) {
	spans := Render(decode(t, `{"a":1}`), 2)
	assert.Equal(t, "{\n      \"a\": 1\n    }", spans.Text())
}

func TestPreviewTruncates(t *testing.T) {
	long := `{"text":"` + strings.Repeat("x", 289) + `"}`
	v := decode(t, long)
	require.Equal(t, 300, len(v.Compact()))

	spans := Preview(v, PreviewLimit)
	require.Len(t, spans, 1)
	assert.Equal(t, ClassPlain, spans[0].Class)
	assert.True(t, strings.HasSuffix(spans[0].Text, Ellipsis))
	assert.Equal(t, PreviewLimit+1, utf8.RuneCountInString(spans[0].Text))
	assert.Equal(t, long[:PreviewLimit]+Ellipsis, spans[0].Text)
}

func TestPreviewShortValueUntouched(t *testing.T) {
	spans := Preview(decode(t, `{"a": [1, 2]}`), 0)
	assert.Equal(t, `{"a":[1,2]}`, spans.Text())
}

func TestTruncateCountsCharacters(t *testing.T) {
	assert.Equal(t, "héé"+Ellipsis, Truncate("hééllo", 3))
	assert.Equal(t, "abc", Truncate("abc", 3))
	assert.Equal(t, "", Truncate("", 3))
}

func TestLines(t *testing.T) {
	lines := Render(decode(t, `{"a":1}`), 0).Lines()
	require.Len(t, lines, 3)
	assert.Equal(t, "{", lines[0].Text())
	assert.Equal(t, `  "a": 1`, lines[1].Text())
	assert.Equal(t, "}", lines[2].Text())
}

func TestHTMLEscapesAfterClassification(t *testing.T) {
	spans := Render(decode(t, `{"<k>":"a & \"b\""}`), 0)
	html := HTML(spans, -1)

	assert.Contains(t, html, `<span class="jk">&quot;&lt;k&gt;&quot;</span>`)
	assert.Contains(t, html, `<span class="js">&quot;a &amp; \&quot;b\&quot;&quot;</span>`)
	assert.NotContains(t, html, "<k>")
}

func TestHTMLHighlights(t *testing.T) {
	spans := Spans{
		{Class: ClassString, Text: `"`, Match: -1},
		{Class: ClassString, Text: "foo", Match: 0},
		{Class: ClassString, Text: `"`, Match: -1},
		{Class: ClassPlain, Text: " & ", Match: -1},
		{Class: ClassPlain, Text: "foo", Match: 1},
	}
	html := HTML(spans, 1)
	assert.Equal(t,
		`<span class="js">&quot;</span>`+
			`<span class="js"><span class="sh">foo</span></span>`+
			`<span class="js">&quot;</span>`+
			` &amp; `+
			`<span class="sh cur">foo</span>`,
		html)
}

func TestClassString(t *testing.T) {
	assert.Equal(t, "key", ClassKey.String())
	assert.Equal(t, "comma", ClassComma.String())
	assert.Equal(t, "plain", Class(99).String())
}
