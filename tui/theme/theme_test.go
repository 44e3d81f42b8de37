package theme

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/grovetools/jsonlview/pkg/colorize"
	"github.com/grovetools/jsonlview/pkg/record"
)

var ansi = regexp.MustCompile("\x1b\\[[0-9;]*m")

func TestNewThemeWithName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"default", "default"},
		{"Kanagawa", "default"},
		{" terminal ", "terminal"},
		{"none", "mono"},
		{"mono", "mono"},
		{"does-not-exist", "default"},
		{"", "default"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NewThemeWithName(tt.in).Name)
		})
	}
}

func TestThemeHasTokenStyles(t *testing.T) {
	th := NewThemeWithName("default")
	for _, class := range []colorize.Class{
		colorize.ClassKey, colorize.ClassString, colorize.ClassNumber, colorize.ClassBool,
		colorize.ClassNull, colorize.ClassBracket, colorize.ClassBrace, colorize.ClassColon,
		colorize.ClassComma,
	} {
		_, ok := th.Tokens[class]
		assert.True(t, ok, "missing style for %s", class)
	}
	_, ok := th.Tokens[colorize.ClassPlain]
	assert.False(t, ok)
}

func TestRenderSpansKeepsText(t *testing.T) {
	recs := record.Parse(`{"name":"alpha","tags":[1,2],"nested":{"ok":true,"v":null}}`)
	spans := colorize.Render(recs[0].Value, 0)

	for _, name := range []string{"default", "terminal", "mono"} {
		th := NewThemeWithName(name)
		out := th.RenderSpans(spans, -1)
		assert.Equal(t, spans.Text(), ansi.ReplaceAllString(out, ""), name)
	}
}

func TestRenderSpansKeepsLineStructure(t *testing.T) {
	spans := colorize.Spans{
		{Class: colorize.ClassPlain, Text: "line one\nline two", Match: -1},
		{Class: colorize.ClassString, Text: "\"x\"", Match: 0},
	}
	out := NewThemeWithName("mono").RenderSpans(spans, 0)
	assert.Equal(t, "line one\nline two\"x\"", ansi.ReplaceAllString(out, ""))
}

func TestRenderStatusUnknown(t *testing.T) {
	assert.Equal(t, "plain", RenderStatus("bogus", "plain"))
}

func TestUseASCIIIcons(t *testing.T) {
	UseASCIIIcons(true)
	assert.Equal(t, "✓", IconSuccess)
	assert.Equal(t, "•", IconBullet)

	UseASCIIIcons(false)
	assert.Equal(t, "\U000F012C", IconSuccess)
}
