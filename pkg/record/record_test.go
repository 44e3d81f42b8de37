package record

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMixedDocument(t *testing.T) {
	records := Parse("{\"a\":1}\n{\"b\":2}\nnot json\n")
	require.Len(t, records, 3)

	assert.Equal(t, 0, records[0].Index)
	require.True(t, records[0].OK())
	assert.Equal(t, `{"a":1}`, records[0].Value.Compact())

	assert.Equal(t, 1, records[1].Index)
	require.True(t, records[1].OK())
	assert.Equal(t, "2", records[1].Value.Get("b").Number)

	assert.Equal(t, 2, records[2].Index)
	assert.False(t, records[2].OK())
	assert.Nil(t, records[2].Value)
	assert.NotEmpty(t, records[2].Err)
	assert.Equal(t, "not json", records[2].Raw)
}

func TestParseSkipsBlankLines(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"only whitespace", "  \n\t\n\r\n", 0},
		{"crlf", "{\"a\":1}\r\n{\"a\":2}\r\n", 2},
		{"interior blanks", "1\n\n\n2\n   \n3", 3},
		{"bom on first line", "\uFEFF{\"a\":1}\n", 1},
		{"garbage lines", "x\ny\nz", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := Parse(tt.text)
			assert.Len(t, records, tt.want)

			nonBlank := 0
			for _, line := range strings.Split(tt.text, "\n") {
				if trimLine(line) != "" {
					nonBlank++
				}
			}
			assert.Equal(t, nonBlank, len(records))

			for i, r := range records {
				assert.Equal(t, i, r.Index, "indexes must be dense")
				assert.NotEqual(t, r.Value == nil, r.Err == "", "exactly one of Value/Err must be set")
			}
		})
	}
}

func TestParseTrimsRawText(t *testing.T) {
	records := Parse("   {\"a\": 1}   \n")
	require.Len(t, records, 1)
	assert.Equal(t, `{"a": 1}`, records[0].Raw)
}

func TestParseFailureIsolation(t *testing.T) {
	records := Parse("{\"ok\":true}\n{broken\n[1,2]\n{\"a\":1} trailing\n\"str\"")
	require.Len(t, records, 5)
	assert.True(t, records[0].OK())
	assert.False(t, records[1].OK())
	assert.True(t, records[2].OK())
	assert.False(t, records[3].OK(), "trailing garbage after a value is an error")
	assert.True(t, records[4].OK())
	assert.Equal(t, KindString, records[4].Value.Kind)
}

func TestDecodeKeepsMemberOrder(t *testing.T) {
	v, err := Decode(`{"z":1,"a":{"y":null,"b":[true,false]},"m":"s"}`)
	require.NoError(t, err)

	var keys []string
	for _, m := range v.Members {
		keys = append(keys, m.Key)
	}
	assert.Equal(t, []string{"z", "a", "m"}, keys)
	assert.Equal(t, `{"z":1,"a":{"y":null,"b":[true,false]},"m":"s"}`, v.Compact())
}

func TestDecodeDuplicateKeys(t *testing.T) {
	v, err := Decode(`{"a":1,"b":2,"a":3}`)
	require.NoError(t, err)
	assert.Equal(t, `{"a":3,"b":2}`, v.Compact())
}

func TestDecodeNumbersKeepLiteral(t *testing.T) {
	v, err := Decode(`[1.50, -0, 1e3, 12345678901234567890]`)
	require.NoError(t, err)
	assert.Equal(t, `[1.50,-0,1e3,12345678901234567890]`, v.Compact())
}

func TestCompactEscaping(t *testing.T) {
	v, err := Decode(`{"s":"<a href=\"x\">&amp;</a>\n\t\u0001é"}`)
	require.NoError(t, err)
	assert.Equal(t, `{"s":"<a href=\"x\">&amp;</a>\n\t\u0001é"}`, v.Compact())
}

func TestSetRawFlipsState(t *testing.T) {
	r := ParseLine(0, `{"x":"foo"}`)
	require.True(t, r.OK())

	r.SetRaw(`{"x":"foo`)
	assert.False(t, r.OK())
	assert.Nil(t, r.Value)
	assert.NotEmpty(t, r.Err)

	r.SetRaw(`{"x":"bar"}`)
	assert.True(t, r.OK())
	assert.Empty(t, r.Err)
	assert.Equal(t, "bar", r.Value.Get("x").Str)
}

func TestPretty(t *testing.T) {
	r := ParseLine(0, `{"a":[1,2],"b":{},"c":[]}`)
	assert.Equal(t, "{\n  \"a\": [\n    1,\n    2\n  ],\n  \"b\": {},\n  \"c\": []\n}", r.Pretty())

	bad := ParseLine(1, `{oops`)
	assert.Equal(t, `{oops`, bad.Pretty())
}

func TestSerializeRoundTrip(t *testing.T) {
	text := "  {\"a\":1}\n\n{\"b\" : [1, 2]}\r\nnot json\n\n"
	records := Parse(text)

	serialized := Serialize(records)
	assert.Equal(t, "{\"a\":1}\n{\"b\" : [1, 2]}\nnot json\n", serialized)

	again := Parse(serialized)
	require.Len(t, again, len(records))
	for i := range records {
		assert.Equal(t, records[i].Raw, again[i].Raw)
		assert.Equal(t, records[i].Err, again[i].Err)
		if records[i].OK() {
			assert.Equal(t, records[i].Value.Compact(), again[i].Value.Compact())
		}
	}
	assert.Equal(t, serialized, Serialize(again))
}

func TestStats(t *testing.T) {
	total, invalid := Stats(Parse("1\nx\n2\ny\n"))
	assert.Equal(t, 4, total)
	assert.Equal(t, 2, invalid)
}

func TestInterface(t *testing.T) {
	v, err := Decode(`{"n":2,"l":[null,"s",true]}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"n": float64(2),
		"l": []any{nil, "s", true},
	}, v.Interface())
}
