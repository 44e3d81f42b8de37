package viewer

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHost struct {
	replaced   []string
	copied     []string
	opened     int
	replaceErr error
}

func (h *fakeHost) ReplaceDocument(text string) error {
	h.replaced = append(h.replaced, text)
	return h.replaceErr
}

func (h *fakeHost) CopyToClipboard(text string) error {
	h.copied = append(h.copied, text)
	return nil
}

func (h *fakeHost) OpenAsPlainText() error {
	h.opened++
	return nil
}

func jsonl(n int, format string) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, format+"\n", i)
	}
	return b.String()
}

func TestOperationsBeforeLoadAreNoops(t *testing.T) {
	c := New(nil, DefaultOptions())
	assert.False(t, c.Loaded())

	c.CollapseAll()
	c.ExpandAll()
	assert.False(t, c.RenderNextBatch())
	_, ok := c.ToggleCollapse(0)
	assert.False(t, ok)
	changed, err := c.ReplaceCurrent("x")
	assert.NoError(t, err)
	assert.False(t, changed)

	f := c.Frame()
	assert.False(t, f.Empty)
	assert.Empty(t, f.Records)
}

func TestLoadDocument(t *testing.T) {
	c := New(nil, DefaultOptions())
	c.LoadDocument("{\"a\":1}\n{\"b\":2}\nnot json\n")

	f := c.Frame()
	require.Len(t, f.Records, 3)
	assert.Equal(t, 3, f.Total)
	assert.Equal(t, 1, f.Invalid)
	assert.Equal(t, "3 entries (1 invalid)", f.StatsText())
	assert.Equal(t, 0, f.Remaining)
	assert.Equal(t, "", f.LoadMoreText())

	assert.Equal(t, "▼ #1", f.Records[0].Header())
	assert.True(t, f.Records[0].Collapsible)
	assert.False(t, f.Records[2].Collapsible)
	assert.Contains(t, f.Records[2].Header(), "#3  Parse Error: ")
	assert.Equal(t, "not json", f.Records[2].Spans.Text())
}

func TestEmptyDocument(t *testing.T) {
	c := New(nil, DefaultOptions())
	c.LoadDocument("\n  \n")
	f := c.Frame()
	assert.True(t, f.Empty)
	assert.Equal(t, "0 entries", f.StatsText())

	c.SetSearchTerm("x")
	assert.Equal(t, "No results", c.Frame().SearchInfo())
}

func TestLoadClearsCollapseState(t *testing.T) {
	c := New(nil, DefaultOptions())
	c.LoadDocument("1\n2\n")
	c.CollapseAll()
	assert.Equal(t, 2, c.CollapsedCount())

	c.LoadDocument("1\n2\n")
	assert.Equal(t, 0, c.CollapsedCount())
}

func TestCollapseAllThenExpandAll(t *testing.T) {
	c := New(nil, DefaultOptions())
	c.LoadDocument(jsonl(5, `{"n":%d}`))
	c.ToggleCollapse(1)
	c.ToggleCollapse(3)

	c.CollapseAll()
	assert.Equal(t, 5, c.CollapsedCount())
	for _, r := range c.Frame().Records {
		assert.True(t, r.Collapsed)
	}

	c.ExpandAll()
	assert.Equal(t, 0, c.CollapsedCount())
}

func TestToggleCollapseRendersOneRecord(t *testing.T) {
	c := New(nil, DefaultOptions())
	c.LoadDocument(`{"a":[1,2]}` + "\n" + `{"b":true}` + "\n")

	r, ok := c.ToggleCollapse(0)
	require.True(t, ok)
	assert.True(t, r.Collapsed)
	assert.Equal(t, "▶ #1", r.Header())
	assert.Equal(t, `{"a":[1,2]}`, r.Spans.Text())

	f := c.Frame()
	assert.Equal(t, r, f.Records[0])
	assert.False(t, f.Records[1].Collapsed)

	r, _ = c.ToggleCollapse(0)
	assert.False(t, r.Collapsed)
	assert.Equal(t, "{\n  \"a\": [1, 2]\n}", r.Spans.Text())

	_, ok = c.ToggleCollapse(5)
	assert.False(t, ok)
}

func TestCollapsedPreviewTruncates(t *testing.T) {
	line := `{"text":"` + strings.Repeat("y", 289) + `"}`
	c := New(nil, DefaultOptions())
	c.LoadDocument(line + "\n")

	r, _ := c.ToggleCollapse(0)
	assert.Equal(t, line[:220]+"…", r.Spans.Text())
}

func TestBatchedRendering(t *testing.T) {
	c := New(nil, Options{BatchSize: 200})
	c.LoadDocument(jsonl(450, `{"n":%d}`))

	f := c.Frame()
	assert.Len(t, f.Records, 200)
	assert.Equal(t, 250, f.Remaining)
	assert.Equal(t, "Load 200 more (250 remaining)", f.LoadMoreText())

	require.True(t, c.RenderNextBatch())
	require.True(t, c.RenderNextBatch())
	f = c.Frame()
	assert.Len(t, f.Records, 450)
	assert.Equal(t, 0, c.Remaining())
	assert.False(t, c.RenderNextBatch())

	for i, r := range f.Records {
		assert.Equal(t, i, r.Index)
	}
}

func TestLoadMoreTextLastBatch(t *testing.T) {
	c := New(nil, Options{BatchSize: 10})
	c.LoadDocument(jsonl(15, "%d"))
	assert.Equal(t, "Load 5 more (5 remaining)", c.Frame().LoadMoreText())
}

func TestSwitchViewResetsWindow(t *testing.T) {
	c := New(nil, Options{BatchSize: 2})
	c.LoadDocument(jsonl(5, `{"n": %d}`))
	c.RenderNextBatch()
	assert.Len(t, c.Frame().Records, 4)

	c.SwitchView(ModeRaw)
	f := c.Frame()
	assert.Equal(t, ModeRaw, f.Mode)
	require.Len(t, f.Records, 5, "raw mode renders every record")
	assert.Equal(t, `{"n": 0}`, f.Records[0].Spans.Text())
	assert.False(t, c.RenderNextBatch())

	c.SwitchView(ModeStructured)
	assert.Len(t, c.Frame().Records, 2)
}

func TestSearchCountsWholeDocument(t *testing.T) {
	c := New(nil, Options{BatchSize: 2})
	c.LoadDocument(jsonl(5, `{"k":"foo%d"}`))

	c.SetSearchTerm("FOO")
	f := c.Frame()
	assert.Equal(t, 5, f.Search.Count)
	assert.Equal(t, 0, f.Search.Current)
	assert.Equal(t, "1 of 5", f.SearchInfo())
	assert.Equal(t, 2, f.VisibleMatches, "only the first batch is rendered")

	c.SwitchView(ModeRaw)
	assert.Equal(t, 5, c.Frame().VisibleMatches)
}

func TestVisibleMatchesCountRenderedText(t *testing.T) {
	c := New(nil, DefaultOptions())
	c.LoadDocument(`{"a":"x x"}` + "\n" + `["x",1]` + "\n")
	c.SetSearchTerm("x")
	assert.Equal(t, 3, c.Frame().VisibleMatches)
	assert.Equal(t, 3, c.Search().Count)

	c.SetSearchTerm("")
	f := c.Frame()
	assert.Equal(t, 0, f.Search.Count)
	assert.Equal(t, -1, f.Search.Current)
	assert.Equal(t, 0, f.VisibleMatches)
	assert.Equal(t, "", f.SearchInfo())
}

func TestNavigationMarksCurrentMatch(t *testing.T) {
	c := New(nil, DefaultOptions())
	c.LoadDocument(`{"a":"foo"}` + "\n" + `{"b":"foo foo"}` + "\n")
	c.SetSearchTerm("foo")
	require.Equal(t, 3, c.Search().Count)

	current := func() (int, int) {
		for _, r := range c.Frame().Records {
			if r.Current >= 0 {
				return r.Index, r.Current
			}
		}
		return -1, -1
	}

	rec, occ := current()
	assert.Equal(t, 0, rec)
	assert.Equal(t, 0, occ)

	require.True(t, c.NextMatch())
	require.True(t, c.NextMatch())
	rec, occ = current()
	assert.Equal(t, 1, rec)
	assert.Equal(t, 1, occ)

	require.True(t, c.NextMatch())
	rec, _ = current()
	assert.Equal(t, 0, rec, "wraps to the first match")

	require.True(t, c.PreviousMatch())
	pos, ok := c.CurrentMatch()
	require.True(t, ok)
	assert.Equal(t, 1, pos.Line)
	assert.Equal(t, 1, pos.Occurrence)
}

// currentSpan returns the text of the span marked as the current match.
func currentSpan(r RenderedRecord) string {
	if r.Current < 0 {
		return ""
	}
	for _, sp := range r.Spans {
		if sp.Match == r.Current {
			return sp.Text
		}
	}
	return ""
}

func TestCurrentMarkerFollowsReplaceTarget(t *testing.T) {
	host := &fakeHost{}
	c := New(host, DefaultOptions())
	c.LoadDocument(`{"x":"\u0041","y":"A"}` + "\n")
	c.SetSearchTerm("a")
	require.Equal(t, 1, c.Search().Count)

	r := c.Frame().Records[0]
	assert.Equal(t, 2, r.Matches, "the escaped value renders as a match too")
	assert.Equal(t, 1, r.Current, "the marker sits on y, the only raw occurrence")

	changed, err := c.ReplaceCurrent("B")
	require.NoError(t, err)
	require.True(t, changed)
	assert.Equal(t, `{"x":"\u0041","y":"B"}`, c.Records()[0].Raw)
}

func TestCurrentMarkerHiddenWhenNotRenderedVerbatim(t *testing.T) {
	tests := []struct {
		name string
		line string
		term string
		next int
	}{
		{"duplicate key", `{"k":"v","k":"w"}`, "k", 0},
		{"escape sequence", `{"a":"\u0041x"}`, "0041", 0},
		{"across tokens", `{"a":"b"}`, `a":"b`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(nil, DefaultOptions())
			c.LoadDocument(tt.line + "\n")
			c.SetSearchTerm(tt.term)
			require.Positive(t, c.Search().Count)
			for i := 0; i < tt.next; i++ {
				c.NextMatch()
			}
			assert.Equal(t, -1, c.Frame().Records[0].Current)
		})
	}
}

func TestCurrentMarkerWithRepeatedValues(t *testing.T) {
	c := New(nil, DefaultOptions())
	c.LoadDocument(`{"a":"foo","b":["foo","foo"]}` + "\n")
	c.SetSearchTerm("foo")
	require.Equal(t, 3, c.Search().Count)

	for want := 0; want < 3; want++ {
		r := c.Frame().Records[0]
		assert.Equal(t, want, r.Current)
		assert.Equal(t, "foo", currentSpan(r))
		c.NextMatch()
	}

	c.SwitchView(ModeRaw)
	assert.Equal(t, 0, c.Frame().Records[0].Current)
}

func TestNavigationExtendsWindow(t *testing.T) {
	c := New(nil, Options{BatchSize: 10})
	c.LoadDocument(jsonl(30, `{"n":%d}`) + `{"needle":true}` + "\n")
	c.SetSearchTerm("needle")

	f := c.Frame()
	assert.Len(t, f.Records, 31)
	assert.Equal(t, 1, f.VisibleMatches)
	assert.Equal(t, 0, f.Records[30].Current)
}

func TestNextMatchWithoutMatches(t *testing.T) {
	c := New(nil, DefaultOptions())
	c.LoadDocument("1\n")
	c.SetSearchTerm("zzz")
	assert.False(t, c.NextMatch())
	assert.False(t, c.PreviousMatch())
	assert.Equal(t, -1, c.Search().Current)
}

func TestReplaceAll(t *testing.T) {
	host := &fakeHost{}
	c := New(host, DefaultOptions())
	c.LoadDocument(`{"x":"foo"}` + "\n" + `{"y":"foobaz"}` + "\n")
	c.SetSearchTerm("foo")

	n, err := c.ReplaceAll("bar")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	recs := c.Records()
	assert.Equal(t, `{"x":"bar"}`, recs[0].Raw)
	assert.Equal(t, `{"y":"barbaz"}`, recs[1].Raw)
	assert.True(t, recs[0].OK())
	assert.True(t, recs[1].OK())

	require.Len(t, host.replaced, 1)
	assert.Equal(t, "{\"x\":\"bar\"}\n{\"y\":\"barbaz\"}\n", host.replaced[0])
	assert.Equal(t, 0, c.Search().Count)
	assert.Equal(t, -1, c.Search().Current)
	assert.Equal(t, "No results", c.Frame().SearchInfo())
}

func TestReplaceAllLeavesNoCurrentMatch(t *testing.T) {
	c := New(nil, DefaultOptions())
	c.LoadDocument(`{"x":"foo"}` + "\n")
	c.SetSearchTerm("foo")

	n, err := c.ReplaceAll("foofoo")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	s := c.Search()
	assert.Equal(t, 2, s.Count, "the replacement contains the term")
	assert.Equal(t, -1, s.Current)
	assert.Equal(t, -1, c.Frame().Records[0].Current)

	require.True(t, c.NextMatch())
	assert.Equal(t, 0, c.Search().Current)
}

func TestReplaceCurrentUsesDocumentOrdinal(t *testing.T) {
	host := &fakeHost{}
	c := New(host, Options{BatchSize: 1})
	c.LoadDocument(`{"a":"foo"}` + "\n" + `{"b":"foo","c":"FOO"}` + "\n")
	c.SetSearchTerm("foo")
	c.NextMatch()
	c.NextMatch()

	changed, err := c.ReplaceCurrent("qux")
	require.NoError(t, err)
	require.True(t, changed)

	recs := c.Records()
	assert.Equal(t, `{"a":"foo"}`, recs[0].Raw)
	assert.Equal(t, `{"b":"foo","c":"qux"}`, recs[1].Raw)
	assert.Equal(t, 2, c.Search().Count)
	assert.Equal(t, 1, c.Search().Current, "current is clamped to the last match")
	require.Len(t, host.replaced, 1)
}

func TestReplaceCanBreakRecord(t *testing.T) {
	c := New(nil, DefaultOptions())
	c.LoadDocument(`{"x":"foo"}` + "\n")
	c.SetSearchTerm(`"foo"`)

	changed, err := c.ReplaceCurrent(`"foo`)
	require.NoError(t, err)
	require.True(t, changed)

	rec := c.Records()[0]
	assert.False(t, rec.OK())
	assert.NotEmpty(t, rec.Err)
	assert.Equal(t, `{"x":"foo}`, rec.Raw)
	assert.False(t, c.Frame().Records[0].Collapsible)
}

func TestReplaceIsNoopWithoutMatches(t *testing.T) {
	host := &fakeHost{}
	c := New(host, DefaultOptions())
	c.LoadDocument("{\"a\":1}\n")

	changed, err := c.ReplaceCurrent("x")
	require.NoError(t, err)
	assert.False(t, changed)

	c.SetSearchTerm("zzz")
	n, err := c.ReplaceAll("x")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Empty(t, host.replaced)
}

func TestReplaceReportsHostError(t *testing.T) {
	host := &fakeHost{replaceErr: errors.New("disk full")}
	c := New(host, DefaultOptions())
	c.LoadDocument("\"a\"\n")
	c.SetSearchTerm("a")

	n, err := c.ReplaceAll("b")
	assert.Equal(t, 1, n)
	assert.EqualError(t, err, "disk full")
	assert.Equal(t, `"b"`, c.Records()[0].Raw, "state is kept when persisting fails")
}

func TestSerializeDocumentDropsBlankLines(t *testing.T) {
	c := New(nil, DefaultOptions())
	c.LoadDocument("\n{\"a\":1}\r\n\n  2  \n")
	assert.Equal(t, "{\"a\":1}\n2\n", c.SerializeDocument())
}

func TestCopyRecord(t *testing.T) {
	host := &fakeHost{}
	c := New(host, DefaultOptions())
	c.LoadDocument("{\"a\":[1]}\nbroken\n")

	text, err := c.CopyRecord(0)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": [\n    1\n  ]\n}", text)

	text, err = c.CopyRecord(1)
	require.NoError(t, err)
	assert.Equal(t, "broken", text)
	assert.Equal(t, []string{"{\n  \"a\": [\n    1\n  ]\n}", "broken"}, host.copied)

	require.NoError(t, c.OpenAsPlainText())
	assert.Equal(t, 1, host.opened)
}

func TestLoadKeepsSearchTerm(t *testing.T) {
	c := New(nil, DefaultOptions())
	c.LoadDocument("\"a\"\n")
	c.SetSearchTerm("b")
	assert.Equal(t, 0, c.Search().Count)

	c.LoadDocument("\"b\"\n\"bb\"\n")
	assert.Equal(t, "b", c.Search().Term)
	assert.Equal(t, 3, c.Search().Count)
	assert.Equal(t, 0, c.Search().Current)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("RAW")
	require.NoError(t, err)
	assert.Equal(t, ModeRaw, m)

	m, err = ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeStructured, m)

	_, err = ParseMode("tree-ish")
	assert.Error(t, err)

	assert.Equal(t, ModeRaw, ModeStructured.Toggle())
	assert.Equal(t, "structured", ModeRaw.Toggle().String())
}
