package viewer

import (
	"fmt"

	"github.com/grovetools/jsonlview/pkg/colorize"
	"github.com/grovetools/jsonlview/pkg/record"
	"github.com/grovetools/jsonlview/pkg/search"
)

const (
	// EmptyText is shown when a document has no records.
	EmptyText = "No JSONL entries found"
	// CopiedText is the confirmation shown after copying a record.
	CopiedText = "Copied entry to clipboard"

	arrowCollapsed = "▶"
	arrowExpanded  = "▼"
)

// RenderOptions control how a single record is presented.
type RenderOptions struct {
	Mode         Mode
	PreviewLimit int
}

// RenderedRecord is the presentation of one record.
type RenderedRecord struct {
	Index int
	// Collapsible is false for records that failed to parse and in raw mode.
	Collapsible bool
	Collapsed   bool
	Err         string
	Spans       colorize.Spans
	// Matches is the number of highlighted occurrences in Spans.
	Matches int
	// Current is the ordinal within Spans of the current search match, or -1.
	Current int
}

// Number is the 1-based record number shown to users.
func (r RenderedRecord) Number() int {
	return r.Index + 1
}

// Arrow returns the collapse indicator, or "" for records that cannot be
// collapsed.
func (r RenderedRecord) Arrow() string {
	if !r.Collapsible {
		return ""
	}
	if r.Collapsed {
		return arrowCollapsed
	}
	return arrowExpanded
}

// Label is the error label for records that failed to parse.
func (r RenderedRecord) Label() string {
	if r.Err == "" {
		return ""
	}
	return "Parse Error: " + r.Err
}

// Header is the plain text entry header: number, arrow and error label.
func (r RenderedRecord) Header() string {
	h := fmt.Sprintf("#%d", r.Number())
	if a := r.Arrow(); a != "" {
		h = a + " " + h
	}
	if l := r.Label(); l != "" {
		h += "  " + l
	}
	return h
}

// RenderRecord presents one record. It is a pure function of its arguments
// and is used both for full renders and for refreshing a single record.
func RenderRecord(rec *record.Record, collapsed bool, m *search.Matcher, opts RenderOptions) RenderedRecord {
	return renderRecord(rec, collapsed, m, opts, -1)
}

// renderRecord is RenderRecord with the current match given as an occurrence
// counted in the raw line, or -1.
func renderRecord(rec *record.Record, collapsed bool, m *search.Matcher, opts RenderOptions, occurrence int) RenderedRecord {
	out := RenderedRecord{
		Index:   rec.Index,
		Err:     rec.Err,
		Current: -1,
	}

	var base colorize.Spans
	switch {
	case opts.Mode == ModeRaw || !rec.OK():
		base = colorize.Raw(rec.Raw)
	case collapsed:
		out.Collapsible = true
		out.Collapsed = true
		base = colorize.Preview(rec.Value, opts.PreviewLimit)
	default:
		out.Collapsible = true
		base = colorize.Render(rec.Value, 0)
	}

	out.Spans, out.Matches = search.Highlight(base, m, 0)
	if occurrence >= 0 && out.Matches > 0 {
		out.Current = renderedOrdinal(rec.Raw, base, m, occurrence)
	}
	return out
}

// StatsText is the document summary, "N entries" with an invalid count when
// any record failed to parse.
func StatsText(total, invalid int) string {
	s := fmt.Sprintf("%d entries", total)
	if invalid > 0 {
		s += fmt.Sprintf(" (%d invalid)", invalid)
	}
	return s
}

// LoadMoreText is the label of the load-more affordance.
func LoadMoreText(batch, remaining int) string {
	if remaining <= 0 {
		return ""
	}
	return fmt.Sprintf("Load %d more (%d remaining)", min(batch, remaining), remaining)
}
