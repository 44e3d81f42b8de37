// Package viewer holds the per-document view state: the record list, which
// records are collapsed, the view mode, the batched render window and the
// search state. A Controller is driven by one goroutine at a time.
package viewer

import (
	"github.com/grovetools/jsonlview/logging"
	"github.com/grovetools/jsonlview/pkg/colorize"
	"github.com/grovetools/jsonlview/pkg/record"
	"github.com/grovetools/jsonlview/pkg/search"
)

// DefaultBatchSize is the number of records rendered per batch in structured
// mode.
const DefaultBatchSize = 200

var log = logging.NewLogger("viewer")

// Options configure a Controller.
type Options struct {
	BatchSize    int
	PreviewLimit int
	Mode         Mode
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		BatchSize:    DefaultBatchSize,
		PreviewLimit: colorize.PreviewLimit,
		Mode:         ModeStructured,
	}
}

// Frame is everything a front end needs to draw the current view.
type Frame struct {
	Mode    Mode
	Records []RenderedRecord
	Total   int
	Invalid int
	// Empty is true when the loaded document has no records.
	Empty     bool
	Remaining int
	Search    search.State
	// VisibleMatches counts the highlights in Records, which can be fewer
	// than Search.Count when records are collapsed or not yet rendered.
	VisibleMatches int
	batch          int
}

// StatsText returns the document summary line.
func (f Frame) StatsText() string {
	return StatsText(f.Total, f.Invalid)
}

// SearchInfo returns the search status text.
func (f Frame) SearchInfo() string {
	return f.Search.Info()
}

// LoadMoreText returns the load-more label, or "" when everything is shown.
func (f Frame) LoadMoreText() string {
	return LoadMoreText(f.batch, f.Remaining)
}

// Controller is the view state machine for one open document.
type Controller struct {
	host Host
	opts Options

	loaded    bool
	records   []*record.Record
	collapsed map[int]struct{}
	mode      Mode
	rendered  int
	view      []RenderedRecord

	matcher *search.Matcher
	search  search.State
	// currentLine is the record holding the current match, or -1.
	currentLine int
}

// New creates a controller. host may be nil when no side effects are wanted.
func New(host Host, opts Options) *Controller {
	def := DefaultOptions()
	if opts.BatchSize <= 0 {
		opts.BatchSize = def.BatchSize
	}
	if opts.PreviewLimit <= 0 {
		opts.PreviewLimit = def.PreviewLimit
	}
	return &Controller{
		host:        host,
		opts:        opts,
		collapsed:   make(map[int]struct{}),
		mode:        opts.Mode,
		matcher:     search.NewMatcher(""),
		search:      search.NewState(),
		currentLine: -1,
	}
}

// Loaded reports whether a document has been loaded.
func (c *Controller) Loaded() bool {
	return c.loaded
}

// Records returns the current record list.
func (c *Controller) Records() []*record.Record {
	return c.records
}

// Mode returns the active view mode.
func (c *Controller) Mode() Mode {
	return c.mode
}

// LoadDocument parses text and replaces the record list. Collapse state is
// cleared and the render window starts over. An active search term is kept
// and re-run against the new records.
func (c *Controller) LoadDocument(text string) {
	c.records = record.Parse(text)
	c.collapsed = make(map[int]struct{})
	c.loaded = true

	total, invalid := record.Stats(c.records)
	log.WithField("records", total).WithField("invalid", invalid).Debug("Document loaded")

	c.search.SetTerm(c.matcher.Term(), c.countMatches())
	c.syncCurrent()
	c.renderAll()
}

// SwitchView changes the view mode and renders from scratch.
func (c *Controller) SwitchView(mode Mode) {
	if !c.loaded {
		c.mode = mode
		return
	}
	c.mode = mode
	c.renderAll()
}

// CollapseAll collapses every record.
func (c *Controller) CollapseAll() {
	if !c.loaded {
		return
	}
	for _, r := range c.records {
		c.collapsed[r.Index] = struct{}{}
	}
	c.renderWindow()
}

// ExpandAll clears the collapse set.
func (c *Controller) ExpandAll() {
	if !c.loaded {
		return
	}
	c.collapsed = make(map[int]struct{})
	c.renderWindow()
}

// IsCollapsed reports whether the record at index is collapsed.
func (c *Controller) IsCollapsed(index int) bool {
	_, ok := c.collapsed[index]
	return ok
}

// CollapsedCount returns the size of the collapse set.
func (c *Controller) CollapsedCount() int {
	return len(c.collapsed)
}

// ToggleCollapse flips the collapse state of one record and re-renders only
// that record. It returns the new presentation, and false when index is out
// of range.
func (c *Controller) ToggleCollapse(index int) (RenderedRecord, bool) {
	if !c.loaded || index < 0 || index >= len(c.records) {
		return RenderedRecord{}, false
	}
	if c.IsCollapsed(index) {
		delete(c.collapsed, index)
	} else {
		c.collapsed[index] = struct{}{}
	}
	return c.refresh(index), true
}

// RenderNextBatch renders the next batch of records in structured mode and
// reports whether anything was added.
func (c *Controller) RenderNextBatch() bool {
	if !c.loaded || c.mode != ModeStructured || c.rendered >= len(c.records) {
		return false
	}
	end := min(c.rendered+c.opts.BatchSize, len(c.records))
	for i := c.rendered; i < end; i++ {
		c.view = append(c.view, c.renderOne(i))
	}
	c.rendered = end
	return true
}

// Remaining returns how many records are not rendered yet.
func (c *Controller) Remaining() int {
	return len(c.records) - c.rendered
}

// Frame returns the current presentation.
func (c *Controller) Frame() Frame {
	total, invalid := record.Stats(c.records)
	f := Frame{
		Mode:      c.mode,
		Records:   c.view,
		Total:     total,
		Invalid:   invalid,
		Empty:     c.loaded && total == 0,
		Remaining: c.Remaining(),
		Search:    c.search,
		batch:     c.opts.BatchSize,
	}
	for _, r := range c.view {
		f.VisibleMatches += r.Matches
	}
	return f
}

// SerializeDocument joins the current raw text of every record.
func (c *Controller) SerializeDocument() string {
	return record.Serialize(c.records)
}

// CopyRecord returns the copy text of a record, pretty JSON for parsed
// records and the raw line otherwise, and hands it to the host clipboard.
func (c *Controller) CopyRecord(index int) (string, error) {
	if index < 0 || index >= len(c.records) {
		return "", nil
	}
	text := c.records[index].Pretty()
	if c.host == nil {
		return text, nil
	}
	if err := c.host.CopyToClipboard(text); err != nil {
		return text, err
	}
	log.WithField("record", index).Debug("Copied record")
	return text, nil
}

// OpenAsPlainText asks the host to reopen the document as text.
func (c *Controller) OpenAsPlainText() error {
	if c.host == nil {
		return nil
	}
	return c.host.OpenAsPlainText()
}

// SetSearchTerm starts a new search. An empty term clears all match state.
func (c *Controller) SetSearchTerm(term string) {
	c.matcher = search.NewMatcher(term)
	c.search.SetTerm(term, c.countMatches())
	c.syncCurrent()
	c.ensureCurrentVisible()
	c.renderWindow()
}

// ClearSearch drops the search term.
func (c *Controller) ClearSearch() {
	c.SetSearchTerm("")
}

// Search returns the search state.
func (c *Controller) Search() search.State {
	return c.search
}

// CurrentMatch returns the location of the current match.
func (c *Controller) CurrentMatch() (search.Position, bool) {
	if c.search.Current < 0 {
		return search.Position{}, false
	}
	return search.Locate(c.lines(), c.matcher, c.search.Current)
}

// NextMatch moves to the following match, wrapping around.
func (c *Controller) NextMatch() bool {
	return c.move(c.search.Next)
}

// PreviousMatch moves to the preceding match, wrapping around.
func (c *Controller) PreviousMatch() bool {
	return c.move(c.search.Previous)
}

func (c *Controller) move(step func() bool) bool {
	prev := c.currentLine
	if !step() {
		return false
	}
	c.syncCurrent()
	if c.ensureCurrentVisible() {
		c.renderWindow()
		return true
	}
	if prev >= 0 {
		c.refresh(prev)
	}
	if c.currentLine >= 0 && c.currentLine != prev {
		c.refresh(c.currentLine)
	}
	return true
}

// ReplaceCurrent replaces the current match, counted over the whole document,
// with repl. It reports whether anything changed. The serialized document is
// handed to the host after a change.
func (c *Controller) ReplaceCurrent(repl string) (bool, error) {
	if c.matcher.Empty() || c.search.Count == 0 || c.search.Current < 0 {
		return false, nil
	}
	pos, text, ok := search.ReplaceNth(c.lines(), c.matcher, c.search.Current, repl)
	if !ok {
		return false, nil
	}
	c.records[pos.Line].SetRaw(text)
	log.WithField("record", pos.Line).Debug("Replaced match")

	c.search.SetCount(c.countMatches())
	c.syncCurrent()
	c.renderWindow()
	return true, c.persist()
}

// ReplaceAll replaces every match in every record with repl and returns the
// number of replacements.
func (c *Controller) ReplaceAll(repl string) (int, error) {
	if c.matcher.Empty() || c.search.Count == 0 {
		return 0, nil
	}
	total := 0
	for _, r := range c.records {
		text, n := c.matcher.ReplaceAll(r.Raw, repl)
		if n == 0 {
			continue
		}
		r.SetRaw(text)
		total += n
	}
	if total == 0 {
		return 0, nil
	}
	log.WithField("replacements", total).Debug("Replaced all matches")

	// Matches may remain when repl contains the term; none of them is current.
	c.search.SetCount(c.countMatches())
	c.search.Current = -1
	c.syncCurrent()
	c.renderWindow()
	return total, c.persist()
}

func (c *Controller) persist() error {
	if c.host == nil {
		return nil
	}
	if err := c.host.ReplaceDocument(c.SerializeDocument()); err != nil {
		log.WithError(err).Warn("Failed to persist document")
		return err
	}
	return nil
}

func (c *Controller) lines() []string {
	lines := make([]string, len(c.records))
	for i, r := range c.records {
		lines[i] = r.Raw
	}
	return lines
}

func (c *Controller) countMatches() int {
	if c.matcher.Empty() {
		return 0
	}
	return search.CountLines(c.lines(), c.matcher)
}

// syncCurrent recomputes which record holds the current match.
func (c *Controller) syncCurrent() {
	c.currentLine = -1
	if pos, ok := c.CurrentMatch(); ok {
		c.currentLine = pos.Line
	}
}

// ensureCurrentVisible extends the structured render window until it covers
// the current match. It reports whether the window grew.
func (c *Controller) ensureCurrentVisible() bool {
	if c.mode != ModeStructured || c.currentLine < c.rendered {
		return false
	}
	grew := false
	for c.currentLine >= c.rendered && c.RenderNextBatch() {
		grew = true
	}
	return grew
}

// renderAll starts the view over: raw mode renders every record, structured
// mode renders the first batch.
func (c *Controller) renderAll() {
	c.view = nil
	c.rendered = 0
	if c.mode == ModeRaw {
		c.view = make([]RenderedRecord, len(c.records))
		for i := range c.records {
			c.view[i] = c.renderOne(i)
		}
		c.rendered = len(c.records)
		return
	}
	c.RenderNextBatch()
	c.ensureCurrentVisible()
}

// renderWindow re-renders the records already in the window.
func (c *Controller) renderWindow() {
	for i := range c.view {
		c.view[i] = c.renderOne(i)
	}
}

func (c *Controller) refresh(index int) RenderedRecord {
	r := c.renderOne(index)
	if index < len(c.view) {
		c.view[index] = r
	}
	return r
}

func (c *Controller) renderOne(index int) RenderedRecord {
	occurrence := -1
	if index == c.currentLine {
		if pos, ok := c.CurrentMatch(); ok {
			occurrence = pos.Occurrence
		}
	}
	return renderRecord(c.records[index], c.IsCollapsed(index), c.matcher, RenderOptions{
		Mode:         c.mode,
		PreviewLimit: c.opts.PreviewLimit,
	}, occurrence)
}
