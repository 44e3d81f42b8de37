// Package jsonlview is the interactive document viewer: a scrolling list of
// colorized records with search, replace, collapse and copy.
package jsonlview

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/grovetools/jsonlview/config"
	"github.com/grovetools/jsonlview/errors"
	"github.com/grovetools/jsonlview/logging"
	"github.com/grovetools/jsonlview/pkg/viewer"
	"github.com/grovetools/jsonlview/tui/components/help"
	"github.com/grovetools/jsonlview/tui/keymap"
	"github.com/grovetools/jsonlview/tui/theme"
	"github.com/grovetools/jsonlview/tui/utils/scrollbar"
)

var log = logging.NewLogger("tui")

const statusTimeout = 3 * time.Second

// Document is the file a Model shows. *host.FileHost implements it.
type Document interface {
	viewer.Host
	Path() string
	Load() (string, error)
	EditorCommand() (*exec.Cmd, error)
	Watch(ctx context.Context, onChange func(text string)) error
}

// Options configure a Model.
type Options struct {
	Viewer viewer.Options
	Keys   KeyMap
	Theme  *theme.Theme
	// Watch reloads the document when it changes on disk.
	Watch bool
	// Search opens the search bar with this term once the document loads.
	Search string
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Viewer: viewer.DefaultOptions(),
		Keys:   DefaultKeyMap(),
		Theme:  theme.DefaultTheme,
	}
}

// OptionsFromConfig maps cfg onto viewer options and key bindings. An
// unknown default view falls back to structured.
func OptionsFromConfig(cfg *config.Config) Options {
	opts := DefaultOptions()
	if cfg == nil {
		return opts
	}
	opts.Keys = LoadKeyMap(cfg)
	opts.Viewer.BatchSize = cfg.Viewer.BatchSize
	opts.Viewer.PreviewLimit = cfg.Viewer.PreviewLimit
	if mode, err := viewer.ParseMode(cfg.Viewer.DefaultView); err == nil {
		opts.Viewer.Mode = mode
	}
	return opts
}

type inputFocus int

const (
	focusNone inputFocus = iota
	focusSearch
	focusReplace
)

type loadedMsg struct {
	text string
	err  error
}

type changedMsg struct{ text string }

type watchErrMsg struct{ err error }

type editorDoneMsg struct{ err error }

type clearStatusMsg struct{ id int }

// execHost defers "open as text" so the editor can take over the terminal
// through tea.ExecProcess instead of running under the TUI.
type execHost struct {
	Document
	pending *exec.Cmd
}

func (h *execHost) OpenAsPlainText() error {
	cmd, err := h.EditorCommand()
	if err != nil {
		return err
	}
	h.pending = cmd
	return nil
}

func (h *execHost) take() *exec.Cmd {
	cmd := h.pending
	h.pending = nil
	return cmd
}

// Model is the Bubble Tea model of the viewer.
type Model struct {
	doc   Document
	host  *execHost
	ctrl  *viewer.Controller
	keys  KeyMap
	theme *theme.Theme
	seq   *keymap.SequenceState

	viewport     viewport.Model
	help         help.Model
	searchInput  textinput.Model
	replaceInput textinput.Model
	searchOpen   bool
	replaceOpen  bool
	focus        inputFocus

	// cursor is the index of the selected rendered record.
	cursor int
	// starts holds the first content line of each rendered record.
	starts []int
	lines  int

	status     string
	statusKind string
	statusID   int

	width  int
	height int
	ready  bool

	watch   bool
	ctx     context.Context
	cancel  context.CancelFunc
	changes chan string
}

// New creates a viewer for doc.
func New(doc Document, opts Options) Model {
	if opts.Theme == nil {
		opts.Theme = theme.DefaultTheme
	}

	si := textinput.New()
	si.Prompt = "Find: "
	si.Placeholder = "search term"
	si.PromptStyle = opts.Theme.Accent
	ri := textinput.New()
	ri.Prompt = "With: "
	ri.Placeholder = "replacement"
	ri.PromptStyle = opts.Theme.Accent

	h := &execHost{Document: doc}
	ctx, cancel := context.WithCancel(context.Background())

	hm := help.New(opts.Keys, opts.Keys.Help, opts.Keys.Quit)
	hm.Theme = opts.Theme
	hm.Title = "jsonlview"

	if opts.Search != "" {
		si.SetValue(opts.Search)
	}

	return Model{
		doc:          doc,
		host:         h,
		ctrl:         viewer.New(h, opts.Viewer),
		keys:         opts.Keys,
		theme:        opts.Theme,
		seq:          keymap.NewSequenceState(),
		viewport:     viewport.New(0, 0),
		help:         hm,
		searchInput:  si,
		replaceInput: ri,
		searchOpen:   opts.Search != "",
		watch:        opts.Watch,
		ctx:          ctx,
		cancel:       cancel,
		changes:      make(chan string, 1),
	}
}

// Controller exposes the underlying view state.
func (m Model) Controller() *viewer.Controller {
	return m.ctrl
}

// Close stops watching the document.
func (m Model) Close() {
	m.cancel()
}

// Init loads the document and starts watching it.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.load()}
	if m.watch {
		cmds = append(cmds, m.startWatch(), m.waitForChange())
	}
	return tea.Batch(cmds...)
}

func (m Model) load() tea.Cmd {
	doc := m.doc
	return func() tea.Msg {
		text, err := doc.Load()
		return loadedMsg{text: text, err: err}
	}
}

func (m Model) startWatch() tea.Cmd {
	doc, ctx, changes := m.doc, m.ctx, m.changes
	return func() tea.Msg {
		err := doc.Watch(ctx, func(text string) {
			select {
			case changes <- text:
			case <-ctx.Done():
			}
		})
		if err != nil {
			return watchErrMsg{err: err}
		}
		return nil
	}
}

func (m Model) waitForChange() tea.Cmd {
	ctx, changes := m.ctx, m.changes
	return func() tea.Msg {
		select {
		case text := <-changes:
			return changedMsg{text: text}
		case <-ctx.Done():
			return nil
		}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ready = true
		m.help.SetSize(msg.Width, msg.Height)
		m.layout()
		m.render()
		return m, nil

	case loadedMsg:
		if msg.err != nil {
			return m, m.fail(msg.err)
		}
		m.ctrl.LoadDocument(msg.text)
		m.cursor = 0
		if m.searchOpen && m.searchInput.Value() != m.ctrl.Search().Term {
			m.ctrl.SetSearchTerm(m.searchInput.Value())
		}
		m.render()
		m.viewport.GotoTop()
		m.followMatch()
		return m, nil

	case changedMsg:
		m.ctrl.LoadDocument(msg.text)
		m.clampCursor()
		m.render()
		log.WithField("path", m.doc.Path()).Debug("Reloaded after external change")
		return m, tea.Batch(m.setStatus("info", "Reloaded after external change"), m.waitForChange())

	case watchErrMsg:
		return m, m.fail(msg.err)

	case editorDoneMsg:
		if msg.err != nil {
			return m, tea.Batch(m.fail(msg.err), m.load())
		}
		return m, m.load()

	case clearStatusMsg:
		if msg.id == m.statusID {
			m.status = ""
		}
		return m, nil

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.help.ShowAll {
			var cmd tea.Cmd
			m.help, cmd = m.help.Update(msg)
			return m, cmd
		}
		if m.focus != focusNone {
			return m.updateInput(msg)
		}
		return m.updateNormal(msg)
	}
	return m, nil
}

// updateInput handles keys while the find or replace field has focus.
func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeSearch()
		return m, nil
	case "tab":
		if m.focus == focusSearch && m.replaceOpen {
			return m, m.focusOn(focusReplace)
		}
		return m, m.focusOn(focusNone)
	case "shift+tab":
		if m.focus == focusReplace {
			return m, m.focusOn(focusSearch)
		}
		return m, nil
	case "down":
		m.moveMatch(m.ctrl.NextMatch)
		return m, nil
	case "up":
		m.moveMatch(m.ctrl.PreviousMatch)
		return m, nil
	case "enter":
		if m.focus == focusReplace {
			return m, m.replaceCurrent()
		}
		m.moveMatch(m.ctrl.NextMatch)
		return m, nil
	case "alt+enter":
		if m.focus == focusReplace {
			return m, m.replaceAll()
		}
		m.moveMatch(m.ctrl.PreviousMatch)
		return m, nil
	}

	var cmd tea.Cmd
	if m.focus == focusReplace {
		m.replaceInput, cmd = m.replaceInput.Update(msg)
		return m, cmd
	}
	m.searchInput, cmd = m.searchInput.Update(msg)
	if term := m.searchInput.Value(); term != m.ctrl.Search().Term {
		m.ctrl.SetSearchTerm(term)
		m.followMatch()
	}
	return m, cmd
}

// updateNormal handles keys while the record list has focus.
func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	result, idx := m.seq.Process(msg, m.keys.SequenceBindings()...)
	switch result {
	case keymap.SequencePending:
		return m, nil
	case keymap.SequenceMatch:
		m.seq.Clear()
		return m.runSequence(idx)
	default:
		m.seq.Clear()
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.Toggle()
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.searchOpen = true
		m.layout()
		return m, m.focusOn(focusSearch)

	case key.Matches(msg, m.keys.Replace):
		m.searchOpen, m.replaceOpen = true, true
		m.layout()
		if m.searchInput.Value() == "" {
			return m, m.focusOn(focusSearch)
		}
		return m, m.focusOn(focusReplace)

	case key.Matches(msg, m.keys.ClearSearch):
		if m.searchOpen {
			m.closeSearch()
		}
		return m, nil

	case key.Matches(msg, m.keys.SearchNext):
		m.moveMatch(m.ctrl.NextMatch)
		return m, nil

	case key.Matches(msg, m.keys.SearchPrev):
		m.moveMatch(m.ctrl.PreviousMatch)
		return m, nil

	case key.Matches(msg, m.keys.ReplaceCurrent):
		return m, m.replaceCurrent()

	case key.Matches(msg, m.keys.ReplaceAll):
		return m, m.replaceAll()

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
		return m, nil

	case key.Matches(msg, m.keys.HalfPageUp):
		m.viewport.HalfViewUp()
		m.cursorToViewport()
		return m, nil

	case key.Matches(msg, m.keys.HalfPageDown):
		m.viewport.HalfViewDown()
		m.cursorToViewport()
		return m, nil

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.SetYOffset(m.viewport.YOffset - m.viewport.Height)
		m.cursorToViewport()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.SetYOffset(m.viewport.YOffset + m.viewport.Height)
		m.cursorToViewport()
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		m.cursor = max(0, len(m.ctrl.Frame().Records)-1)
		m.render()
		m.viewport.GotoBottom()
		return m, nil

	case key.Matches(msg, m.keys.SwitchView):
		m.ctrl.SwitchView(m.ctrl.Mode().Toggle())
		m.clampCursor()
		m.render()
		m.showCursor()
		return m, nil

	case key.Matches(msg, m.keys.LoadMore):
		if m.ctrl.RenderNextBatch() {
			m.render()
		}
		return m, nil

	case key.Matches(msg, m.keys.CopyRecord):
		if !m.ctrl.Loaded() {
			return m, m.fail(errors.NoDocument())
		}
		if _, err := m.ctrl.CopyRecord(m.cursor); err != nil {
			return m, m.fail(err)
		}
		return m, m.setStatus("success", viewer.CopiedText)

	case key.Matches(msg, m.keys.OpenText):
		if err := m.ctrl.OpenAsPlainText(); err != nil {
			return m, m.fail(err)
		}
		if cmd := m.host.take(); cmd != nil {
			return m, tea.ExecProcess(cmd, func(err error) tea.Msg {
				if err != nil {
					err = errors.EditorFailed(cmd.Path, err)
				}
				return editorDoneMsg{err: err}
			})
		}
		return m, nil
	}
	return m, nil
}

// runSequence runs the binding at idx of SequenceBindings.
func (m Model) runSequence(idx int) (tea.Model, tea.Cmd) {
	switch idx {
	case 0: // top
		m.cursor = 0
		m.render()
		m.viewport.GotoTop()
	case 1: // toggle
		if _, ok := m.ctrl.ToggleCollapse(m.cursor); ok {
			m.render()
			m.showCursor()
		}
	case 2: // expand all
		m.ctrl.ExpandAll()
		m.render()
		m.showCursor()
	case 3: // collapse all
		m.ctrl.CollapseAll()
		m.render()
		m.showCursor()
	}
	return m, nil
}

func (m *Model) focusOn(f inputFocus) tea.Cmd {
	m.focus = f
	m.searchInput.Blur()
	m.replaceInput.Blur()
	switch f {
	case focusSearch:
		return m.searchInput.Focus()
	case focusReplace:
		return m.replaceInput.Focus()
	}
	return nil
}

// closeSearch hides the find and replace fields and drops all match state.
func (m *Model) closeSearch() {
	m.focusOn(focusNone)
	m.searchOpen, m.replaceOpen = false, false
	m.searchInput.SetValue("")
	m.replaceInput.SetValue("")
	m.ctrl.ClearSearch()
	m.layout()
	m.render()
}

func (m *Model) moveMatch(step func() bool) {
	if step() {
		m.followMatch()
	}
}

// followMatch selects the record holding the current match and scrolls the
// match into view.
func (m *Model) followMatch() {
	m.render()
	pos, ok := m.ctrl.CurrentMatch()
	if !ok {
		return
	}
	records := m.ctrl.Frame().Records
	if pos.Line >= len(records) {
		return
	}
	m.cursor = pos.Line
	m.render()
	line := m.starts[pos.Line] + m.matchLine(records[pos.Line])
	m.scrollTo(line, line)
}

// matchLine is the line offset of the current match within a record's
// rendered block.
func (m *Model) matchLine(r viewer.RenderedRecord) int {
	offset := 0
	if m.ctrl.Mode() == viewer.ModeStructured {
		offset = 1
	}
	for i, line := range r.Spans.Lines() {
		for _, s := range line {
			if s.Match >= 0 && s.Match == r.Current {
				return offset + i
			}
		}
	}
	return 0
}

func (m *Model) replaceCurrent() tea.Cmd {
	if m.ctrl.Search().Count == 0 {
		return nil
	}
	changed, err := m.ctrl.ReplaceCurrent(m.replaceInput.Value())
	if err != nil {
		return m.fail(err)
	}
	if changed {
		m.followMatch()
	}
	return nil
}

func (m *Model) replaceAll() tea.Cmd {
	if m.ctrl.Search().Count == 0 {
		return nil
	}
	n, err := m.ctrl.ReplaceAll(m.replaceInput.Value())
	if err != nil {
		return m.fail(err)
	}
	m.render()
	return m.setStatus("success", fmt.Sprintf("Replaced %d occurrences", n))
}

func (m *Model) moveCursor(delta int) {
	n := len(m.ctrl.Frame().Records)
	if n == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), n-1)
	m.render()
	m.showCursor()
}

func (m *Model) clampCursor() {
	m.cursor = min(m.cursor, max(0, len(m.ctrl.Frame().Records)-1))
}

// cursorToViewport selects the first record starting in the visible area.
func (m *Model) cursorToViewport() {
	for i, start := range m.starts {
		if start >= m.viewport.YOffset {
			m.cursor = i
			break
		}
	}
	m.render()
}

func (m *Model) showCursor() {
	if m.cursor >= len(m.starts) {
		return
	}
	top := m.starts[m.cursor]
	bottom := m.lines - 1
	if m.cursor+1 < len(m.starts) {
		bottom = m.starts[m.cursor+1] - 1
	}
	m.scrollTo(top, bottom)
}

// scrollTo brings lines top..bottom into view, preferring top when the range
// is taller than the viewport.
func (m *Model) scrollTo(top, bottom int) {
	switch {
	case top < m.viewport.YOffset:
		m.viewport.SetYOffset(top)
	case bottom >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(min(top, bottom-m.viewport.Height+1))
	}
}

// setStatus shows a message in the status line for a few seconds.
func (m *Model) setStatus(kind, text string) tea.Cmd {
	m.statusID++
	m.status, m.statusKind = text, kind
	id := m.statusID
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{id: id}
	})
}

// fail reports err in the status line. Missing or foreign documents are
// notices rather than failures.
func (m *Model) fail(err error) tea.Cmd {
	kind := "error"
	switch errors.GetCode(err) {
	case errors.ErrCodeNoDocument:
		kind = "info"
	case errors.ErrCodeWrongFileType:
		kind = "warning"
	default:
		log.WithError(err).Warn("Viewer action failed")
	}
	return m.setStatus(kind, errors.Message(err))
}

// chromeHeight is the number of lines around the viewport.
func (m *Model) chromeHeight() int {
	h := 3 // title, status, key hints
	if m.searchOpen {
		h++
	}
	if m.replaceOpen {
		h++
	}
	return h
}

func (m *Model) layout() {
	m.viewport.Width = max(0, m.width-1) // scrollbar column
	m.viewport.Height = max(1, m.height-m.chromeHeight())
	m.searchInput.Width = max(10, m.width-len(m.searchInput.Prompt)-2)
	m.replaceInput.Width = m.searchInput.Width
}

// render rebuilds the viewport content from the controller frame.
func (m *Model) render() {
	f := m.ctrl.Frame()
	m.starts = m.starts[:0]

	var lines []string
	add := func(s string) { lines = append(lines, strings.Split(s, "\n")...) }

	switch {
	case !m.ctrl.Loaded():
		add(m.theme.Muted.Render("Loading " + filepath.Base(m.doc.Path()) + "…"))
	case f.Empty:
		add(m.theme.Muted.Render(viewer.EmptyText))
	}

	numWidth := len(fmt.Sprint(f.Total))
	for i, r := range f.Records {
		m.starts = append(m.starts, len(lines))
		selected := i == m.cursor
		body := m.theme.RenderSpans(r.Spans, r.Current)
		if f.Mode == viewer.ModeRaw {
			add(m.gutter(fmt.Sprintf("%*d ", numWidth, r.Number()), r, selected) + body)
			continue
		}
		add(m.header(r, selected))
		for _, l := range strings.Split(body, "\n") {
			add("  " + l)
		}
	}

	if t := f.LoadMoreText(); t != "" {
		add("")
		hint := m.keys.LoadMore.Help().Key
		add(m.theme.Accent.Render(fmt.Sprintf("%s %s", theme.IconArrow, t)) + m.theme.Muted.Render(" ("+hint+")"))
	}

	m.lines = len(lines)
	m.viewport.SetContent(strings.Join(lines, "\n"))
}

func (m *Model) gutter(num string, r viewer.RenderedRecord, selected bool) string {
	switch {
	case selected:
		return m.theme.Selected.Render(num)
	case r.Err != "":
		return m.theme.Error.Render(num)
	default:
		return m.theme.Muted.Render(num)
	}
}

// header renders the entry header line: arrow, number, error label and, on
// the selected record, the copy hint.
func (m *Model) header(r viewer.RenderedRecord, selected bool) string {
	if selected {
		h := r.Header() + "  " + m.keys.CopyRecord.Help().Key + " copy"
		return m.theme.Selected.Render(h)
	}
	var parts []string
	if a := r.Arrow(); a != "" {
		parts = append(parts, m.theme.Accent.Render(a))
	}
	parts = append(parts, m.theme.Bold.Render(fmt.Sprintf("#%d", r.Number())))
	if l := r.Label(); l != "" {
		parts = append(parts, " "+m.theme.Error.Render(l))
	}
	return strings.Join(parts, " ")
}

func (m *Model) statusStyle(kind string) lipgloss.Style {
	switch kind {
	case "success":
		return m.theme.Success
	case "warning":
		return m.theme.Warning
	case "error":
		return m.theme.Error
	default:
		return m.theme.Info
	}
}

func (m *Model) statusIcon(kind string) string {
	switch kind {
	case "success":
		return theme.IconSuccess
	case "warning":
		return theme.IconWarning
	case "error":
		return theme.IconError
	default:
		return theme.IconInfo
	}
}

// View renders the screen.
func (m Model) View() string {
	if !m.ready {
		return "Initializing…"
	}
	if m.help.ShowAll {
		return m.help.View()
	}

	f := m.ctrl.Frame()
	title := m.theme.Header.Render(theme.IconDocument+" "+filepath.Base(m.doc.Path())) + "  " +
		m.theme.Info.Render(f.StatsText()) + "  " +
		m.theme.Muted.Render(f.Mode.String())

	rows := []string{title}
	if m.searchOpen {
		rows = append(rows, m.searchInput.View()+"  "+m.theme.Muted.Render(f.SearchInfo()))
	}
	if m.replaceOpen {
		rows = append(rows, m.replaceInput.View())
	}
	rows = append(rows, scrollbar.Overlay(&m.viewport, m.theme.Muted))

	status := m.theme.Muted.Render(f.SearchInfo())
	if m.status != "" {
		status = m.statusStyle(m.statusKind).Render(m.statusIcon(m.statusKind) + " " + m.status)
	}
	rows = append(rows, m.theme.StatusBar.Render(status), m.help.View())
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
