// Package tailview shows records as they are appended to a file.
package tailview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/grovetools/jsonlview/pkg/colorize"
	"github.com/grovetools/jsonlview/pkg/record"
	"github.com/grovetools/jsonlview/tui/theme"
	"github.com/grovetools/jsonlview/tui/utils/scrollbar"
)

// Source is a stream of records, such as a *follow.Follower.
type Source interface {
	Records() <-chan *record.Record
	Err() error
}

// RecordMsg is sent when a new record is read.
type RecordMsg struct {
	Record *record.Record
}

// DoneMsg is sent when the source is exhausted or stopped.
type DoneMsg struct {
	Err error
}

// Model is the TUI component for a live record stream.
type Model struct {
	viewport     viewport.Model
	source       Source
	theme        *theme.Theme
	previewLimit int
	follow       bool
	done         bool
	ready        bool
	width        int
	height       int
	records      []*record.Record
	lines        []string
	invalid      int
}

// New creates a tail view. previewLimit caps the characters shown per
// record.
func New(width, height, previewLimit int) Model {
	if previewLimit <= 0 {
		previewLimit = colorize.PreviewLimit
	}
	vp := viewport.New(max(1, width-1), max(1, height-1)) // scrollbar column, status line
	return Model{
		viewport:     vp,
		theme:        theme.DefaultTheme,
		previewLimit: previewLimit,
		follow:       true,
		width:        width,
		height:       height,
	}
}

// Start begins reading records from src.
func (m *Model) Start(src Source) tea.Cmd {
	m.source = src
	m.done = false
	return m.waitForRecord()
}

func (m *Model) waitForRecord() tea.Cmd {
	src := m.source
	if src == nil {
		return nil
	}
	return func() tea.Msg {
		r, ok := <-src.Records()
		if !ok {
			return DoneMsg{Err: src.Err()}
		}
		return RecordMsg{Record: r}
	}
}

// Add appends a record to the view.
func (m *Model) Add(r *record.Record) {
	m.records = append(m.records, r)
	if r.Err != "" {
		m.invalid++
	}
	m.lines = append(m.lines, m.formatRecord(r))
	m.setWrappedContent()
	if m.follow {
		m.viewport.GotoBottom()
	}
}

// Clear drops every record shown so far.
func (m *Model) Clear() {
	m.records = nil
	m.lines = nil
	m.invalid = 0
	m.viewport.SetContent("")
}

// Records returns the records received so far.
func (m *Model) Records() []*record.Record {
	return m.records
}

// setWrappedContent wraps the content to the viewport's current width.
func (m *Model) setWrappedContent() {
	if !m.ready {
		return
	}
	wrapStyle := lipgloss.NewStyle().Width(max(1, m.viewport.Width))

	wrapped := make([]string, 0, len(m.lines))
	for _, line := range m.lines {
		wrapped = append(wrapped, wrapStyle.Render(line))
	}
	m.viewport.SetContent(strings.Join(wrapped, "\n"))
}

// GetScrollInfo returns the 1-based top line and the number of records.
func (m *Model) GetScrollInfo() (currentLine, totalLines int) {
	totalLines = len(m.lines)
	if totalLines == 0 {
		return 0, 0
	}
	return m.viewport.YOffset + 1, totalLines
}

// Init initializes the component.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.viewport.Width = max(1, msg.Width-1)
		m.viewport.Height = max(1, msg.Height-1)
		m.ready = true
		m.setWrappedContent()
		if m.follow {
			m.viewport.GotoBottom()
		}
	case RecordMsg:
		m.Add(msg.Record)
		cmds = append(cmds, m.waitForRecord())
	case DoneMsg:
		m.done = true
	case tea.KeyMsg:
		switch msg.String() {
		case "f":
			m.follow = !m.follow
			if m.follow {
				m.viewport.GotoBottom()
			}
		case "g", "home":
			m.follow = false
			m.viewport.GotoTop()
		case "G", "end":
			m.follow = true
			m.viewport.GotoBottom()
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// View renders the stream with a scrollbar and a status line.
func (m Model) View() string {
	if !m.ready {
		return "Initializing…"
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		scrollbar.Overlay(&m.viewport, m.theme.Muted),
		m.status(),
	)
}

func (m Model) status() string {
	state := m.theme.Success.Render(theme.IconRunning + " following")
	switch {
	case m.done:
		state = m.theme.Muted.Render("stopped")
	case !m.follow:
		state = m.theme.Warning.Render("paused (f to follow)")
	}
	stats := fmt.Sprintf("%d entries", len(m.records))
	if m.invalid > 0 {
		stats += fmt.Sprintf(", %d invalid", m.invalid)
	}
	return m.theme.StatusBar.Render(state + "  " + m.theme.Muted.Render(stats))
}

// IsFollowing returns whether the view sticks to the newest record.
func (m Model) IsFollowing() bool {
	return m.follow
}

// formatRecord renders a record as a numbered one-line preview.
func (m *Model) formatRecord(r *record.Record) string {
	num := m.theme.Muted.Render(fmt.Sprintf("%6d ", r.Index+1))
	if r.Err != "" {
		return num + m.theme.Error.Render("Parse Error:") + " " + colorize.Truncate(r.Raw, m.previewLimit)
	}
	return num + m.theme.RenderSpans(colorize.Preview(r.Value, m.previewLimit), -1)
}
