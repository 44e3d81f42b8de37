// Package picker lets the user choose a JSONL document from a directory.
package picker

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/grovetools/jsonlview/errors"
	"github.com/grovetools/jsonlview/tui/components/help"
	"github.com/grovetools/jsonlview/tui/keymap"
	"github.com/grovetools/jsonlview/tui/theme"
)

// Model is the document picker.
type Model struct {
	root        string
	paths       []string
	filtered    []string
	selected    string
	cursor      int
	filterInput textinput.Model
	keys        KeyMap
	seq         *keymap.SequenceState
	help        help.Model
	err         error
	width       int
	height      int

	// OnSelect is called when a document is chosen. The default is to quit,
	// leaving the choice in Selected.
	OnSelect func(path string) tea.Cmd

	// Loader rescans the document list.
	Loader func() ([]string, error)
}

// New creates a picker for the documents found under root.
func New(root string, paths []string) Model {
	ti := textinput.New()
	ti.Placeholder = "Press / to filter..."
	ti.CharLimit = 256
	ti.Width = 50

	keys := DefaultKeyMap()
	hm := help.New(keys, keys.Help, keys.Quit)
	hm.Title = "Open document"

	m := Model{
		root:        root,
		paths:       paths,
		filterInput: ti,
		keys:        keys,
		seq:         keymap.NewSequenceState(),
		help:        hm,
	}
	m.updateFiltered()
	return m
}

// Init initializes the picker.
func (m Model) Init() tea.Cmd {
	return nil
}

// Selected returns the chosen document, or "" when the picker was cancelled.
func (m Model) Selected() string {
	return m.selected
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.SetSize(msg.Width, msg.Height)
		return m, nil

	case LoadedMsg:
		m.err = msg.Err
		if msg.Err != nil {
			return m, nil
		}
		current := m.current()
		m.paths = msg.Paths
		m.updateFiltered()
		for i, p := range m.filtered {
			if p == current {
				m.cursor = i
				break
			}
		}
		m.clamp()
		return m, nil

	case tea.KeyMsg:
		if m.help.ShowAll {
			var cmd tea.Cmd
			m.help, cmd = m.help.Update(msg)
			return m, cmd
		}
		if m.filterInput.Focused() {
			return m.updateFilter(msg)
		}
		return m.updateNormal(msg)
	}
	return m, nil
}

func (m Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filterInput.Blur()
		return m, nil
	case tea.KeyEnter:
		return m.choose()
	case tea.KeyUp:
		m.move(-1)
		return m, nil
	case tea.KeyDown:
		m.move(1)
		return m, nil
	}

	var cmd tea.Cmd
	prev := m.filterInput.Value()
	m.filterInput, cmd = m.filterInput.Update(msg)
	if m.filterInput.Value() != prev {
		m.updateFiltered()
		m.cursor = 0
	}
	return m, cmd
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	result, _ := m.seq.Process(msg, m.keys.Top)
	switch result {
	case keymap.SequencePending:
		return m, nil
	case keymap.SequenceMatch:
		m.seq.Clear()
		m.cursor = 0
		return m, nil
	default:
		m.seq.Clear()
	}

	switch {
	case key.Matches(msg, m.keys.Quit), msg.Type == tea.KeyEsc:
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.Toggle()
	case key.Matches(msg, m.keys.Select):
		return m.choose()
	case key.Matches(msg, m.keys.Search):
		m.filterInput.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Reload):
		return m, m.ReloadCmd()
	case key.Matches(msg, m.keys.Up):
		m.move(-1)
	case key.Matches(msg, m.keys.Down):
		m.move(1)
	case key.Matches(msg, m.keys.HalfPageUp, m.keys.PageUp):
		m.move(-m.pageSize() / 2)
	case key.Matches(msg, m.keys.HalfPageDown, m.keys.PageDown):
		m.move(m.pageSize() / 2)
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.cursor = max(0, len(m.filtered)-1)
	}
	return m, nil
}

func (m Model) choose() (tea.Model, tea.Cmd) {
	if m.cursor >= len(m.filtered) {
		return m, nil
	}
	m.selected = m.filtered[m.cursor]
	if m.OnSelect != nil {
		return m, m.OnSelect(m.selected)
	}
	return m, tea.Quit
}

func (m *Model) move(delta int) {
	m.cursor += delta
	m.clamp()
}

func (m *Model) clamp() {
	m.cursor = min(m.cursor, len(m.filtered)-1)
	m.cursor = max(m.cursor, 0)
}

func (m *Model) current() string {
	if m.cursor < len(m.filtered) {
		return m.filtered[m.cursor]
	}
	return ""
}

// pageSize is the number of list rows that fit on screen.
func (m Model) pageSize() int {
	return max(5, m.height-6)
}

// View renders the picker.
func (m Model) View() string {
	t := theme.DefaultTheme
	if m.help.ShowAll {
		return m.help.View()
	}

	var b strings.Builder
	b.WriteString(t.Header.Render(theme.IconDocument + " " + m.root))
	b.WriteString("\n")
	b.WriteString(m.filterInput.View())
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(t.Error.Render(theme.IconError+" "+errors.Message(m.err)) + "\n")
	}

	visible := m.pageSize()
	start, end := 0, len(m.filtered)
	if end > visible {
		switch {
		case m.cursor < visible/2:
			start = 0
		case m.cursor >= len(m.filtered)-visible/2:
			start = len(m.filtered) - visible
		default:
			start = m.cursor - visible/2
		}
		end = min(start+visible, len(m.filtered))
	}

	filter := strings.ToLower(m.filterInput.Value())
	for i := start; i < end; i++ {
		name := highlightMatch(m.display(m.filtered[i]), filter)
		if i == m.cursor {
			b.WriteString(t.Highlight.Render(theme.IconArrow+" ") + t.Selected.Render(name))
		} else {
			b.WriteString("  " + name)
		}
		b.WriteString("\n")
	}

	if start > 0 || end < len(m.filtered) {
		b.WriteString(t.Muted.Render(fmt.Sprintf(" (%d-%d of %d)", start+1, end, len(m.filtered))) + "\n")
	}

	if len(m.filtered) == 0 {
		if len(m.paths) == 0 {
			b.WriteString(t.Muted.Render("No JSONL documents found") + "\n")
		} else {
			b.WriteString(t.Muted.Render("No matching documents") + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.help.View())
	return b.String()
}

// display is the path shown for a document, relative to the picker root.
func (m Model) display(path string) string {
	if rel, err := filepath.Rel(m.root, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}

// updateFiltered applies the filter to the document list.
func (m *Model) updateFiltered() {
	filter := strings.ToLower(m.filterInput.Value())
	if filter == "" {
		m.filtered = m.paths
		return
	}
	m.filtered = nil
	for _, p := range m.paths {
		if strings.Contains(strings.ToLower(m.display(p)), filter) {
			m.filtered = append(m.filtered, p)
		}
	}
}

// highlightMatch highlights the first occurrence of filter in s.
func highlightMatch(s, filter string) string {
	if filter == "" {
		return s
	}
	idx := strings.Index(strings.ToLower(s), filter)
	if idx == -1 {
		return s
	}
	end := idx + len(filter)
	return s[:idx] + theme.DefaultTheme.Success.Render(s[idx:end]) + s[end:]
}
