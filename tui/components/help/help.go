// Package help renders the one-line key hint bar and the full-screen help
// overlay of a keymap.
package help

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"

	"github.com/grovetools/jsonlview/tui/keymap"
	"github.com/grovetools/jsonlview/tui/theme"
)

// KeyMap is what the help view needs from a keymap.
type KeyMap interface {
	keymap.SectionedKeyMap
	ShortHelp() []key.Binding
}

// Model is an embeddable help component.
type Model struct {
	Keys    KeyMap
	ShowAll bool
	Width   int
	Height  int
	Theme   *theme.Theme
	Title   string
	// Close are the bindings that dismiss the overlay, besides esc.
	Close []key.Binding

	viewport viewport.Model
}

// New creates a help model for keys.
func New(keys KeyMap, close ...key.Binding) Model {
	vp := viewport.New(0, 0)
	// Mouse events would fight with the main view's scrolling.
	vp.MouseWheelEnabled = false
	return Model{
		Keys:     keys,
		Theme:    theme.DefaultTheme,
		Close:    close,
		viewport: vp,
	}
}

// Update handles messages while the overlay is shown.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		if m.ShowAll {
			m.setViewportContent()
		}

	case tea.KeyMsg:
		if !m.ShowAll {
			return m, nil
		}
		if msg.Type == tea.KeyEsc || key.Matches(msg, m.Close...) {
			m.Toggle()
			return m, nil
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the overlay when ShowAll is set, the short hint bar otherwise.
func (m Model) View() string {
	if m.Theme == nil {
		m.Theme = theme.DefaultTheme
	}

	if !m.ShowAll {
		return m.viewShort(m.Keys.ShortHelp())
	}

	content := m.viewport.View()
	if m.viewport.TotalLineCount() > m.viewport.Height {
		indicator := "↕ more"
		if m.viewport.AtTop() {
			indicator = "↓ more"
		} else if m.viewport.AtBottom() {
			indicator = "↑ more"
		}
		indicatorStyle := m.Theme.Muted.Align(lipgloss.Right).Width(m.viewport.Width)
		content = lipgloss.JoinVertical(lipgloss.Right, content, indicatorStyle.Render(indicator))
	}
	return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) viewShort(group []key.Binding) string {
	var pairs []string
	for _, binding := range group {
		if !binding.Enabled() {
			continue
		}
		h := binding.Help()
		if h.Key == "" || h.Desc == "" {
			continue
		}
		pairs = append(pairs, fmt.Sprintf("%s %s", m.Theme.Accent.Render(h.Key), m.Theme.Muted.Render(h.Desc)))
	}
	return strings.Join(pairs, m.Theme.Muted.Render(" • "))
}

// Toggle switches between the overlay and the hint bar. Opening the overlay
// lays out its content again and scrolls to the top.
func (m *Model) Toggle() {
	m.ShowAll = !m.ShowAll
	if m.ShowAll {
		m.setViewportContent()
		m.viewport.GotoTop()
	}
}

// SetSize sets the dimensions of the overlay.
func (m *Model) SetSize(width, height int) {
	m.Width = width
	m.Height = height
}

func (m *Model) setViewportContent() {
	const (
		verticalMargin   = 4
		horizontalMargin = 4
		gutterWidth      = 4
	)

	content := m.renderHelpContent(m.Keys.Sections(), verticalMargin, horizontalMargin, gutterWidth)
	m.viewport.SetContent(content)

	// One line is kept for the scroll indicator.
	m.viewport.Width = lipgloss.Width(content)
	m.viewport.Height = max(1, m.Height-verticalMargin-1)
}

// renderHelpContent lays the section boxes out in one column when they fit
// the height, otherwise in as many columns (up to three) as fit the width.
func (m *Model) renderHelpContent(sections []keymap.Section, vMargin, hMargin, gutter int) string {
	blocks := m.sectionBlocks(sections)
	if len(blocks) == 0 {
		return ""
	}

	title := m.Title
	if title == "" {
		title = "Help"
	}
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(m.Theme.Colors.Orange).
		MarginBottom(1).
		Align(lipgloss.Center)
	withTitle := func(body string) string {
		return lipgloss.JoinVertical(lipgloss.Center, titleStyle.Width(lipgloss.Width(body)).Render(title), body)
	}

	single := withTitle(lipgloss.JoinVertical(lipgloss.Left, blocks...))
	if lipgloss.Height(single) <= m.Height-vMargin-1 {
		return single
	}

	for cols := min(3, len(blocks)); cols >= 2; cols-- {
		layout := withTitle(columns(blocks, cols, gutter))
		if lipgloss.Width(layout) <= m.Width-hMargin {
			return layout
		}
	}
	return single
}

// columns distributes blocks greedily, each to the currently shortest column.
func columns(blocks []string, n, gutter int) string {
	cols := make([][]string, n)
	heights := make([]int, n)
	for _, block := range blocks {
		shortest := 0
		for i := 1; i < n; i++ {
			if heights[i] < heights[shortest] {
				shortest = i
			}
		}
		cols[shortest] = append(cols[shortest], block)
		heights[shortest] += lipgloss.Height(block)
	}

	gutterStr := strings.Repeat(" ", gutter)
	result := lipgloss.JoinVertical(lipgloss.Left, cols[0]...)
	for i := 1; i < n; i++ {
		if len(cols[i]) == 0 {
			continue
		}
		result = lipgloss.JoinHorizontal(lipgloss.Top, result, gutterStr, lipgloss.JoinVertical(lipgloss.Left, cols[i]...))
	}
	return result
}

func (m *Model) sectionBlocks(sections []keymap.Section) []string {
	keyStyle := lipgloss.NewStyle().Bold(true).Foreground(m.Theme.Colors.Blue)

	var blocks []string
	for _, section := range sections {
		var rows [][]string
		for _, binding := range section.FilterEnabled() {
			h := binding.Help()
			if h.Key != "" && h.Desc != "" {
				rows = append(rows, []string{keyStyle.Render(h.Key), m.Theme.Muted.Italic(true).Render(h.Desc)})
			}
		}
		if len(rows) > 0 {
			blocks = append(blocks, m.renderSectionBox(section.Name, rows))
		}
	}
	return blocks
}

func (m *Model) renderSectionBox(title string, rows [][]string) string {
	table := ltable.New().
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			return lipgloss.NewStyle().Padding(0, 1)
		})
	for _, row := range rows {
		table = table.Row(row...)
	}

	titleStyle := lipgloss.NewStyle().
		Foreground(m.Theme.Colors.Orange).
		Italic(true).
		MarginBottom(1)
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.Theme.Colors.Border).
		Padding(0, 1).
		MarginBottom(1)

	heading := titleStyle.Render(sectionIcon(title) + " " + title)
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, heading, table.String()))
}

func sectionIcon(name string) string {
	switch name {
	case keymap.SectionNavigation:
		return theme.IconArrow
	case keymap.SectionSearch:
		return theme.IconFilter
	case keymap.SectionView:
		return theme.IconDocument
	case keymap.SectionActions:
		return theme.IconSave
	case keymap.SectionSystem:
		return theme.IconInfo
	default:
		return theme.IconBullet
	}
}
