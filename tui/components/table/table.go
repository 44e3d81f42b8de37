// Package table renders themed lipgloss tables for command output.
package table

import (
	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"

	"github.com/grovetools/jsonlview/tui/theme"
)

// Options configures a table.
type Options struct {
	Bordered      bool
	AlternateRows bool
	Theme         *theme.Theme
}

// DefaultOptions returns the default table options.
func DefaultOptions() Options {
	return Options{
		Bordered:      true,
		AlternateRows: true,
		Theme:         theme.DefaultTheme,
	}
}

// New creates an empty table styled with opts.
func New(opts Options) *ltable.Table {
	t := opts.Theme
	if t == nil {
		t = theme.DefaultTheme
	}

	table := ltable.New()
	if opts.Bordered {
		table = table.
			Border(lipgloss.RoundedBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(t.Colors.Border))
	} else {
		table = table.Border(lipgloss.HiddenBorder())
	}

	header := t.Bold.Foreground(t.Colors.Orange).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	alt := cell.Foreground(t.Colors.MutedText)
	return table.StyleFunc(func(row, col int) lipgloss.Style {
		switch {
		case row == ltable.HeaderRow:
			return header
		case opts.AlternateRows && row%2 == 1:
			return alt
		default:
			return cell
		}
	})
}

// Render draws headers and rows with the default options.
func Render(headers []string, rows [][]string) string {
	return RenderWithOptions(headers, rows, DefaultOptions())
}

// RenderWithOptions draws headers and rows with opts.
func RenderWithOptions(headers []string, rows [][]string, opts Options) string {
	t := New(opts).Headers(headers...)
	for _, r := range rows {
		t = t.Row(r...)
	}
	return t.String()
}

// KeyValue draws two-column rows without a header, for settings listings.
func KeyValue(rows [][]string) string {
	opts := DefaultOptions()
	opts.AlternateRows = false
	t := New(opts)
	for _, r := range rows {
		t = t.Row(r...)
	}
	return t.String()
}
