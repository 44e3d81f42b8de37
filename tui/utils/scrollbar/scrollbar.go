// Package scrollbar draws a one-column scrollbar next to a viewport.
package scrollbar

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
)

const (
	thumb = "█"
	track = "░"
)

// Generate returns one scrollbar cell per line for a bar of the given
// height, styled with style.
func Generate(vp *viewport.Model, height int, style lipgloss.Style) []string {
	if height <= 0 {
		return []string{}
	}
	bar := make([]string, height)

	total := vp.TotalLineCount()
	if total == 0 {
		for i := range bar {
			bar[i] = " "
		}
		return bar
	}
	if total <= vp.Height {
		for i := range bar {
			bar[i] = style.Render(thumb)
		}
		return bar
	}

	thumbSize := max(1, (height*vp.Height)/total)
	percent := min(max(vp.ScrollPercent(), 0), 1)
	maxStart := height - thumbSize
	start := min(max(int(float64(maxStart)*percent+0.5), 0), maxStart)

	for i := range bar {
		if i >= start && i < start+thumbSize {
			bar[i] = style.Render(thumb)
		} else {
			bar[i] = style.Render(track)
		}
	}
	return bar
}

// Overlay returns the visible viewport content with a scrollbar cell
// appended to each line. Lines are padded to the viewport width so the bar
// stays in one column.
func Overlay(vp *viewport.Model, style lipgloss.Style) string {
	lines := strings.Split(vp.View(), "\n")
	bar := Generate(vp, len(lines), style)

	for i, line := range lines {
		if pad := vp.Width - lipgloss.Width(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		lines[i] = line + bar[i]
	}
	return strings.Join(lines, "\n")
}
