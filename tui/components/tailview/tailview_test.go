package tailview

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/jsonlview/pkg/record"
)

type chanSource struct {
	ch  chan *record.Record
	err error
}

func (s *chanSource) Records() <-chan *record.Record { return s.ch }
func (s *chanSource) Err() error                     { return s.err }

func sized(m Model) Model {
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 10})
	return m
}

func TestStreamRecords(t *testing.T) {
	src := &chanSource{ch: make(chan *record.Record, 2)}
	src.ch <- record.ParseLine(0, `{"level":"info"}`)
	src.ch <- record.ParseLine(1, `oops`)
	close(src.ch)

	m := sized(New(80, 10, 0))
	cmd := m.Start(src)
	for i := 0; i < 3; i++ {
		require.NotNil(t, cmd)
		msg := cmd()
		if _, ok := msg.(DoneMsg); ok {
			m, _ = m.Update(msg)
			break
		}
		var batch tea.Cmd
		m, batch = m.Update(msg)
		require.NotNil(t, batch)
		cmd = m.waitForRecord()
	}

	assert.Len(t, m.Records(), 2)
	assert.True(t, m.done)

	view := m.View()
	assert.Contains(t, view, `{"level":"info"}`)
	assert.Contains(t, view, "Parse Error:")
	assert.Contains(t, view, "2 entries, 1 invalid")
	assert.Contains(t, view, "stopped")
}

func TestFollowToggle(t *testing.T) {
	m := sized(New(80, 10, 0))
	assert.True(t, m.IsFollowing())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("f")})
	assert.False(t, m.IsFollowing())
	assert.Contains(t, m.View(), "paused")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("G")})
	assert.True(t, m.IsFollowing())
}

func TestFollowKeepsBottomInView(t *testing.T) {
	m := sized(New(80, 5, 0))
	for i := 0; i < 20; i++ {
		m.Add(record.ParseLine(i, `{"i":1}`))
	}
	assert.True(t, m.viewport.AtBottom())

	line, total := m.GetScrollInfo()
	assert.Equal(t, 20, total)
	assert.Greater(t, line, 1)

	m.Clear()
	line, total = m.GetScrollInfo()
	assert.Zero(t, line)
	assert.Zero(t, total)
}
