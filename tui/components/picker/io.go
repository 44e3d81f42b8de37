package picker

import (
	tea "github.com/charmbracelet/bubbletea"
)

// LoadedMsg is sent when the document list has been scanned.
type LoadedMsg struct {
	Paths []string
	Err   error
}

// ReloadCmd scans for documents with the model's Loader.
func (m Model) ReloadCmd() tea.Cmd {
	if m.Loader == nil {
		return nil
	}
	load := m.Loader
	return func() tea.Msg {
		paths, err := load()
		return LoadedMsg{Paths: paths, Err: err}
	}
}
