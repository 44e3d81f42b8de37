package picker

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/grovetools/jsonlview/tui/keymap"
)

// KeyMap defines the keybindings for the document picker.
type KeyMap struct {
	keymap.Base
	Select key.Binding
	Reload key.Binding
}

// DefaultKeyMap returns the picker bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Base: keymap.NewBase(),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Reload: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "rescan"),
		),
	}
}

// ShortHelp returns the hint bar bindings.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Search, k.Help, k.Quit}
}

// Sections returns the bindings grouped for the help overlay.
func (k KeyMap) Sections() []keymap.Section {
	return []keymap.Section{
		keymap.NewSection(keymap.SectionNavigation, k.Up, k.Down, k.HalfPageUp, k.HalfPageDown, k.Top, k.Bottom),
		keymap.NewSection(keymap.SectionActions, k.Select, k.Search, k.Reload),
		k.SystemSection(),
	}
}

// FullHelp returns the help overlay columns.
func (k KeyMap) FullHelp() [][]key.Binding {
	return keymap.SectionsHelp(k.Sections())
}
