package jsonlview

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/grovetools/jsonlview/config"
	"github.com/grovetools/jsonlview/tui/keymap"
)

// KeyMap defines the keybindings of the document viewer.
type KeyMap struct {
	keymap.Base

	Replace        key.Binding
	ReplaceCurrent key.Binding
	ReplaceAll     key.Binding
	SwitchView     key.Binding
	LoadMore       key.Binding
	CopyRecord     key.Binding
	OpenText       key.Binding
	FocusNext      key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Base: keymap.NewBase(),
		Replace: key.NewBinding(
			key.WithKeys("ctrl+h"),
			key.WithHelp("C-h", "search and replace"),
		),
		ReplaceCurrent: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "replace match"),
		),
		ReplaceAll: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "replace all"),
		),
		SwitchView: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "structured/raw"),
		),
		LoadMore: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "load more"),
		),
		CopyRecord: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy entry"),
		),
		OpenText: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open as text"),
		),
		FocusNext: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "search/replace field"),
		),
	}
}

// LoadKeyMap returns the default bindings with viewer.keys overrides applied.
func LoadKeyMap(cfg *config.Config) KeyMap {
	km := DefaultKeyMap()
	if cfg != nil {
		keymap.ApplyOverrides(&km, cfg.Viewer.Keys)
	}
	return km
}

// ShortHelp returns the bindings of the hint bar.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.SearchNext, k.FoldToggle, k.SwitchView, k.CopyRecord, k.Help, k.Quit}
}

// Sections groups every binding for the help overlay.
func (k KeyMap) Sections() []keymap.Section {
	return []keymap.Section{
		k.NavigationSection().With(k.LoadMore),
		k.SearchSection().With(k.Replace, k.ReplaceCurrent, k.ReplaceAll, k.FocusNext),
		keymap.ViewSection(k.SwitchView, k.FoldToggle, k.FoldOpenAll, k.FoldCloseAll),
		keymap.ActionsSection(k.CopyRecord, k.OpenText),
		k.SystemSection(),
	}
}

// FullHelp returns Sections as help columns.
func (k KeyMap) FullHelp() [][]key.Binding {
	return keymap.SectionsHelp(k.Sections())
}
