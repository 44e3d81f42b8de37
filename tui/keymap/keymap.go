package keymap

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/grovetools/jsonlview/config"
)

// Base contains the bindings shared by jsonlview screens. Vim-style keys
// come first, arrows and paging keys are alternates.
type Base struct {
	// Navigation
	Up           key.Binding
	Down         key.Binding
	PageUp       key.Binding
	PageDown     key.Binding
	HalfPageUp   key.Binding
	HalfPageDown key.Binding
	Top          key.Binding // gg sequence
	Bottom       key.Binding // G

	// Search
	Search      key.Binding
	SearchNext  key.Binding
	SearchPrev  key.Binding
	ClearSearch key.Binding

	// Fold
	FoldToggle   key.Binding
	FoldOpenAll  key.Binding // zR
	FoldCloseAll key.Binding // zM

	// System
	Help key.Binding
	Quit key.Binding
}

// NewBase returns the default bindings.
func NewBase() Base {
	return Base{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+b"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+f"),
			key.WithHelp("pgdn", "page down"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("C-u", "half page up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("C-d", "half page down"),
		),
		Top: key.NewBinding(
			key.WithKeys("gg", "home"),
			key.WithHelp("gg", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "bottom"),
		),

		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		SearchNext: key.NewBinding(
			key.WithKeys("n", "enter"),
			key.WithHelp("n/enter", "next match"),
		),
		SearchPrev: key.NewBinding(
			key.WithKeys("N", "shift+enter"),
			key.WithHelp("N", "previous match"),
		),
		ClearSearch: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close search"),
		),

		FoldToggle: key.NewBinding(
			key.WithKeys(" ", "za"),
			key.WithHelp("space", "toggle entry"),
		),
		FoldOpenAll: key.NewBinding(
			key.WithKeys("zR"),
			key.WithHelp("zR", "expand all"),
		),
		FoldCloseAll: key.NewBinding(
			key.WithKeys("zM"),
			key.WithHelp("zM", "collapse all"),
		),

		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Load returns the default bindings with the viewer.keys overrides from cfg
// applied. A nil config yields the defaults.
func Load(cfg *config.Config) Base {
	base := NewBase()
	if cfg != nil {
		ApplyOverrides(&base, cfg.Viewer.Keys)
	}
	return base
}

// ShortHelp returns the bindings shown in the one-line help bar.
func (k Base) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Help, k.Quit}
}

// NavigationSection returns the navigation bindings.
func (k Base) NavigationSection() Section {
	return NavigationSection(k.Up, k.Down, k.PageUp, k.PageDown, k.HalfPageUp, k.HalfPageDown, k.Top, k.Bottom)
}

// SearchSection returns the search bindings.
func (k Base) SearchSection() Section {
	return SearchSection(k.Search, k.SearchNext, k.SearchPrev, k.ClearSearch)
}

// FoldSection returns the collapse bindings.
func (k Base) FoldSection() Section {
	return FoldSection(k.FoldToggle, k.FoldOpenAll, k.FoldCloseAll)
}

// SystemSection returns help and quit.
func (k Base) SystemSection() Section {
	return SystemSection(k.Help, k.Quit)
}

// Sections returns every base section.
func (k Base) Sections() []Section {
	return []Section{k.NavigationSection(), k.SearchSection(), k.FoldSection(), k.SystemSection()}
}

// FullHelp renders Sections as help columns, each headed by its name.
func (k Base) FullHelp() [][]key.Binding {
	return SectionsHelp(k.Sections())
}

// SequenceBindings are the multi-key bindings that need a SequenceState.
func (k Base) SequenceBindings() []key.Binding {
	return []key.Binding{k.Top, k.FoldToggle, k.FoldOpenAll, k.FoldCloseAll}
}
