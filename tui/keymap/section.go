package keymap

import "github.com/charmbracelet/bubbles/key"

// Section names used in help screens.
const (
	SectionNavigation = "Navigation"
	SectionSearch     = "Search"
	SectionView       = "View"
	SectionFold       = "Fold"
	SectionActions    = "Actions"
	SectionSystem     = "System"
)

// Section is a named group of bindings for the help screen.
type Section struct {
	Name     string
	Bindings []key.Binding
}

// SectionedKeyMap is implemented by keymaps that group their bindings.
type SectionedKeyMap interface {
	Sections() []Section
}

// NewSection creates a section with a custom name.
func NewSection(name string, bindings ...key.Binding) Section {
	return Section{Name: name, Bindings: bindings}
}

func NavigationSection(bindings ...key.Binding) Section {
	return Section{Name: SectionNavigation, Bindings: bindings}
}

func SearchSection(bindings ...key.Binding) Section {
	return Section{Name: SectionSearch, Bindings: bindings}
}

func ViewSection(bindings ...key.Binding) Section {
	return Section{Name: SectionView, Bindings: bindings}
}

func FoldSection(bindings ...key.Binding) Section {
	return Section{Name: SectionFold, Bindings: bindings}
}

func ActionsSection(bindings ...key.Binding) Section {
	return Section{Name: SectionActions, Bindings: bindings}
}

func SystemSection(bindings ...key.Binding) Section {
	return Section{Name: SectionSystem, Bindings: bindings}
}

// FilterEnabled returns the enabled bindings of the section.
func (s Section) FilterEnabled() []key.Binding {
	var result []key.Binding
	for _, b := range s.Bindings {
		if b.Enabled() {
			result = append(result, b)
		}
	}
	return result
}

// IsEmpty returns true if the section has no enabled bindings.
func (s Section) IsEmpty() bool {
	return len(s.FilterEnabled()) == 0
}

// With returns a copy of the section with bindings appended.
func (s Section) With(bindings ...key.Binding) Section {
	combined := make([]key.Binding, len(s.Bindings), len(s.Bindings)+len(bindings))
	copy(combined, s.Bindings)
	combined = append(combined, bindings...)
	return Section{Name: s.Name, Bindings: combined}
}

// SectionsHelp lays sections out as bubbles/help columns. Each column starts
// with a disabled-key header binding carrying the section name. Empty
// sections are skipped.
func SectionsHelp(sections []Section) [][]key.Binding {
	var result [][]key.Binding
	for _, s := range sections {
		if s.IsEmpty() {
			continue
		}
		header := key.NewBinding(key.WithKeys(""), key.WithHelp("", s.Name))
		result = append(result, append([]key.Binding{header}, s.FilterEnabled()...))
	}
	return result
}
