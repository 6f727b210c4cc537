package keymap

import "github.com/charmbracelet/bubbles/key"

// Standard section names.
const (
	SectionSwitcher = "Switcher"
	SectionAudio    = "Audio"
	SectionMaster   = "Master"
	SectionSystem   = "System"
)

// Section is a named group of bindings for the help view.
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

// FilterEnabled returns the enabled bindings of s.
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
