// Package keymap defines the key bindings of the production monitor.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/grovetools/onair/config"
)

// Monitor holds every binding of the monitor TUI.
type Monitor struct {
	// Switcher
	Cut          key.Binding
	Auto         key.Binding
	NextPreview  key.Binding
	PrevPreview  key.Binding
	Preview      key.Binding // number keys pick a scene by position
	PreviewBlack key.Binding

	// Audio
	Up            key.Binding
	Down          key.Binding
	ToggleMute    key.Binding
	ToggleSolo    key.Binding
	ToggleMicLock key.Binding
	ToggleAFV     key.Binding

	// Master
	GoLive   key.Binding
	Record   key.Binding
	Failsafe key.Binding

	// System
	Help key.Binding
	Quit key.Binding
}

// Default returns the stock monitor bindings.
func Default() Monitor {
	return Monitor{
		Cut: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "cut"),
		),
		Auto: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "auto transition"),
		),
		NextPreview: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/right", "next preview"),
		),
		PrevPreview: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/left", "previous preview"),
		),
		PreviewBlack: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "preview black"),
		),
		Preview: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "preview scene"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "previous channel"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "next channel"),
		),
		ToggleMute: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mute channel"),
		),
		ToggleSolo: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "solo channel"),
		),
		ToggleMicLock: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "mic lock"),
		),
		ToggleAFV: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "audio follows video"),
		),
		GoLive: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("C-g", "go live / off air"),
		),
		Record: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("C-r", "record"),
		),
		Failsafe: key.NewBinding(
			key.WithKeys("!"),
			key.WithHelp("!", "failsafe"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// tuiConfig is the `tui` section of onair.yml.
type tuiConfig struct {
	Keybindings Overrides `yaml:"keybindings"`
}

// Load returns the default bindings with the overrides of cfg's tui section.
//
//	tui:
//	  keybindings:
//	    go_live: ["F12"]
func Load(cfg *config.Config) Monitor {
	km := Default()
	if cfg == nil {
		return km
	}
	var tc tuiConfig
	if err := cfg.UnmarshalExtension("tui", &tc); err == nil {
		ApplyOverrides(&km, tc.Keybindings)
	}
	return km
}

// ShortHelp returns the bindings shown in the footer.
func (k Monitor) ShortHelp() []key.Binding {
	return []key.Binding{k.Cut, k.Auto, k.GoLive, k.ToggleMute, k.Help, k.Quit}
}

// FullHelp returns every binding, one column per section.
func (k Monitor) FullHelp() [][]key.Binding {
	sections := k.Sections()
	out := make([][]key.Binding, 0, len(sections))
	for _, s := range sections {
		if !s.IsEmpty() {
			out = append(out, s.FilterEnabled())
		}
	}
	return out
}

// Sections groups the bindings for the help view.
func (k Monitor) Sections() []Section {
	return []Section{
		NewSection(SectionSwitcher, k.Cut, k.Auto, k.NextPreview, k.PrevPreview, k.Preview, k.PreviewBlack),
		NewSection(SectionAudio, k.Up, k.Down, k.ToggleMute, k.ToggleSolo, k.ToggleMicLock, k.ToggleAFV),
		NewSection(SectionMaster, k.GoLive, k.Record, k.Failsafe),
		NewSection(SectionSystem, k.Help, k.Quit),
	}
}
