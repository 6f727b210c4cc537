// Package theme holds the lipgloss palettes and styles shared by the log
// formatter, the CLI and the monitor.
package theme

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/grovetools/onair/config"
)

const defaultThemeName = "kanagawa"

// --- Kanagawa Dragon (dark) palette ---
const (
	kanagawaDarkGreen   = "#98BB6C"
	kanagawaDarkYellow  = "#FF9E3B"
	kanagawaDarkRed     = "#FF5D62"
	kanagawaDarkCyan    = "#7E9CD8"
	kanagawaDarkViolet  = "#957FB8"
	kanagawaDarkText    = "#DCD7BA"
	kanagawaDarkMuted   = "#727169"
	kanagawaDarkBorder  = "#363646"
	kanagawaDarkSubtle  = "#1F1F28"
	kanagawaDarkOnColor = "#1D1C19"
)

// --- Kanagawa Wave (light) palette ---
const (
	kanagawaLightGreen   = "#4E7C5A"
	kanagawaLightYellow  = "#A68A64"
	kanagawaLightRed     = "#C34043"
	kanagawaLightCyan    = "#5B8BBE"
	kanagawaLightViolet  = "#674D7A"
	kanagawaLightText    = "#2B2F42"
	kanagawaLightMuted   = "#6C7086"
	kanagawaLightBorder  = "#B5BDC5"
	kanagawaLightSubtle  = "#F7F7FB"
	kanagawaLightOnColor = "#E6E9EF"
)

// --- Terminal (ANSI-friendly) palette ---
const (
	terminalGreen   = "2"
	terminalYellow  = "3"
	terminalRed     = "1"
	terminalCyan    = "6"
	terminalViolet  = "5"
	terminalText    = "7"
	terminalMuted   = "8"
	terminalBorder  = "8"
	terminalSubtle  = "0"
	terminalOnColor = "0"
)

// Colors is the palette of a theme.
type Colors struct {
	Green   lipgloss.TerminalColor
	Yellow  lipgloss.TerminalColor
	Red     lipgloss.TerminalColor
	Cyan    lipgloss.TerminalColor
	Violet  lipgloss.TerminalColor
	Text    lipgloss.TerminalColor
	Muted   lipgloss.TerminalColor
	Border  lipgloss.TerminalColor
	Subtle  lipgloss.TerminalColor
	OnColor lipgloss.TerminalColor
}

// Theme holds the pre-configured styles.
type Theme struct {
	Colors Colors

	Header lipgloss.Style
	Title  lipgloss.Style

	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	Bold   lipgloss.Style
	Normal lipgloss.Style
	Muted  lipgloss.Style
	Accent lipgloss.Style

	Box   lipgloss.Style
	Panel lipgloss.Style

	// Tally styles: red for program, green for preview.
	Program lipgloss.Style
	Preview lipgloss.Style
	OnAir   lipgloss.Style
	OffAir  lipgloss.Style
	Rec     lipgloss.Style
}

var themeRegistry = map[string]func() Colors{
	"kanagawa": newKanagawaColors,
	"terminal": newTerminalColors,
}

var themeAliases = map[string]string{
	"dark":            "kanagawa",
	"light":           "kanagawa",
	"kanagawa-dragon": "kanagawa",
	"kanagawa-wave":   "kanagawa",
	"ansi":            "terminal",
}

// DefaultTheme is the theme selected by ONAIR_THEME or the tui extension.
var DefaultTheme = NewTheme()

// NewTheme creates a theme based on the configured theme selection.
func NewTheme() *Theme {
	return NewThemeWithName(getThemeName())
}

// NewThemeWithName constructs a theme from a specific palette name.
func NewThemeWithName(name string) *Theme {
	return newThemeFromColors(resolveThemeColors(name))
}

// RenderStatus renders text with the appropriate status style.
func RenderStatus(status, text string) string {
	switch status {
	case "success":
		return DefaultTheme.Success.Render(text)
	case "error":
		return DefaultTheme.Error.Render(text)
	case "warning":
		return DefaultTheme.Warning.Render(text)
	case "info":
		return DefaultTheme.Info.Render(text)
	default:
		return text
	}
}

func newThemeFromColors(colors Colors) *Theme {
	tally := func(bg lipgloss.TerminalColor) lipgloss.Style {
		return lipgloss.NewStyle().
			Background(bg).
			Foreground(colors.OnColor).
			Bold(true).
			Padding(0, 1)
	}
	return &Theme{
		Colors: colors,

		Header: lipgloss.NewStyle().
			Bold(true).
			MarginBottom(1),

		Title: lipgloss.NewStyle().
			Bold(true).
			Underline(true),

		Success: lipgloss.NewStyle().Foreground(colors.Green).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(colors.Red).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(colors.Yellow).Bold(true),
		Info:    lipgloss.NewStyle().Foreground(colors.Cyan).Bold(true),

		Bold:   lipgloss.NewStyle().Bold(true),
		Normal: lipgloss.NewStyle().Foreground(colors.Text),
		Muted:  lipgloss.NewStyle().Foreground(colors.Muted),
		Accent: lipgloss.NewStyle().Foreground(colors.Violet).Bold(true),

		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colors.Border).
			Padding(0, 1),

		Panel: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(colors.Border).
			Background(colors.Subtle).
			Padding(0, 1),

		Program: tally(colors.Red),
		Preview: tally(colors.Green),
		OnAir:   tally(colors.Red),
		OffAir:  lipgloss.NewStyle().Foreground(colors.Muted).Padding(0, 1),
		Rec:     lipgloss.NewStyle().Foreground(colors.Red).Bold(true),
	}
}

func resolveThemeColors(name string) Colors {
	key := normalizeThemeName(name)
	if alias, ok := themeAliases[key]; ok {
		key = alias
	}
	if builder, ok := themeRegistry[key]; ok {
		return builder()
	}
	return themeRegistry[defaultThemeName]()
}

func normalizeThemeName(name string) string {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.ReplaceAll(normalized, " ", "-")
	return strings.ReplaceAll(normalized, "_", "-")
}

func getThemeName() string {
	if theme := normalizeThemeName(os.Getenv("ONAIR_THEME")); theme != "" {
		return theme
	}

	cfg, err := config.LoadDefault()
	if err != nil || cfg == nil {
		return defaultThemeName
	}

	var tuiCfg struct {
		Theme string `yaml:"theme"`
	}
	if err := cfg.UnmarshalExtension("tui", &tuiCfg); err == nil {
		if theme := normalizeThemeName(tuiCfg.Theme); theme != "" {
			return theme
		}
	}

	return defaultThemeName
}

func newKanagawaColors() Colors {
	return Colors{
		Green:   lipgloss.AdaptiveColor{Light: kanagawaLightGreen, Dark: kanagawaDarkGreen},
		Yellow:  lipgloss.AdaptiveColor{Light: kanagawaLightYellow, Dark: kanagawaDarkYellow},
		Red:     lipgloss.AdaptiveColor{Light: kanagawaLightRed, Dark: kanagawaDarkRed},
		Cyan:    lipgloss.AdaptiveColor{Light: kanagawaLightCyan, Dark: kanagawaDarkCyan},
		Violet:  lipgloss.AdaptiveColor{Light: kanagawaLightViolet, Dark: kanagawaDarkViolet},
		Text:    lipgloss.AdaptiveColor{Light: kanagawaLightText, Dark: kanagawaDarkText},
		Muted:   lipgloss.AdaptiveColor{Light: kanagawaLightMuted, Dark: kanagawaDarkMuted},
		Border:  lipgloss.AdaptiveColor{Light: kanagawaLightBorder, Dark: kanagawaDarkBorder},
		Subtle:  lipgloss.AdaptiveColor{Light: kanagawaLightSubtle, Dark: kanagawaDarkSubtle},
		OnColor: lipgloss.AdaptiveColor{Light: kanagawaLightOnColor, Dark: kanagawaDarkOnColor},
	}
}

func newTerminalColors() Colors {
	return Colors{
		Green:   lipgloss.Color(terminalGreen),
		Yellow:  lipgloss.Color(terminalYellow),
		Red:     lipgloss.Color(terminalRed),
		Cyan:    lipgloss.Color(terminalCyan),
		Violet:  lipgloss.Color(terminalViolet),
		Text:    lipgloss.Color(terminalText),
		Muted:   lipgloss.Color(terminalMuted),
		Border:  lipgloss.Color(terminalBorder),
		Subtle:  lipgloss.Color(terminalSubtle),
		OnColor: lipgloss.Color(terminalOnColor),
	}
}
