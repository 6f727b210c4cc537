// Package table renders lipgloss tables in the monitor's style.
package table

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"

	"github.com/grovetools/onair/tui/theme"
)

// Options configures a table.
type Options struct {
	Bordered      bool
	AlternateRows bool
	Theme         *theme.Theme
}

// DefaultOptions returns the default table options
func DefaultOptions() Options {
	return Options{Bordered: true, AlternateRows: true, Theme: theme.DefaultTheme}
}

// Builder provides a fluent interface for creating styled tables
type Builder struct {
	table   *ltable.Table
	options Options
}

// NewBuilder creates a new table builder
func NewBuilder() *Builder {
	return &Builder{table: ltable.New(), options: DefaultOptions()}
}

// WithTheme sets the theme
func (b *Builder) WithTheme(t *theme.Theme) *Builder {
	b.options.Theme = t
	return b
}

// WithBorder enables or disables the border
func (b *Builder) WithBorder(bordered bool) *Builder {
	b.options.Bordered = bordered
	return b
}

// WithAlternateRows enables or disables alternating row colors
func (b *Builder) WithAlternateRows(alternate bool) *Builder {
	b.options.AlternateRows = alternate
	return b
}

// WithHeaders sets the table headers
func (b *Builder) WithHeaders(headers ...string) *Builder {
	b.table = b.table.Headers(headers...)
	return b
}

// WithRows sets the table rows
func (b *Builder) WithRows(rows ...[]string) *Builder {
	for _, row := range rows {
		b.table = b.table.Row(row...)
	}
	return b
}

// WithWidth sets the table width
func (b *Builder) WithWidth(width int) *Builder {
	b.table = b.table.Width(width)
	return b
}

// Build creates the styled table
func (b *Builder) Build() *ltable.Table {
	t := b.options.Theme
	if t == nil {
		t = theme.DefaultTheme
	}
	if b.options.Bordered {
		b.table = b.table.
			Border(lipgloss.RoundedBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(t.Colors.Border))
	} else {
		b.table = b.table.Border(lipgloss.HiddenBorder())
	}

	alternate := b.options.AlternateRows
	b.table = b.table.StyleFunc(func(row, col int) lipgloss.Style {
		if row == ltable.HeaderRow {
			return t.Bold.Padding(0, 1)
		}
		style := lipgloss.NewStyle().Padding(0, 1)
		if alternate && row%2 == 1 {
			style = style.Background(t.Colors.Subtle)
		}
		return style
	})
	return b.table
}

// SimpleTable creates a basic table with headers and rows
func SimpleTable(headers []string, rows [][]string) string {
	return NewBuilder().WithHeaders(headers...).WithRows(rows...).Build().String()
}

// SelectableTable renders a table with an arrow left of the selected data row.
func SelectableTable(headers []string, rows [][]string, selected int) string {
	lines := strings.Split(SimpleTable(headers, rows), "\n")

	// Top border, header and separator precede the first data row.
	selectedLine := 1 + selected
	if len(headers) > 0 {
		selectedLine = 3 + selected
	}

	arrow := theme.DefaultTheme.Accent.Render(theme.IconArrow)
	pad := strings.Repeat(" ", lipgloss.Width(arrow))
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		if i == selectedLine {
			b.WriteString(arrow)
		} else {
			b.WriteString(pad)
		}
		b.WriteByte(' ')
		b.WriteString(line)
	}
	return b.String()
}
