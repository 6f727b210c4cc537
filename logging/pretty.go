package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/grovetools/onair/tui/theme"
)

// Printer writes styled status lines for people at a terminal. Use a logger
// for anything that belongs in the daemon log.
type Printer struct {
	w     io.Writer
	theme *theme.Theme
}

// NewPrinter returns a Printer on w, or stderr when w is nil.
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = os.Stderr
	}
	return &Printer{w: w, theme: theme.DefaultTheme}
}

func (p *Printer) Success(format string, args ...any) {
	fmt.Fprintf(p.w, "%s %s\n", p.theme.Success.Render(theme.IconSuccess), fmt.Sprintf(format, args...))
}

func (p *Printer) Warn(format string, args ...any) {
	fmt.Fprintf(p.w, "%s %s\n", p.theme.Warning.Render(theme.IconWarning), p.theme.Warning.Render(fmt.Sprintf(format, args...)))
}

// Error prints msg followed by err when it is non-nil.
func (p *Printer) Error(msg string, err error) {
	line := p.theme.Error.Render(theme.IconError) + " " + p.theme.Error.Render(msg)
	if err != nil {
		line += ": " + err.Error()
	}
	fmt.Fprintln(p.w, line)
}

// Field prints an indented key: value pair.
func (p *Printer) Field(key string, value any) {
	fmt.Fprintf(p.w, "  %s %v\n", p.theme.Muted.Render(key+":"), value)
}
