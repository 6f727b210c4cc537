package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/grovetools/onair/tui/theme"
)

// Help text is wrapped to the terminal, within these bounds.
const (
	helpMaxWidth = 80
	helpMinWidth = 40
)

// ApplyStyledHelpRecursive installs the themed help renderer on cmd and every
// subcommand. Call it once the tree is complete.
func ApplyStyledHelpRecursive(cmd *cobra.Command) {
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		newHelpRenderer(theme.DefaultTheme, helpWidth()).render(c.OutOrStdout(), c)
	})
	for _, sub := range cmd.Commands() {
		ApplyStyledHelpRecursive(sub)
	}
}

func helpWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	switch {
	case err != nil || width < helpMinWidth:
		return helpMaxWidth
	case width > helpMaxWidth:
		return helpMaxWidth
	}
	return width
}

type helpRenderer struct {
	t       *theme.Theme
	width   int
	heading lipgloss.Style
	command lipgloss.Style
	flag    lipgloss.Style
}

func newHelpRenderer(t *theme.Theme, width int) *helpRenderer {
	return &helpRenderer{
		t:       t,
		width:   width - 2,
		heading: lipgloss.NewStyle().Bold(true).Foreground(t.Colors.Yellow),
		command: lipgloss.NewStyle().Bold(true).Foreground(t.Colors.Cyan),
		flag:    lipgloss.NewStyle().Foreground(t.Colors.Violet),
	}
}

func (h *helpRenderer) render(w io.Writer, cmd *cobra.Command) {
	fmt.Fprintln(w, " "+h.t.Accent.Render(cmd.CommandPath()))
	if cmd.Short != "" {
		h.paragraph(w, cmd.Short, h.t.Muted)
	}

	long, examples := splitExamples(cmd.Long)
	if long != "" && long != cmd.Short {
		fmt.Fprintln(w)
		h.paragraph(w, long, lipgloss.NewStyle())
	}

	h.section(w, "Usage")
	if cmd.Runnable() {
		fmt.Fprintln(w, "   "+cmd.UseLine())
	}
	if cmd.HasAvailableSubCommands() {
		fmt.Fprintln(w, "   "+cmd.CommandPath()+" <command>")
	}
	if len(cmd.Aliases) > 0 {
		fmt.Fprintln(w, "   "+h.t.Muted.Render("aliases: "+strings.Join(cmd.Aliases, ", ")))
	}

	if cmd.HasAvailableSubCommands() {
		h.section(w, "Commands")
		var rows [][2]string
		for _, sub := range cmd.Commands() {
			if sub.IsAvailableCommand() {
				rows = append(rows, [2]string{sub.Name(), sub.Short})
			}
		}
		h.columns(w, rows, h.command)
	}

	if rows := flagRows(cmd.LocalFlags()); len(rows) > 0 {
		h.section(w, "Flags")
		h.columns(w, rows, h.flag)
	}
	if rows := flagRows(cmd.InheritedFlags()); len(rows) > 0 {
		h.section(w, "Global Flags")
		h.columns(w, rows, h.flag)
	}

	if cmd.Example != "" {
		examples = cmd.Example
	}
	if examples != "" {
		h.section(w, "Examples")
		for _, line := range strings.Split(examples, "\n") {
			line = strings.TrimSpace(line)
			switch {
			case line == "":
				fmt.Fprintln(w)
			case strings.HasPrefix(line, "#"):
				fmt.Fprintln(w, "   "+h.t.Muted.Render(line))
			default:
				fmt.Fprintln(w, "   "+line)
			}
		}
	}

	if cmd.HasAvailableSubCommands() {
		fmt.Fprintln(w)
		fmt.Fprintln(w, " "+h.t.Muted.Render(fmt.Sprintf("Run '%s <command> --help' for details.", cmd.CommandPath())))
	}
}

func (h *helpRenderer) section(w io.Writer, title string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, " "+h.heading.Render(strings.ToUpper(title)))
}

func (h *helpRenderer) paragraph(w io.Writer, text string, style lipgloss.Style) {
	for _, line := range wrap(text, h.width) {
		fmt.Fprintln(w, " "+style.Render(line))
	}
}

// columns prints name/description rows with descriptions aligned.
func (h *helpRenderer) columns(w io.Writer, rows [][2]string, nameStyle lipgloss.Style) {
	pad := 0
	for _, r := range rows {
		pad = max(pad, len(r[0]))
	}
	for _, r := range rows {
		fmt.Fprintf(w, "   %s%s  %s\n", nameStyle.Render(r[0]), strings.Repeat(" ", pad-len(r[0])), r[1])
	}
}

func flagRows(fs *pflag.FlagSet) [][2]string {
	var rows [][2]string
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		name := "    --" + f.Name
		if f.Shorthand != "" {
			name = "-" + f.Shorthand + ", --" + f.Name
		}
		if t := f.Value.Type(); t != "bool" {
			name += " " + t
		}
		usage := f.Usage
		switch f.DefValue {
		case "", "false", "0", "[]", "0s":
		default:
			usage += fmt.Sprintf(" (default %s)", f.DefValue)
		}
		rows = append(rows, [2]string{name, usage})
	})
	return rows
}

// splitExamples separates a trailing "Examples:" block from a long
// description.
func splitExamples(long string) (string, string) {
	for _, marker := range []string{"\nExamples:\n", "\nExample:\n"} {
		if i := strings.Index(long, marker); i >= 0 {
			return strings.TrimSpace(long[:i]), strings.TrimSpace(long[i+len(marker):])
		}
	}
	return strings.TrimSpace(long), ""
}

// wrap breaks text into lines of at most width runes, keeping existing
// line breaks and indentation of short lines.
func wrap(text string, width int) []string {
	var out []string
	for _, para := range strings.Split(text, "\n") {
		if len(para) <= width {
			out = append(out, para)
			continue
		}
		line := ""
		for _, word := range strings.Fields(para) {
			if line != "" && len(line)+1+len(word) > width {
				out = append(out, line)
				line = ""
			}
			if line == "" {
				line = word
			} else {
				line += " " + word
			}
		}
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
