package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/hpcloud/tail"
	"github.com/spf13/cobra"

	"github.com/grovetools/onair/cli"
	"github.com/grovetools/onair/logging"
	"github.com/grovetools/onair/tui/theme"
)

// NewLogsCmd creates the `logs` command.
func NewLogsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Display the daemon log",
		Long: `Prints the daemon log file, optionally following it as it grows.

Examples:
  # Follow the daemon log
  onair logs -f

  # Last 100 lines of the engine component as JSON
  onair logs --tail 100 --component onaird --json`,
		RunE: runLogsE,
	}

	cmd.Flags().BoolP("follow", "f", false, "Follow log output")
	cmd.Flags().Int("tail", -1, "Number of lines to show from the end of the log (default: all)")
	cmd.Flags().StringSlice("component", nil, "Only show entries of these components")

	return cmd
}

func runLogsE(cmd *cobra.Command, args []string) error {
	opts := cli.GetOptions(cmd)
	follow, _ := cmd.Flags().GetBool("follow")
	tailLines, _ := cmd.Flags().GetInt("tail")
	components, _ := cmd.Flags().GetStringSlice("component")

	var logCfg logging.Config
	if cfg, err := opts.LoadConfig(); err == nil {
		_ = cfg.UnmarshalExtension("logging", &logCfg)
	}
	path := logging.FilePath(logCfg.File)

	if _, err := os.Stat(path); err != nil && !follow {
		return fmt.Errorf("no daemon log at %s", path)
	}

	tcfg := tail.Config{
		Follow:    follow,
		ReOpen:    follow,
		MustExist: !follow,
		Logger:    tail.DiscardingLogger,
	}
	if tailLines >= 0 {
		offset, err := tailOffset(path, tailLines)
		if err != nil {
			return err
		}
		tcfg.Location = &tail.SeekInfo{Offset: offset, Whence: io.SeekStart}
	}

	t, err := tail.TailFile(path, tcfg)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer t.Cleanup()

	filter := make(map[string]bool, len(components))
	for _, c := range components {
		filter[c] = true
	}

	out := cmd.OutOrStdout()
	for {
		select {
		case <-cmd.Context().Done():
			_ = t.Stop()
			return nil
		case line, ok := <-t.Lines:
			if !ok {
				return t.Err()
			}
			if line.Err != nil {
				return line.Err
			}
			entry := parseLogLine(line.Text)
			if len(filter) > 0 && !filter[entry.Component] {
				continue
			}
			if opts.JSONOutput {
				printLogJSON(out, entry)
			} else {
				printLogText(out, entry)
			}
		}
	}
}

// tailOffset returns the byte offset of the n-th line from the end of path.
func tailOffset(path string, n int) (int64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	if n == 0 {
		return int64(len(data)), nil
	}
	end := len(data)
	if end > 0 && data[end-1] == '\n' {
		end--
	}
	for i := end - 1; i >= 0; i-- {
		if data[i] == '\n' {
			n--
			if n == 0 {
				return int64(i + 1), nil
			}
		}
	}
	return 0, nil
}

// logEntry is one line of the daemon log. Fields is nil for lines that are
// not JSON.
type logEntry struct {
	Raw       string
	Component string
	Fields    map[string]interface{}
}

func parseLogLine(line string) logEntry {
	e := logEntry{Raw: line}
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(line), &m); err == nil {
		e.Fields = m
		e.Component, _ = m["component"].(string)
		return e
	}
	// Text format: "2006-01-02 15:04:05.000 [INFO] [component] message".
	rest := line
	for i := 0; i < 2; i++ {
		open := strings.IndexByte(rest, '[')
		if open < 0 {
			return e
		}
		end := strings.IndexByte(rest[open:], ']')
		if end < 0 {
			return e
		}
		if i == 1 {
			e.Component = rest[open+1 : open+end]
		}
		rest = rest[open+end+1:]
	}
	return e
}

func printLogJSON(w io.Writer, e logEntry) {
	if e.Fields == nil {
		data, _ := json.Marshal(map[string]interface{}{"component": e.Component, "raw_line": e.Raw})
		fmt.Fprintln(w, string(data))
		return
	}
	data, _ := json.Marshal(e.Fields)
	fmt.Fprintln(w, string(data))
}

// printLogText pretty-prints a JSON entry; text lines are printed as is.
func printLogText(w io.Writer, e logEntry) {
	if e.Fields == nil {
		fmt.Fprintln(w, e.Raw)
		return
	}
	t := theme.DefaultTheme

	ts, _ := e.Fields["time"].(string)
	level, _ := e.Fields["level"].(string)
	msg, _ := e.Fields["msg"].(string)

	parsed, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		parsed, _ = time.Parse(time.RFC3339, ts)
	}

	var levelStyle lipgloss.Style
	switch strings.ToLower(level) {
	case "error", "fatal", "panic":
		levelStyle = t.Error
	case "warning":
		levelStyle = t.Warning
	case "info":
		levelStyle = t.Info
	default:
		levelStyle = t.Muted
	}

	var keys []string
	for k := range e.Fields {
		switch k {
		case "time", "level", "msg", "component":
		default:
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	fields := make([]string, 0, len(keys))
	for _, k := range keys {
		fields = append(fields, fmt.Sprintf("%s=%v", t.Muted.Render(k), e.Fields[k]))
	}

	fmt.Fprintf(w, "%s %s [%s] %s %s\n",
		parsed.Format("15:04:05"),
		levelStyle.Render(strings.ToUpper(level)),
		t.Accent.Render(e.Component),
		msg,
		strings.Join(fields, " "),
	)
}
