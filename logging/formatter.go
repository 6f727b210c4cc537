package logging

import (
	"bytes"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// TextFormatter renders `2006-01-02 15:04:05.000 [LEVEL] [component] msg k=v`.
// Output carries no color codes: the same bytes go to the log file that
// `onair logs` parses.
type TextFormatter struct {
	Config FormatConfig
}

func (f *TextFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	b := entry.Buffer
	if b == nil {
		b = &bytes.Buffer{}
	}

	if !f.Config.DisableTimestamp {
		b.WriteString(entry.Time.Format("2006-01-02 15:04:05.000"))
		b.WriteByte(' ')
	}
	b.WriteString("[" + levelName(entry.Level) + "]")

	if c, ok := entry.Data["component"]; ok && !f.Config.DisableComponent {
		fmt.Fprintf(b, " [%v]", c)
	}
	if entry.HasCaller() {
		fmt.Fprintf(b, " [%s:%d %s]", filepath.Base(entry.Caller.File), entry.Caller.Line, filepath.Base(entry.Caller.Function))
	}
	b.WriteByte(' ')
	b.WriteString(entry.Message)

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		if k != "component" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteByte(' ')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(fieldValue(entry.Data[k]))
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}

func levelName(l logrus.Level) string {
	if l == logrus.WarnLevel {
		return "WARN"
	}
	return strings.ToUpper(l.String())
}

// fieldValue quotes values that would otherwise split into several fields.
func fieldValue(v any) string {
	if err, ok := v.(error); ok {
		v = err.Error()
	}
	s := fmt.Sprint(v)
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return strconv.Quote(s)
	}
	return s
}
