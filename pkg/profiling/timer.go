// Package profiling times the phases of a command run (config load, storage
// open, scoreboard catalog, engine start) and wires pprof into cobra.
package profiling

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"
)

// Stopper ends a span started with Start.
type Stopper interface {
	Stop()
}

type span struct {
	name     string
	start    time.Time
	duration time.Duration
	children []*span
	tracker  *Tracker
}

func (s *span) Stop() {
	s.tracker.end(s, time.Since(s.start))
}

// Tracker records nested spans. Spans nest in the order they are started;
// it is meant for the sequential part of a command, not for goroutines.
type Tracker struct {
	mu      sync.Mutex
	enabled bool
	root    *span
	stack   []*span
}

var global = &Tracker{}

// Enable starts recording on the process-wide tracker.
func Enable() { global.Enable() }

// Enabled reports whether the process-wide tracker records spans.
func Enabled() bool {
	global.mu.Lock()
	defer global.mu.Unlock()
	return global.enabled
}

// Start opens a span on the process-wide tracker. It is a no-op until
// Enable is called.
func Start(name string) Stopper { return global.Start(name) }

// Summarize writes the process-wide span tree to w.
func Summarize(w io.Writer) { global.Summarize(w) }

// Enable starts recording; spans started before are dropped.
func (t *Tracker) Enable() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.enabled {
		return
	}
	t.enabled = true
	t.root = &span{name: "total", start: time.Now(), tracker: t}
	t.stack = []*span{t.root}
}

// Start opens a child of the innermost open span.
func (t *Tracker) Start(name string) Stopper {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.enabled {
		return noop{}
	}
	s := &span{name: name, start: time.Now(), tracker: t}
	parent := t.stack[len(t.stack)-1]
	parent.children = append(parent.children, s)
	t.stack = append(t.stack, s)
	return s
}

func (t *Tracker) end(s *span, d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s.duration = d
	for i := len(t.stack) - 1; i > 0; i-- {
		if t.stack[i] == s {
			t.stack = t.stack[:i]
			return
		}
	}
}

// Summarize writes the span tree with each span's share of the total.
func (t *Tracker) Summarize(w io.Writer) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.enabled {
		return
	}
	total := time.Since(t.root.start)
	fmt.Fprintf(w, "timing: %v total\n", total.Round(100*time.Microsecond))
	for _, c := range sorted(t.root.children) {
		writeSpan(w, c, 1, total)
	}
}

func writeSpan(w io.Writer, s *span, depth int, total time.Duration) {
	d := s.duration
	label := d.Round(100 * time.Microsecond).String()
	if d == 0 {
		label = "open"
	}
	pct := 0.0
	if total > 0 {
		pct = float64(d) / float64(total) * 100
	}
	fmt.Fprintf(w, "%s%-*s %10s %5.1f%%\n", strings.Repeat("  ", depth), 32-2*depth, s.name, label, pct)
	for _, c := range sorted(s.children) {
		writeSpan(w, c, depth+1, total)
	}
}

func sorted(spans []*span) []*span {
	out := append([]*span(nil), spans...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].start.Before(out[j].start) })
	return out
}

type noop struct{}

func (noop) Stop() {}
