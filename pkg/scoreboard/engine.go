package scoreboard

import (
	"fmt"
	"math"
	"time"

	oaerrors "github.com/grovetools/onair/errors"
)

// Defaults for the retention of the audit log and the undo history.
const (
	DefaultMaxEvents    = 500
	DefaultHistoryDepth = 50
)

// Engine applies actions to scoreboards built from a catalog.
type Engine struct {
	catalog      *Catalog
	maxEvents    int
	historyDepth int
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxEvents caps the audit log. Oldest entries are dropped first.
func WithMaxEvents(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxEvents = n
		}
	}
}

// WithHistoryDepth caps the number of undo snapshots kept.
func WithHistoryDepth(n int) Option {
	return func(e *Engine) {
		if n >= 0 {
			e.historyDepth = n
		}
	}
}

// NewEngine creates an engine over catalog (the embedded catalog when nil).
func NewEngine(catalog *Catalog, opts ...Option) *Engine {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	e := &Engine{catalog: catalog, maxEvents: DefaultMaxEvents, historyDepth: DefaultHistoryDepth}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Catalog returns the engine's template catalog.
func (e *Engine) Catalog() *Catalog {
	return e.catalog
}

// Load builds a fresh scoreboard for sportID.
func (e *Engine) Load(sportID string) State {
	return e.catalog.Load(sportID)
}

// Result is the outcome of applying one action.
type Result struct {
	State   State
	History []State
	// Special is the verb handled outside the action table, if any.
	Special string
}

// Apply runs actionID against cur. history holds the undo snapshots, newest
// last. Neither input is modified.
func (e *Engine) Apply(cur State, history []State, actionID string, now time.Time) (Result, error) {
	verb := actionID
	var action Action
	if !IsSpecial(actionID) {
		var ok bool
		action, ok = cur.Action(actionID)
		if !ok {
			return Result{State: cur, History: history}, oaerrors.UnknownAction(cur.SportID(), actionID)
		}
		verb = action.Special
	}

	payload := map[string]any{}
	if raw, ok := cur.Get("actions." + actionID); ok {
		if m, ok := asMap(raw); ok {
			payload = cloneValue(m).(map[string]any)
		}
	}

	var next State
	switch verb {
	case StartStopClock:
		next = ApplyPatches(cur, []Patch{{Path: []string{"clock", "running"}, Op: OpToggle}})
	case ResetMatch:
		next = e.Load(cur.SportID())
		return Result{State: next, History: e.push(history, cur), Special: verb}, nil
	case UndoEvent:
		if len(history) == 0 {
			return Result{State: e.appendEvent(cur.Clone(), actionID, payload, now), History: history, Special: verb}, nil
		}
		prev := history[len(history)-1]
		next = prev.Clone()
		next["events"] = cloneValue(eventsOf(cur))
		history = history[:len(history)-1:len(history)-1]
		return Result{State: e.appendEvent(next, actionID, payload, now), History: history, Special: verb}, nil
	case ToggleScoreboard:
		next = cur.Clone()
	case NextInningHalf:
		next = nextInningHalf(cur)
	case "":
		next = ApplyPatches(cur, Compile(action))
	default:
		return Result{State: cur, History: history}, oaerrors.New(oaerrors.ErrCodeTemplateInvalid,
			fmt.Sprintf("action %s names unknown special %q", actionID, verb))
	}

	refreshDisplays(next)
	return Result{
		State:   e.appendEvent(next, actionID, payload, now),
		History: e.push(history, cur),
		Special: verb,
	}, nil
}

// Tick advances running clocks by one second. It reports whether anything changed.
func (e *Engine) Tick(cur State) (State, bool) {
	running, _ := cur.Get("clock.running")
	if r, _ := running.(bool); !r {
		return cur, false
	}
	display, _ := cur.Get("clock.display")
	if d, _ := display.(string); d == "" {
		return cur, false
	}
	seconds, _ := cur.Number("clock.seconds")
	patches := []Patch{}
	if seconds > 0 {
		patches = append(patches, Patch{Path: []string{"clock", "seconds"}, Op: OpAdd, Value: -1})
	}
	if seconds <= 1 {
		patches = append(patches, Patch{Path: []string{"clock", "running"}, Op: OpSet, Value: false})
	}
	if enabled, _ := cur.Get("shotClock.enabled"); enabled == true {
		if shot, _ := cur.Number("shotClock.seconds"); shot > 0 {
			patches = append(patches, Patch{Path: []string{"shotClock", "seconds"}, Op: OpAdd, Value: -1})
		}
	}
	next := ApplyPatches(cur, patches)
	refreshDisplays(next)
	return next, true
}

// FormatClock renders seconds as MM:SS.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func (e *Engine) push(history []State, snapshot State) []State {
	if e.historyDepth == 0 {
		return nil
	}
	out := make([]State, 0, len(history)+1)
	out = append(out, history...)
	out = append(out, snapshot)
	if len(out) > e.historyDepth {
		out = out[len(out)-e.historyDepth:]
	}
	return out
}

func (e *Engine) appendEvent(s State, actionID string, payload map[string]any, now time.Time) State {
	events := append(eventsOf(s), map[string]any{
		"type":      actionID,
		"timestamp": now.UTC().Format(time.RFC3339Nano),
		"payload":   payload,
	})
	if e.maxEvents > 0 && len(events) > e.maxEvents {
		events = events[len(events)-e.maxEvents:]
	}
	s["events"] = events
	return s
}

func eventsOf(s State) []any {
	raw, _ := s["events"].([]any)
	out := make([]any, len(raw))
	copy(out, raw)
	return out
}

// refreshDisplays recomputes the derived text fields after numeric changes.
func refreshDisplays(s State) {
	if clock, ok := asMap(s["clock"]); ok {
		if display, _ := clock["display"].(string); display != "" {
			if secs, ok := toFloat(clock["seconds"]); ok {
				clock["display"] = FormatClock(int(secs))
			}
		}
	}
	if stoppage, ok := asMap(s["stoppageTime"]); ok {
		if secs, ok := toFloat(stoppage["seconds"]); ok {
			stoppage["display"] = fmt.Sprintf("+%d", int(math.Floor(secs/60)))
		}
	}
	period, ok := asMap(s["period"])
	if !ok {
		return
	}
	rules, _ := asMap(s["rules"])
	labels, _ := rules["periodLabels"].([]any)
	if idx, ok := toFloat(period["index"]); ok && len(labels) > 0 {
		i := int(idx) - 1
		if i >= len(labels) {
			i = len(labels) - 1
		}
		if i >= 0 {
			period["label"] = labels[i]
		}
	}
}

func nextInningHalf(cur State) State {
	half, _ := cur.Get("inning.half")
	patches := []Patch{
		{Path: []string{"outs"}, Op: OpSet, Value: 0},
		{Path: []string{"count", "balls"}, Op: OpSet, Value: 0},
		{Path: []string{"count", "strikes"}, Op: OpSet, Value: 0},
		{Path: []string{"bases", "first"}, Op: OpSet, Value: false},
		{Path: []string{"bases", "second"}, Op: OpSet, Value: false},
		{Path: []string{"bases", "third"}, Op: OpSet, Value: false},
	}
	if half == "BOTTOM" {
		patches = append(patches,
			Patch{Path: []string{"inning", "half"}, Op: OpSet, Value: "TOP"},
			Patch{Path: []string{"inning", "index"}, Op: OpAdd, Value: 1},
		)
	} else {
		patches = append(patches, Patch{Path: []string{"inning", "half"}, Op: OpSet, Value: "BOTTOM"})
	}
	return ApplyPatches(cur, patches)
}
