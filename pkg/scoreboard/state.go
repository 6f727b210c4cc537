// Package scoreboard builds sport scoreboards from declarative templates and
// applies template actions to them.
//
// A scoreboard is a JSON-compatible tree. The fixed fields every sport shares
// are available through the typed Board view; sport specific fields (innings,
// shot clock, rounds) stay in the tree where actions can patch them.
package scoreboard

import (
	"encoding/json"
	"fmt"
	"strings"
)

// State is a scoreboard tree: maps, slices and scalars only.
type State map[string]any

// Clone returns a deep copy of the tree.
func (s State) Clone() State {
	if s == nil {
		return nil
	}
	return cloneValue(map[string]any(s)).(map[string]any)
}

// SportID returns the sport discriminator of the tree.
func (s State) SportID() string {
	id, _ := s["sportId"].(string)
	return id
}

// Get walks a dot-separated path.
func (s State) Get(path string) (any, bool) {
	var cur any = map[string]any(s)
	for _, key := range splitPath(path) {
		m, ok := asMap(cur)
		if !ok {
			return nil, false
		}
		cur, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// Number returns the numeric leaf at path.
func (s State) Number(path string) (float64, bool) {
	v, ok := s.Get(path)
	if !ok {
		return 0, false
	}
	return toFloat(v)
}

// Normalize converts any JSON-marshalable value into a State tree.
func Normalize(v any) (State, error) {
	if st, ok := v.(State); ok {
		return st.Clone(), nil
	}
	if m, ok := v.(map[string]any); ok {
		return State(m).Clone(), nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding scoreboard: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decoding scoreboard: %w", err)
	}
	if out == nil {
		return nil, fmt.Errorf("scoreboard must be an object")
	}
	return State(out), nil
}

func splitPath(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, ".")
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case State:
		return m, true
	}
	return nil, false
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = cloneValue(val)
		}
		return out
	case State:
		return cloneValue(map[string]any(t))
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = cloneValue(val)
		}
		return out
	case []string:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = val
		}
		return out
	default:
		return v
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
