package scoreboard

import (
	"math"
	"sort"
	"strings"
)

// Op is a tree-patch operation.
type Op string

const (
	// OpAdd adds a number to a numeric leaf. Non-numeric or missing leaves are skipped.
	OpAdd Op = "add"
	// OpToggle flips a boolean leaf. Non-boolean or missing leaves are skipped.
	OpToggle Op = "toggle"
	// OpSet writes a value, creating intermediate records.
	OpSet Op = "set"
)

// Patch is one operation on a path of the tree.
type Patch struct {
	Path  []string `json:"path"`
	Op    Op       `json:"op"`
	Value any      `json:"value,omitempty"`
}

// String renders the path in dot notation.
func (p Patch) String() string {
	return string(p.Op) + " " + strings.Join(p.Path, ".")
}

// Compile turns an action definition into patches: delta leaves first, then
// sets, then the toggle. Map iteration is sorted so patch order is stable.
func Compile(action Action) []Patch {
	var patches []Patch
	patches = append(patches, compileDelta(nil, action.Delta)...)

	keys := make([]string, 0, len(action.Set))
	for k := range action.Set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		patches = append(patches, Patch{Path: splitPath(k), Op: OpSet, Value: cloneValue(action.Set[k])})
	}

	if action.Toggle != "" {
		patches = append(patches, Patch{Path: splitPath(action.Toggle), Op: OpToggle})
	}
	return patches
}

func compileDelta(prefix []string, delta map[string]any) []Patch {
	keys := make([]string, 0, len(delta))
	for k := range delta {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var patches []Patch
	for _, k := range keys {
		path := append(append([]string{}, prefix...), k)
		switch v := delta[k].(type) {
		case map[string]any:
			patches = append(patches, compileDelta(path, v)...)
		default:
			if _, ok := toFloat(v); ok {
				patches = append(patches, Patch{Path: path, Op: OpAdd, Value: v})
			}
		}
	}
	return patches
}

// ApplyPatches returns a copy of tree with patches applied in order.
func ApplyPatches(tree State, patches []Patch) State {
	out := tree.Clone()
	if out == nil {
		out = State{}
	}
	for _, p := range patches {
		applyPatch(out, p)
	}
	return out
}

func applyPatch(root map[string]any, p Patch) {
	if len(p.Path) == 0 {
		return
	}
	parent := root
	for _, key := range p.Path[:len(p.Path)-1] {
		next, ok := asMap(parent[key])
		if !ok {
			if p.Op != OpSet {
				return
			}
			next = map[string]any{}
			parent[key] = next
		}
		parent = next
	}

	leaf := p.Path[len(p.Path)-1]
	switch p.Op {
	case OpAdd:
		cur, ok := parent[leaf]
		if !ok {
			return
		}
		if sum, ok := addNumbers(cur, p.Value); ok {
			parent[leaf] = sum
		}
	case OpToggle:
		if b, ok := parent[leaf].(bool); ok {
			parent[leaf] = !b
		}
	case OpSet:
		parent[leaf] = cloneValue(p.Value)
	}
}

// addNumbers keeps integer leaves integral when the delta is whole.
func addNumbers(target, delta any) (any, bool) {
	t, ok := toFloat(target)
	if !ok {
		return nil, false
	}
	d, ok := toFloat(delta)
	if !ok {
		return nil, false
	}
	sum := t + d
	whole := d == math.Trunc(d)
	switch target.(type) {
	case int:
		if whole {
			return int(sum), true
		}
	case int64:
		if whole {
			return int64(sum), true
		}
	}
	return sum, true
}
