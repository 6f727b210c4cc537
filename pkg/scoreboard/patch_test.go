package scoreboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyPatches(t *testing.T) {
	tree := State{
		"home":  map[string]any{"score": 2, "name": "LOCAL"},
		"clock": map[string]any{"running": false},
		"ratio": 1.5,
	}

	tests := []struct {
		name  string
		patch Patch
		path  string
		want  any
	}{
		{"add keeps integers", Patch{Path: []string{"home", "score"}, Op: OpAdd, Value: 3}, "home.score", 5},
		{"add to float", Patch{Path: []string{"ratio"}, Op: OpAdd, Value: 0.25}, "ratio", 1.75},
		{"add skips strings", Patch{Path: []string{"home", "name"}, Op: OpAdd, Value: 1}, "home.name", "LOCAL"},
		{"toggle flips bool", Patch{Path: []string{"clock", "running"}, Op: OpToggle}, "clock.running", true},
		{"toggle skips non-bool", Patch{Path: []string{"home", "score"}, Op: OpToggle}, "home.score", 2},
		{"set creates records", Patch{Path: []string{"shotClock", "seconds"}, Op: OpSet, Value: 24}, "shotClock.seconds", 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := ApplyPatches(tree, []Patch{tt.patch})
			got, _ := out.Get(tt.path)
			assert.Equal(t, tt.want, got)
		})
	}

	score, _ := tree.Get("home.score")
	assert.Equal(t, 2, score, "input tree is untouched")
	_, ok := tree.Get("shotClock")
	assert.False(t, ok)
}

func TestApplyPatchesSkipsMissingAddPaths(t *testing.T) {
	out := ApplyPatches(State{}, []Patch{{Path: []string{"fouls", "home"}, Op: OpAdd, Value: 1}})
	_, ok := out.Get("fouls")
	assert.False(t, ok)
}

func TestCompileOrder(t *testing.T) {
	patches := Compile(Action{
		Delta:  map[string]any{"sets": map[string]any{"home": 1}, "period": map[string]any{"index": 1}, "label": "x"},
		Set:    map[string]any{"home.score": 0},
		Toggle: "serve.home",
	})
	var rendered []string
	for _, p := range patches {
		rendered = append(rendered, p.String())
	}
	assert.Equal(t, []string{"add period.index", "add sets.home", "set home.score", "toggle serve.home"}, rendered)
}

func TestDeepMerge(t *testing.T) {
	base := map[string]any{
		"clock": map[string]any{"running": false, "seconds": 0},
		"ui":    map[string]any{"primaryActions": []any{"A", "B"}},
	}
	overlay := map[string]any{
		"clock": map[string]any{"seconds": 600},
		"ui":    map[string]any{"primaryActions": []any{"C"}},
		"extra": true,
	}
	out := DeepMerge(base, overlay)

	assert.Equal(t, map[string]any{"running": false, "seconds": 600}, out["clock"])
	assert.Equal(t, []any{"C"}, out["ui"].(map[string]any)["primaryActions"], "arrays replace")
	assert.Equal(t, true, out["extra"])
	assert.Equal(t, 0, base["clock"].(map[string]any)["seconds"])
}
