package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"

	"github.com/grovetools/onair/config"
)

func TestCamelToSnake(t *testing.T) {
	tests := map[string]string{
		"GoLive":        "go_live",
		"FadeToBlack":   "fade_to_black",
		"Cut":           "cut",
		"ToggleMicLock": "toggle_mic_lock",
	}
	for in, want := range tests {
		assert.Equal(t, want, camelToSnake(in), in)
	}
}

func TestApplyOverridesKeepsHelpText(t *testing.T) {
	km := Default()
	ApplyOverrides(&km, Overrides{"go_live": {"f12"}, "unknown": {"x"}})

	assert.Equal(t, []string{"f12"}, km.GoLive.Keys())
	assert.Equal(t, "f12", km.GoLive.Help().Key)
	assert.Equal(t, "go live / off air", km.GoLive.Help().Desc)
	assert.Equal(t, Default().Cut.Keys(), km.Cut.Keys())
}

func TestApplyOverridesIgnoresNonPointers(t *testing.T) {
	km := Default()
	ApplyOverrides(km, Overrides{"cut": {"c"}})
	assert.Equal(t, []string{" "}, km.Cut.Keys())
}

func TestLoadReadsTUIExtension(t *testing.T) {
	cfg := &config.Config{Extensions: map[string]interface{}{
		"tui": map[string]interface{}{
			"keybindings": map[string]interface{}{
				"cut": []interface{}{"c", "x"},
			},
		},
	}}
	km := Load(cfg)
	assert.Equal(t, []string{"c", "x"}, km.Cut.Keys())
	assert.Equal(t, Default().Auto.Keys(), Load(nil).Auto.Keys())
}

func TestFullHelpSkipsDisabled(t *testing.T) {
	km := Default()
	km.Failsafe.SetEnabled(false)
	var all []key.Binding
	for _, col := range km.FullHelp() {
		all = append(all, col...)
	}
	for _, b := range all {
		assert.NotEqual(t, "failsafe", b.Help().Desc)
	}
	assert.Len(t, km.FullHelp(), 4)
}
