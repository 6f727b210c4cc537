package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandValidator(t *testing.T) {
	v, err := NewCommandValidator()
	require.NoError(t, err)

	tests := []struct {
		name    string
		doc     string
		wantErr bool
	}{
		{"bare command", `{"type":"SWITCHER_CUT"}`, false},
		{"string payload", `{"type":"SET_PREVIEW","payload":"cam-2"}`, false},
		{"object payload", `{"type":"AUDIO_SET_FADER_LEVEL","payload":{"channelId":"mic-1","level":40}}`, false},
		{"progress as number", `{"type":"SWITCHER_SET_TRANSITION_PROGRESS","payload":0.5}`, false},
		{"progress as object", `{"type":"SWITCHER_SET_TRANSITION_PROGRESS","payload":{"progress":1,"generation":3}}`, false},
		{"mixed case wire name", `{"type":"VJMixer_ASSIGN_DECK","payload":{"deck":"deckA","sourceId":"cam-1"}}`, false},
		{"unknown type passes", `{"type":"SOMETHING_NEW","payload":{"x":1}}`, false},
		{"missing type", `{"payload":"cam-1"}`, true},
		{"wrong payload type", `{"type":"SET_PREVIEW","payload":12}`, true},
		{"missing payload", `{"type":"AUDIO_TOGGLE_MUTE"}`, true},
		{"missing required field", `{"type":"AUDIO_SET_FADER_LEVEL","payload":{"level":40}}`, true},
		{"bad enum", `{"type":"AUDIO_SET_EQ","payload":{"channelId":"mic-1","band":"ultra","value":3}}`, true},
		{"not json", `{"type":`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateJSON([]byte(tt.doc))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateStruct(t *testing.T) {
	v, err := NewValidator("point.json", []byte(`{
		"type": "object",
		"required": ["x"],
		"properties": {"x": {"type": "integer"}}
	}`))
	require.NoError(t, err)

	assert.NoError(t, v.Validate(map[string]any{"x": 3}))
	err = v.Validate(map[string]any{"y": 3})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema validation failed")
}
