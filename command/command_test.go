package command

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeInProcess(t *testing.T) {
	c := New(AudioSetFaderLevel, FaderLevel{ChannelID: "mic-1", Level: 40})
	p, err := Decode[FaderLevel](c)
	require.NoError(t, err)
	assert.Equal(t, "mic-1", p.ChannelID)

	c = New(AudioSetFaderLevel, &FaderLevel{ChannelID: "mic-2"})
	p, err = Decode[FaderLevel](c)
	require.NoError(t, err)
	assert.Equal(t, "mic-2", p.ChannelID)
}

func TestDecodeWire(t *testing.T) {
	c, err := Parse([]byte(`{"type":"AUDIO_SET_PAN","payload":{"channelId":"mic-1","pan":-30}}`))
	require.NoError(t, err)
	assert.Equal(t, AudioSetPan, c.Type)

	p, err := Decode[PanSetting](c)
	require.NoError(t, err)
	assert.Equal(t, PanSetting{ChannelID: "mic-1", Pan: -30}, p)

	id, err := Decode[string](New(SetPreview, "cam-2"))
	require.NoError(t, err)
	assert.Equal(t, "cam-2", id)
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode[string](Bare(SetPreview))
	assert.Error(t, err)

	_, err = Decode[FaderLevel](New(AudioSetFaderLevel, "mic-1"))
	assert.Error(t, err)

	_, err = Parse([]byte(`{"payload":1}`))
	assert.Error(t, err)
}

func TestProgressWireForms(t *testing.T) {
	p, err := Decode[Progress](New(SwitcherSetProgress, 0.25))
	require.NoError(t, err)
	assert.Equal(t, Progress{Value: 0.25}, p)

	var q Progress
	require.NoError(t, json.Unmarshal([]byte(`{"progress":1,"generation":4}`), &q))
	assert.Equal(t, Progress{Value: 1, Generation: 4}, q)
}

func TestRegistry(t *testing.T) {
	structuralTypes := []Type{
		SaveConfiguration, LoadConfiguration, SourceAdd, SourceBatchAdd,
		SourceRemove, SceneAdd, SceneRemove, SessionUpdateMetadata,
	}
	var got []Type
	for _, s := range All() {
		if s.Structural {
			got = append(got, s.Type)
		}
	}
	assert.ElementsMatch(t, structuralTypes, got)

	assert.True(t, Known(VJAssignDeck))
	assert.False(t, Known("NOPE"))
	assert.False(t, IsStructural(SwitcherCut))

	types := Types()
	assert.IsIncreasing(t, types)
}

func TestSchemaDocument(t *testing.T) {
	data, err := Schema()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, SchemaID, doc["$id"])
	branches, ok := doc["anyOf"].([]any)
	require.True(t, ok)
	assert.Len(t, branches, len(All())+1)
}

func TestPayloadSchemaScalars(t *testing.T) {
	tests := []struct {
		name string
		typ  Type
		want string
	}{
		{"string", SetPreview, "string"},
		{"integer", LoadConfiguration, "integer"},
		{"number", VJSetCrossfade, "number"},
		{"struct", AudioSetFaderLevel, "object"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, ok := Lookup(tt.typ)
			require.True(t, ok)
			var data json.RawMessage
			require.NotPanics(t, func() {
				var err error
				data, err = PayloadSchema(spec)
				require.NoError(t, err)
			})
			var sch map[string]any
			require.NoError(t, json.Unmarshal(data, &sch))
			assert.Equal(t, tt.want, sch["type"])
		})
	}
}

func TestProgressSchemaForms(t *testing.T) {
	spec, ok := Lookup(SwitcherSetProgress)
	require.True(t, ok)
	data, err := PayloadSchema(spec)
	require.NoError(t, err)
	var sch map[string]any
	require.NoError(t, json.Unmarshal(data, &sch))
	forms, ok := sch["anyOf"].([]any)
	require.True(t, ok)
	assert.Len(t, forms, 2)
}
