package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/onair/command"
	oaerrors "github.com/grovetools/onair/errors"
	"github.com/grovetools/onair/pkg/models"
)

func TestToggleMute(t *testing.T) {
	d := newDispatcher()
	s := studio()

	res := run(t, d, s, command.New(command.AudioToggleMute, "audio-media-1"))
	assert.True(t, channel(t, res.State, "audio-media-1").IsMuted)
	res = run(t, d, res.State, command.New(command.AudioToggleMute, "audio-media-1"))
	assert.False(t, channel(t, res.State, "audio-media-1").IsMuted)

	master := run(t, d, s, command.New(command.AudioToggleMute, models.MasterChannelID))
	assert.False(t, master.Changed, "master never mutes")
}

func TestMicLockProtectsChannel(t *testing.T) {
	d := newDispatcher()
	s := studio()
	require.True(t, s.ControlSurface.MicLock)

	res := d.Dispatch(s, command.New(command.AudioToggleMute, models.ProtectedChannelID))
	require.Error(t, res.Err)
	assert.True(t, oaerrors.Is(res.Err, oaerrors.ErrCodeMicLocked))
	assert.Equal(t, s, res.State)
	assert.False(t, channel(t, res.State, models.ProtectedChannelID).IsMuted)

	unlocked := run(t, d, s, command.Bare(command.ConsoleToggleMicLock))
	res = run(t, d, unlocked.State, command.New(command.AudioToggleMute, models.ProtectedChannelID))
	assert.True(t, channel(t, res.State, models.ProtectedChannelID).IsMuted)
}

func TestMicLockOnlyGuardsMuteToggle(t *testing.T) {
	d := newDispatcher()
	s := studio()
	require.True(t, s.ControlSurface.MicLock)

	res := run(t, d, s, command.New(command.AudioSetFaderLevel, command.FaderLevel{ChannelID: models.ProtectedChannelID, Level: 0}))
	assert.Equal(t, 0.0, channel(t, res.State, models.ProtectedChannelID).Volume)
	assert.False(t, channel(t, res.State, models.ProtectedChannelID).IsMuted)

	res = run(t, d, s, command.New(command.AudioToggleSolo, "audio-media-1"))
	assert.True(t, channel(t, res.State, models.ProtectedChannelID).IsMuted, "solo mutes the protected mic")
}

func TestMicLockFollowsPolicy(t *testing.T) {
	p := DefaultPolicy()
	p.ProtectedChannelID = "audio-media-1"
	d := New(p)
	s := studio()

	res := d.Dispatch(s, command.New(command.AudioToggleMute, "audio-media-1"))
	assert.True(t, oaerrors.Is(res.Err, oaerrors.ErrCodeMicLocked))

	res = run(t, d, s, command.New(command.AudioToggleMute, models.ProtectedChannelID))
	assert.True(t, channel(t, res.State, models.ProtectedChannelID).IsMuted, "mic-1 is no longer protected")
}

func TestSoloSilencesOthers(t *testing.T) {
	d := newDispatcher()
	s := studio()

	res := run(t, d, s, command.New(command.AudioToggleSolo, "audio-cam-1"))
	cam := channel(t, res.State, "audio-cam-1")
	assert.True(t, cam.IsSolo)
	assert.False(t, cam.IsMuted, "the soloed strip opens")
	assert.True(t, channel(t, res.State, "mic-1").IsMuted)
	assert.True(t, channel(t, res.State, "audio-media-1").IsMuted)
	assert.False(t, channel(t, res.State, models.MasterChannelID).IsMuted, "master is outside solo")

	res = run(t, d, res.State, command.New(command.AudioToggleSolo, "mic-1"))
	assert.True(t, channel(t, res.State, "mic-1").IsSolo)
	assert.False(t, channel(t, res.State, "mic-1").IsMuted)
	assert.False(t, channel(t, res.State, "audio-cam-1").IsMuted, "soloed strips stay open")
	assert.True(t, channel(t, res.State, "audio-media-1").IsMuted)

	for _, c := range res.State.AudioChannels {
		if c.IsMaster() || c.IsSolo {
			continue
		}
		assert.True(t, c.IsMuted, "%s should be muted while solo is active", c.ID)
	}
}

func TestSoloOnMasterIsNoop(t *testing.T) {
	d := newDispatcher()
	res := run(t, d, studio(), command.New(command.AudioToggleSolo, models.MasterChannelID))
	assert.False(t, res.Changed)
}

func TestChannelSetters(t *testing.T) {
	d := newDispatcher()
	s := studio()
	const id = "audio-media-1"

	tests := []struct {
		name  string
		cmd   command.Command
		check func(t *testing.T, c models.AudioChannel)
	}{
		{"fader", command.New(command.AudioSetFaderLevel, command.FaderLevel{ChannelID: id, Level: 140}),
			func(t *testing.T, c models.AudioChannel) { assert.Equal(t, 100.0, c.Volume) }},
		{"gain", command.New(command.AudioSetGainTrim, command.GainTrim{ChannelID: id, Gain: -20}),
			func(t *testing.T, c models.AudioChannel) { assert.Equal(t, -12.0, c.Gain) }},
		{"eq", command.New(command.AudioSetEQ, command.EQSetting{ChannelID: id, Band: "mid2", Value: 3.5}),
			func(t *testing.T, c models.AudioChannel) {
				assert.Equal(t, models.EQ{Mid2: 3.5}, c.EQ)
			}},
		{"compressor", command.New(command.AudioSetCompressor, command.CompressorSetting{ChannelID: id, Threshold: -20, Ratio: 4}),
			func(t *testing.T, c models.AudioChannel) {
				assert.Equal(t, models.Compressor{Threshold: -20, Ratio: 4}, c.Compressor)
			}},
		{"gate", command.New(command.AudioSetGate, command.GateSetting{ChannelID: id, Threshold: -40}),
			func(t *testing.T, c models.AudioChannel) { assert.Equal(t, -40.0, c.Gate.Threshold) }},
		{"pan", command.New(command.AudioSetPan, command.PanSetting{ChannelID: id, Pan: -30}),
			func(t *testing.T, c models.AudioChannel) { assert.Equal(t, -30.0, c.Pan) }},
		{"hpf", command.New(command.AudioToggleHPF, id),
			func(t *testing.T, c models.AudioChannel) {
				assert.True(t, c.HPF.Enabled)
				assert.Equal(t, 80.0, c.HPF.Frequency)
			}},
		{"bus send", command.New(command.AudioSetBusSend, command.BusSend{ChannelID: id, Bus: "aux2", Level: 55}),
			func(t *testing.T, c models.AudioChannel) { assert.Equal(t, models.BusSends{Aux2: 55}, c.BusSends) }},
		{"mix minus", command.New(command.AudioSetMixMinus, command.MixMinus{ChannelID: id, Enabled: true}),
			func(t *testing.T, c models.AudioChannel) { assert.True(t, c.MixMinus) }},
		{"partial update", command.New(command.AudioUpdateSource, command.Update{ID: id, Values: map[string]any{
			"name": "Playback", "volume": 33, "id": "hijack",
		}}),
			func(t *testing.T, c models.AudioChannel) {
				assert.Equal(t, "Playback", c.Name)
				assert.Equal(t, 33.0, c.Volume)
				assert.Equal(t, 80.0, c.HPF.Frequency, "untouched fields keep their value")
			}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := run(t, d, s, tt.cmd)
			tt.check(t, channel(t, res.State, id))

			before := channel(t, s, "mic-1")
			assert.Equal(t, before, channel(t, res.State, "mic-1"), "other strips untouched")
		})
	}
}

func TestChannelSetterRejectsUnknownBand(t *testing.T) {
	d := newDispatcher()
	res := d.Dispatch(studio(), command.New(command.AudioSetEQ, command.EQSetting{ChannelID: "mic-1", Band: "sub"}))
	assert.True(t, oaerrors.Is(res.Err, oaerrors.ErrCodeInvalidPayload))
}

func TestAudioFXPartial(t *testing.T) {
	d := newDispatcher()
	s := studio()
	s.AudioFX = models.AudioFX{Filter: 10, Echo: 20, Reverb: 30}

	res := run(t, d, s, command.New(command.AudioSetFXState, command.Partial{"echo": 250}))
	assert.Equal(t, models.AudioFX{Filter: 10, Echo: 100, Reverb: 30}, res.State.AudioFX)
}

func TestAudioLinks(t *testing.T) {
	d := newDispatcher()
	s := studio()

	res := run(t, d, s, command.New(command.AudioLinkSource, command.AudioLink{SourceID: "cam-2", ChannelID: "mic-1"}))
	ch, ok := res.State.AudioLinks.ChannelFor("cam-2")
	require.True(t, ok)
	assert.Equal(t, "mic-1", ch)

	missing := run(t, d, s, command.New(command.AudioLinkSource, command.AudioLink{SourceID: "cam-2", ChannelID: "ghost"}))
	assert.False(t, missing.Changed, "links to unknown channels are ignored")

	res = run(t, d, res.State, command.New(command.AudioUnlinkSource, "cam-2"))
	_, ok = res.State.AudioLinks.ChannelFor("cam-2")
	assert.False(t, ok)
}

func TestControlSurfaceToggles(t *testing.T) {
	d := newDispatcher()
	s := studio()

	res := run(t, d, s, command.Bare(command.ConsoleToggleAFV))
	assert.True(t, res.State.ControlSurface.AudioFollowsVideo)
	res = run(t, d, res.State, command.New(command.UIToggleSingleModePane, models.PanelAudio))
	assert.Equal(t, models.PanelAudio, res.State.ControlSurface.ActiveSingleModePanel)
	res = run(t, d, res.State, command.New(command.UIToggleSingleModePane, models.PanelAudio))
	assert.Equal(t, models.PanelNone, res.State.ControlSurface.ActiveSingleModePanel)
}
