package console

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/onair/command"
	oaerrors "github.com/grovetools/onair/errors"
	"github.com/grovetools/onair/pkg/models"
)

func TestGoLiveStartsClocks(t *testing.T) {
	d := newDispatcher()
	s := studio()

	res := run(t, d, s, command.Bare(command.MasterGoLive))
	assert.True(t, res.State.IsLive)
	assert.True(t, res.State.IsRecording, "going live forces recording")

	live, ok := findEffect(res.Effects, EffectEvery, KeyLiveTimer)
	require.True(t, ok)
	assert.Equal(t, time.Second, live.Delay)
	require.NotNil(t, live.Command)
	assert.Equal(t, command.TimerTick, live.Command.Type)
	assert.Equal(t, command.Tick{Timer: command.TimerLive}, live.Command.Payload)

	_, ok = findEffect(res.Effects, EffectEvery, KeyRecordingTimer)
	assert.True(t, ok)

	health, ok := findEffect(res.Effects, EffectEvery, KeyHealth)
	require.True(t, ok)
	assert.Equal(t, d.Policy().HealthInterval, health.Delay)
	require.NotNil(t, health.Task)
	assert.Equal(t, TaskHealth, health.Task.Kind)
}

func TestGoLiveWhileRecordingKeepsRecordingClock(t *testing.T) {
	d := newDispatcher()
	s := studio()
	s.IsRecording, s.RecordingSeconds = true, 42

	res := run(t, d, s, command.Bare(command.MasterGoLive))
	assert.Equal(t, 42, res.State.RecordingSeconds)
	_, rearmed := findEffect(res.Effects, EffectEvery, KeyRecordingTimer)
	assert.False(t, rearmed)
}

func TestGoOffAir(t *testing.T) {
	d := newDispatcher()
	s := studio()
	s.IsLive, s.IsRecording = true, true
	s.LiveSeconds, s.RecordingSeconds = 90, 120
	s.SystemHealth.DroppedFrames = 7

	res := run(t, d, s, command.Bare(command.MasterGoLive))
	assert.False(t, res.State.IsLive)
	assert.True(t, res.State.IsRecording, "recording outlives the broadcast")
	assert.Equal(t, 0, res.State.LiveSeconds)
	assert.Equal(t, 120, res.State.RecordingSeconds)
	assert.Equal(t, 0.0, res.State.SystemHealth.Bitrate)
	assert.Equal(t, 0, res.State.SystemHealth.DroppedFrames)
	assert.Equal(t, 0.0, res.State.SystemHealth.Latency)
	assert.Equal(t, s.SystemHealth.Temperature, res.State.SystemHealth.Temperature)

	assert.ElementsMatch(t, []string{KeyLiveTimer, KeyHealth}, effectKeys(res.Effects, EffectCancel))
}

func TestTimerTicksOnlyWhileOwned(t *testing.T) {
	d := newDispatcher()
	s := studio()
	live := command.New(command.TimerTick, command.Tick{Timer: command.TimerLive})
	rec := command.New(command.TimerTick, command.Tick{Timer: command.TimerRecording})

	res := run(t, d, s, live)
	assert.False(t, res.Changed, "off air ticks are ignored")

	s.IsLive = true
	res = run(t, d, s, live)
	res = run(t, d, res.State, live)
	assert.Equal(t, 2, res.State.LiveSeconds)
	res = run(t, d, res.State, rec)
	assert.Equal(t, 0, res.State.RecordingSeconds)

	s.IsRecording = true
	res = run(t, d, s, rec)
	assert.Equal(t, 1, res.State.RecordingSeconds)
}

func TestToggleRecord(t *testing.T) {
	d := newDispatcher()
	s := studio()

	res := run(t, d, s, command.Bare(command.MasterToggleRecord))
	assert.True(t, res.State.IsRecording)
	_, ok := findEffect(res.Effects, EffectEvery, KeyRecordingTimer)
	assert.True(t, ok)

	res.State.RecordingSeconds = 30
	res = run(t, d, res.State, command.Bare(command.MasterToggleRecord))
	assert.False(t, res.State.IsRecording)
	assert.Equal(t, 0, res.State.RecordingSeconds)
	assert.Equal(t, []string{KeyRecordingTimer}, effectKeys(res.Effects, EffectCancel))
}

func TestFailsafe(t *testing.T) {
	d := newDispatcher()
	s := studio()
	s.ProgramID = "cam-1"
	s.Lighting.ActiveSceneID = models.StringPtr("goal-flash")
	s.Transition.IsActive, s.Transition.Progress = true, 0.3

	res := run(t, d, s, command.Bare(command.SystemTriggerFailsafe))
	assert.Equal(t, models.SafeSourceID, res.State.ProgramID)
	require.NotNil(t, res.State.Lighting.ActiveSceneID)
	assert.Equal(t, models.SafeLightingSceneID, *res.State.Lighting.ActiveSceneID)
	assert.False(t, res.State.Transition.IsActive)

	p := DefaultPolicy()
	p.SafeSourceID, p.SafeLightingSceneID = "blank", "podcast-soft"
	res = run(t, New(p), s, command.Bare(command.SystemTriggerFailsafe))
	assert.Equal(t, "blank", res.State.ProgramID)
	assert.Equal(t, "podcast-soft", *res.State.Lighting.ActiveSceneID)
}

func TestSystemHealthPartial(t *testing.T) {
	d := newDispatcher()
	s := studio()

	res := run(t, d, s, command.New(command.SystemSetHealth, command.Partial{"temperature": 80.5, "droppedFrames": 3}))
	assert.Equal(t, 80.5, res.State.SystemHealth.Temperature)
	assert.Equal(t, 3, res.State.SystemHealth.DroppedFrames)
	assert.Equal(t, s.SystemHealth.Bitrate, res.State.SystemHealth.Bitrate)
}

func TestHealthSampleNeedsLive(t *testing.T) {
	d := newDispatcher()
	sample := command.New(command.SystemHealthSample, command.Partial{"bitrate": 5843.0, "latency": 27.0})

	res := d.Dispatch(studio(), sample)
	require.NoError(t, res.Err)
	assert.False(t, res.Changed)

	live := run(t, d, studio(), command.Bare(command.MasterGoLive)).State
	res = run(t, d, live, sample)
	assert.True(t, res.Changed)
	assert.Equal(t, 5843.0, res.State.SystemHealth.Bitrate)
	assert.Equal(t, 27.0, res.State.SystemHealth.Latency)
}

func TestOutputState(t *testing.T) {
	d := newDispatcher()
	s := studio()

	res := run(t, d, s, command.New(command.OutputSetState, command.Partial{"resolution": "720p", "fps": 60}))
	assert.Equal(t, models.Output{Resolution: "720p", FPS: 60}, res.State.Output)

	for _, bad := range []command.Partial{{"resolution": "4k"}, {"fps": 25}} {
		res := d.Dispatch(s, command.New(command.OutputSetState, bad))
		assert.True(t, oaerrors.Is(res.Err, oaerrors.ErrCodeInvalidPayload), "%v", bad)
		assert.Equal(t, s.Output, res.State.Output)
	}
}

func TestReplayAutoReturn(t *testing.T) {
	d := newDispatcher()
	s := studio()

	res := run(t, d, s, command.New(command.ReplayTrigger, command.ReplayRequest{Duration: 5}))
	require.True(t, res.State.Replay.IsActive)
	assert.False(t, res.State.Replay.IsSlowMo)
	ret, ok := findEffect(res.Effects, EffectAfter, KeyReplayReturn)
	require.True(t, ok)
	assert.Equal(t, 5*time.Second, ret.Delay)
	assert.Equal(t, command.New(command.ReplayAutoReturn, command.ReplayReturn{Generation: 1}), *ret.Command)

	busy := run(t, d, res.State, command.New(command.ReplayTrigger, command.ReplayRequest{Duration: 5}))
	assert.False(t, busy.Changed, "a running replay is not restarted")

	back := run(t, d, res.State, *ret.Command)
	assert.False(t, back.State.Replay.IsActive)
}

func TestReplayManualReturnWinsOverStaleAutoReturn(t *testing.T) {
	d := newDispatcher()
	s := studio()

	first := run(t, d, s, command.New(command.ReplayTrigger, command.ReplayRequest{Duration: 5}))
	stale, _ := findEffect(first.Effects, EffectAfter, KeyReplayReturn)

	manual := run(t, d, first.State, command.Bare(command.ReplayReturnLive))
	assert.False(t, manual.State.Replay.IsActive)
	assert.Equal(t, []string{KeyReplayReturn}, effectKeys(manual.Effects, EffectCancel))

	noop := run(t, d, manual.State, *stale.Command)
	assert.False(t, noop.Changed)

	second := run(t, d, manual.State, command.New(command.ReplayTrigger, command.ReplayRequest{Duration: 5}))
	assert.Equal(t, 2, second.State.Replay.Generation)
	late := run(t, d, second.State, *stale.Command)
	assert.True(t, late.State.Replay.IsActive, "the first run's return does not end the second run")
}

func TestReplaySlowMoOnlyWhileActive(t *testing.T) {
	d := newDispatcher()
	s := studio()

	res := run(t, d, s, command.Bare(command.ReplayToggleSlowMo))
	assert.False(t, res.Changed)

	res = run(t, d, s, command.New(command.ReplayTrigger, command.ReplayRequest{Duration: 3}))
	res = run(t, d, res.State, command.Bare(command.ReplayToggleSlowMo))
	assert.True(t, res.State.Replay.IsSlowMo)
}

func TestPrefsPersist(t *testing.T) {
	d := newDispatcher()
	s := studio()

	res := run(t, d, s, command.New(command.UISetTheme, "light"))
	assert.Equal(t, "light", res.State.Prefs.Theme)
	assert.Equal(t, []Effect{{Kind: EffectPersistPrefs}}, res.Effects)

	res = run(t, d, res.State, command.Bare(command.SetupComplete))
	assert.True(t, res.State.Prefs.SetupCompleted)
	assert.Len(t, res.Effects, 1)

	again := run(t, d, res.State, command.Bare(command.SetupComplete))
	assert.False(t, again.Changed)
	assert.Empty(t, again.Effects)
}
