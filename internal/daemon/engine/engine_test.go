package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/onair/command"
	oaerrors "github.com/grovetools/onair/errors"
	"github.com/grovetools/onair/internal/daemon/store"
	"github.com/grovetools/onair/pkg/console"
	"github.com/grovetools/onair/pkg/models"
	"github.com/grovetools/onair/pkg/scheduler"
	"github.com/grovetools/onair/pkg/services"
	"github.com/grovetools/onair/testutil"
)

var showTime = time.Date(2026, 5, 9, 20, 0, 0, 0, time.UTC)

type fakePresets struct {
	mu    sync.Mutex
	saved []models.Preset
}

func (f *fakePresets) SavePresets(_ context.Context, presets []models.Preset) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append([]models.Preset(nil), presets...)
	return nil
}

func (f *fakePresets) ListPresets(context.Context) ([]models.Preset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Preset(nil), f.saved...), nil
}

func (f *fakePresets) names() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, p := range f.saved {
		out = append(out, p.Name)
	}
	return out
}

type fakePrefs struct {
	mu    sync.Mutex
	theme string
}

func (f *fakePrefs) SavePrefs(p models.Prefs) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.theme = p.Theme
	return nil
}

func (f *fakePrefs) Theme() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.theme
}

type stubProbe struct {
	res services.ProbeResult
}

func (p stubProbe) Connect(context.Context, string) services.ProbeResult { return p.res }

func testDispatcher() *console.Dispatcher {
	n := 0
	ids := func(prefix string) string {
		n++
		return fmt.Sprintf("%s-t%d", prefix, n)
	}
	return console.New(console.DefaultPolicy(),
		console.WithIDGenerator(ids),
		console.WithClock(func() time.Time { return showTime }))
}

// start runs an engine on a fake clock until the test ends.
func start(t *testing.T, opts ...Option) (*Engine, *scheduler.FakeClock) {
	t.Helper()
	clock := scheduler.NewFakeClock(showTime)
	opts = append([]Option{WithClock(clock), WithFrameInterval(100 * time.Millisecond)}, opts...)
	st := store.New(models.InitialState(models.DefaultRig()))
	e := New(st, testDispatcher(), testutil.QuietLogger(), opts...)

	ctx, cancel := context.WithCancel(context.Background())
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		e.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-finished
	})
	return e, clock
}

func submit(t *testing.T, e *Engine, cmd command.Command) Ack {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	ack, err := e.Submit(ctx, cmd)
	require.NoError(t, err)
	return ack
}

func eventually(t *testing.T, e *Engine, cond func(s models.State) bool, msg string) {
	t.Helper()
	require.Eventually(t, func() bool {
		return cond(e.Store().State())
	}, 2*time.Second, 5*time.Millisecond, msg)
}

func TestSubmitAppliesAndVersions(t *testing.T) {
	e, _ := start(t)

	ack := submit(t, e, command.New(command.SetPreview, "cam-2"))
	assert.True(t, ack.Accepted)
	assert.True(t, ack.Changed)
	assert.Equal(t, uint64(1), ack.Version)
	assert.Equal(t, "cam-2", e.Store().State().PreviewID)

	ack = submit(t, e, command.New(command.SetPreview, "cam-2"))
	assert.True(t, ack.Accepted)
	assert.False(t, ack.Changed)
	assert.Equal(t, uint64(1), ack.Version)
}

func TestRejectionIsAcknowledgedAndBroadcast(t *testing.T) {
	e, _ := start(t)
	updates := e.Store().Subscribe()
	defer e.Store().Unsubscribe(updates)

	submit(t, e, command.Bare(command.MasterGoLive))
	ack := submit(t, e, command.New(command.SourceRemove, "cam-1"))
	assert.False(t, ack.Accepted)
	require.NotNil(t, ack.Error)
	assert.Equal(t, oaerrors.ErrCodeRejectedWhileLive, ack.Error.Code)

	var got []store.UpdateType
	for len(got) < 2 {
		select {
		case u := <-updates:
			got = append(got, u.Type)
		case <-time.After(2 * time.Second):
			t.Fatal("no update received")
		}
	}
	assert.Equal(t, []store.UpdateType{store.UpdateState, store.UpdateRejected}, got)

	_, ok := e.Store().State().FindSource("cam-1")
	assert.True(t, ok)
}

func TestGoLiveSchedulesCounters(t *testing.T) {
	e, clock := start(t)

	submit(t, e, command.Bare(command.MasterGoLive))
	assert.True(t, e.Scheduler().Has(console.KeyLiveTimer))
	assert.True(t, e.Scheduler().Has(console.KeyHealth))

	clock.Advance(3 * time.Second)
	eventually(t, e, func(s models.State) bool { return s.LiveSeconds == 3 }, "live counter")
	eventually(t, e, func(s models.State) bool { return s.SystemHealth.Bitrate >= baseBitrate }, "health sample")

	submit(t, e, command.Bare(command.MasterGoLive))
	assert.False(t, e.Scheduler().Has(console.KeyLiveTimer))
	assert.False(t, e.Scheduler().Has(console.KeyHealth))
	assert.Zero(t, e.Store().State().LiveSeconds)
}

func TestLateHealthSampleAfterOffAir(t *testing.T) {
	e, _ := start(t)
	submit(t, e, command.Bare(command.MasterGoLive))

	sample, ok := e.produce(context.Background(), console.Task{Kind: console.TaskHealth})
	require.True(t, ok)
	assert.Equal(t, command.SystemHealthSample, sample.Type)

	submit(t, e, command.Bare(command.MasterGoLive))
	assert.False(t, e.Scheduler().Has(console.KeyHealth))

	ack := submit(t, e, sample)
	assert.False(t, ack.Changed)
	h := e.Store().State().SystemHealth
	assert.Zero(t, h.Bitrate)
	assert.Zero(t, h.Latency)
}

func TestCommentOverlayExpires(t *testing.T) {
	e, clock := start(t)

	comment := models.NewOverlay("c1", models.CommentContent{Author: "viewer", Text: "hello"})
	submit(t, e, command.New(command.OverlayAdd, comment))
	require.True(t, e.Scheduler().Has(console.OverlayExpireKey("c1")))

	clock.Advance(7 * time.Second)
	assert.GreaterOrEqual(t, e.Store().State().OverlayIndex("c1"), 0)

	clock.Advance(time.Second)
	eventually(t, e, func(s models.State) bool { return s.OverlayIndex("c1") < 0 }, "comment removed")
}

func TestAutoTransitionRunsToCompletion(t *testing.T) {
	e, clock := start(t)

	submit(t, e, command.Bare(command.SwitcherAuto))
	require.True(t, e.Driver().Running())
	assert.True(t, e.Store().State().Transition.IsActive)

	clock.Advance(500 * time.Millisecond)
	eventually(t, e, func(s models.State) bool {
		return s.ProgramID == "scene-1" && !s.Transition.IsActive
	}, "transition taken")
	assert.False(t, e.Driver().Running())
}

func TestStaleFramesAreDropped(t *testing.T) {
	e, _ := start(t)

	submit(t, e, command.Bare(command.SwitcherAuto))
	gen := e.Driver().Generation()
	require.True(t, e.Driver().Running())

	submit(t, e, command.Bare(command.SwitcherCut))
	assert.False(t, e.Driver().Running())

	ack := submit(t, e, command.New(command.SwitcherSetProgress, command.Progress{Value: 0.5, Generation: gen}))
	assert.True(t, ack.Accepted)
	assert.False(t, ack.Changed)
	assert.False(t, e.Store().State().Transition.IsActive)

	// A manual progress carries no generation.
	ack = submit(t, e, command.New(command.SwitcherSetProgress, command.Progress{Value: 0.5}))
	assert.True(t, ack.Changed)
	assert.Equal(t, 0.5, e.Store().State().Transition.Progress)
	assert.False(t, e.Driver().Running())
}

func TestStreamConnectUsesProbe(t *testing.T) {
	e, clock := start(t, WithServices(Services{Probe: stubProbe{res: services.ProbeResult{OK: true, Viewers: 321}}}))

	submit(t, e, command.New(command.StreamToggle, "yt"))
	s := e.Store().State()
	assert.Equal(t, models.StreamConnecting, s.StreamDestinations[s.StreamIndex("yt")].Status)

	clock.Advance(2 * time.Second)
	eventually(t, e, func(s models.State) bool {
		d := s.StreamDestinations[s.StreamIndex("yt")]
		return d.Status == models.StreamLive && d.Viewers == 321
	}, "stream live")
}

func TestStreamConnectFailure(t *testing.T) {
	e, clock := start(t, WithServices(Services{Probe: stubProbe{}}))

	submit(t, e, command.New(command.StreamToggle, "fb"))
	clock.Advance(2 * time.Second)
	eventually(t, e, func(s models.State) bool {
		return s.StreamDestinations[s.StreamIndex("fb")].Status == models.StreamError
	}, "stream errored")
}

func TestGenerateTitle(t *testing.T) {
	text := services.Static{Text: "Guest of the week"}
	e, clock := start(t, WithServices(Services{Text: text}))

	submit(t, e, command.New(command.OverlayAdd, models.NewOverlay("lt", models.LowerThirdContent{Title: "Host"})))
	submit(t, e, command.New(command.AIGenerateTitle, command.TitleRequest{Prompt: "Jane", OverlayID: "lt"}))
	clock.Advance(0)

	eventually(t, e, func(s models.State) bool {
		i := s.OverlayIndex("lt")
		if i < 0 {
			return false
		}
		b, err := json.Marshal(s.Overlays[i])
		return err == nil && strings.Contains(string(b), "Guest of the week")
	}, "subtitle generated")

	submit(t, e, command.New(command.AIGenerateTitle, command.TitleRequest{Prompt: "ideas"}))
	clock.Advance(0)
	eventually(t, e, func(s models.State) bool {
		return len(s.AISuggestions) == 1 && s.AISuggestions[0].Text == "Guest of the week"
	}, "suggestion added")
}

func TestPersistence(t *testing.T) {
	presets, prefs := &fakePresets{}, &fakePrefs{}
	e, _ := start(t, WithPresetStore(presets), WithPrefsStore(prefs))

	submit(t, e, command.New(command.SaveConfiguration, command.PresetName{Name: "Show A"}))
	require.Eventually(t, func() bool {
		names := presets.names()
		return len(names) == 1 && names[0] == "Show A"
	}, 2*time.Second, 5*time.Millisecond)

	submit(t, e, command.New(command.UISetTheme, "light"))
	require.Eventually(t, func() bool { return prefs.Theme() == "light" }, 2*time.Second, 5*time.Millisecond)
}

func TestSetPolicySwapsProtectedChannel(t *testing.T) {
	e, _ := start(t)

	ack := submit(t, e, command.New(command.AudioToggleMute, models.ProtectedChannelID))
	require.NotNil(t, ack.Error)
	assert.Equal(t, oaerrors.ErrCodeMicLocked, ack.Error.Code)

	p := e.Policy()
	p.ProtectedChannelID = "audio-cam-1"
	e.SetPolicy(p)
	assert.Equal(t, "audio-cam-1", e.Policy().ProtectedChannelID)

	ack = submit(t, e, command.New(command.AudioToggleMute, models.ProtectedChannelID))
	assert.Nil(t, ack.Error)
	ack = submit(t, e, command.New(command.AudioToggleMute, "audio-cam-1"))
	require.NotNil(t, ack.Error)
	assert.Equal(t, oaerrors.ErrCodeMicLocked, ack.Error.Code)
}

func TestSendReturnsRejection(t *testing.T) {
	e, _ := start(t)
	err := e.Send(context.Background(), command.New(command.AudioToggleMute, models.ProtectedChannelID))
	require.Error(t, err)
	assert.Equal(t, oaerrors.ErrCodeMicLocked, oaerrors.GetCode(err))
}

func TestSubmitAfterStop(t *testing.T) {
	st := store.New(models.InitialState(models.DefaultRig()))
	e := New(st, testDispatcher(), testutil.QuietLogger(), WithClock(scheduler.NewFakeClock(showTime)))

	ctx, cancel := context.WithCancel(context.Background())
	go e.Run(ctx)
	cancel()
	<-e.Done()

	_, err := e.Submit(context.Background(), command.New(command.SetPreview, "cam-1"))
	assert.ErrorIs(t, err, ErrStopped)
}
