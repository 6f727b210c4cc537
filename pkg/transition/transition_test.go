package transition

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/onair/pkg/models"
	"github.com/grovetools/onair/pkg/scheduler"
)

var epoch = time.Date(2026, 5, 9, 20, 0, 0, 0, time.UTC)

type frame struct {
	p   float64
	gen int
}

func record(frames *[]frame) EmitFunc {
	return func(p float64, gen int) { *frames = append(*frames, frame{p, gen}) }
}

func TestProgress(t *testing.T) {
	assert.Equal(t, 0.0, Progress(0, time.Second))
	assert.Equal(t, 0.5, Progress(500*time.Millisecond, time.Second))
	assert.Equal(t, 1.0, Progress(3*time.Second, time.Second))
	assert.Equal(t, 1.0, Progress(0, 0))
}

func TestDriverRunsToCompletion(t *testing.T) {
	clock := scheduler.NewFakeClock(epoch)
	d := NewDriver(clock, 100*time.Millisecond)

	var frames []frame
	gen, ok := d.Start(500*time.Millisecond, record(&frames))
	require.True(t, ok)
	assert.Equal(t, 1, gen)
	assert.True(t, d.Running())

	clock.Advance(time.Second)
	require.Len(t, frames, 5)
	for i, f := range frames {
		assert.InDelta(t, float64(i+1)*0.2, f.p, 1e-9)
		assert.Equal(t, gen, f.gen)
	}
	assert.False(t, d.Running())
	assert.True(t, d.Accepts(gen))
	assert.Zero(t, clock.Pending())
}

func TestDriverRefusesConcurrentRun(t *testing.T) {
	clock := scheduler.NewFakeClock(epoch)
	d := NewDriver(clock, 100*time.Millisecond)

	gen, ok := d.Start(time.Second, nil)
	require.True(t, ok)
	again, ok := d.Start(time.Second, nil)
	assert.False(t, ok)
	assert.Equal(t, gen, again)
}

func TestDriverCancel(t *testing.T) {
	clock := scheduler.NewFakeClock(epoch)
	d := NewDriver(clock, 100*time.Millisecond)

	var frames []frame
	gen, _ := d.Start(time.Second, record(&frames))
	clock.Advance(250 * time.Millisecond)
	require.Len(t, frames, 2)

	assert.True(t, d.Cancel())
	assert.False(t, d.Cancel())
	assert.False(t, d.Accepts(gen))
	clock.Advance(2 * time.Second)
	assert.Len(t, frames, 2)
	assert.Zero(t, clock.Pending())

	next, ok := d.Start(time.Second, record(&frames))
	require.True(t, ok)
	assert.Equal(t, gen+1, next)
	assert.True(t, d.Accepts(next))
	assert.False(t, d.Accepts(gen))
}

func TestDriverZeroDurationFinishesOnFirstFrame(t *testing.T) {
	clock := scheduler.NewFakeClock(epoch)
	d := NewDriver(clock, 0)

	var frames []frame
	d.Start(0, record(&frames))
	clock.Advance(DefaultFrameInterval)
	require.Len(t, frames, 1)
	assert.Equal(t, 1.0, frames[0].p)
	assert.False(t, d.Running())
}

func TestRender(t *testing.T) {
	idle := Render(models.Transition{Type: models.TransitionFade, Progress: 0.4})
	assert.Equal(t, 1.0, idle.From.Opacity)
	assert.Equal(t, 0.0, idle.To.Opacity)
	assert.Equal(t, 0.0, idle.Progress)

	fade := Render(models.Transition{Type: models.TransitionFade, IsActive: true, Progress: 0.25})
	assert.Equal(t, 0.75, fade.From.Opacity)
	assert.Equal(t, 0.25, fade.To.Opacity)
	assert.Less(t, fade.From.ZIndex, fade.To.ZIndex)

	wipe := Render(models.Transition{Type: models.TransitionWipeLR, IsActive: true, Progress: 0.25})
	assert.Equal(t, Clip{Left: 0, Right: 0.75}, wipe.From.Clip)
	assert.Equal(t, Clip{Left: 0.75, Right: 1}, wipe.To.Clip)
	assert.Equal(t, 1.0, wipe.To.Opacity)

	over := Render(models.Transition{Type: models.TransitionFade, IsActive: true, Progress: 7})
	assert.Equal(t, 1.0, over.To.Opacity)
}

func TestVJFrame(t *testing.T) {
	assert.Equal(t, DeckMix{A: 1, B: 0}, VJFrame(-1))
	assert.Equal(t, DeckMix{A: 0.5, B: 0.5}, VJFrame(0))
	assert.Equal(t, DeckMix{A: 0, B: 1}, VJFrame(1))
	assert.Equal(t, DeckMix{A: 0, B: 1}, VJFrame(4))
	assert.Equal(t, DeckMix{A: 0.25, B: 0.75}, VJFrame(0.5))
}
