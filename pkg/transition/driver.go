// Package transition animates auto transitions and computes the geometry used
// to render them.
package transition

import (
	"sync"
	"time"

	"github.com/grovetools/onair/pkg/scheduler"
)

// DefaultFrameInterval paces frames at roughly 60 per second.
const DefaultFrameInterval = 16 * time.Millisecond

// Progress is the fraction of duration covered by elapsed, capped at 1.
func Progress(elapsed, duration time.Duration) float64 {
	if duration <= 0 {
		return 1
	}
	if elapsed <= 0 {
		return 0
	}
	p := float64(elapsed) / float64(duration)
	if p > 1 {
		return 1
	}
	return p
}

// EmitFunc receives one frame of a run.
type EmitFunc func(progress float64, generation int)

// Driver produces progress frames for one transition at a time. Each frame
// re-arms the next one, so a cancelled run never leaves a step behind.
type Driver struct {
	clock scheduler.Clock
	frame time.Duration

	mu        sync.Mutex
	gen       int
	running   bool
	cancelled bool
	started   time.Time
	duration  time.Duration
	emit      EmitFunc
	timer     scheduler.Timer
}

// NewDriver creates a driver on clock. A non-positive frame uses DefaultFrameInterval.
func NewDriver(clock scheduler.Clock, frame time.Duration) *Driver {
	if clock == nil {
		clock = scheduler.RealClock{}
	}
	if frame <= 0 {
		frame = DefaultFrameInterval
	}
	return &Driver{clock: clock, frame: frame}
}

// Start begins a run of the given duration. It returns the generation of the
// new run, or false when a run is already in progress.
func (d *Driver) Start(duration time.Duration, emit EmitFunc) (int, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running {
		return d.gen, false
	}
	d.gen++
	d.running, d.cancelled = true, false
	d.started, d.duration, d.emit = d.clock.Now(), duration, emit
	d.arm(d.gen)
	return d.gen, true
}

// Cancel stops the current run. Frames already emitted for it are no longer
// accepted.
func (d *Driver) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.running {
		return false
	}
	d.running, d.cancelled = false, true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	return true
}

// Running reports whether a run is in progress.
func (d *Driver) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.running
}

// Generation returns the generation of the latest run.
func (d *Driver) Generation() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gen
}

// Accepts reports whether a frame of generation belongs to the latest run and
// that run was not cancelled.
func (d *Driver) Accepts(generation int) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return generation == d.gen && !d.cancelled
}

// SetFrameInterval changes the pacing of subsequent frames.
func (d *Driver) SetFrameInterval(frame time.Duration) {
	if frame <= 0 {
		return
	}
	d.mu.Lock()
	d.frame = frame
	d.mu.Unlock()
}

func (d *Driver) arm(gen int) {
	d.timer = d.clock.AfterFunc(d.frame, func() { d.step(gen) })
}

func (d *Driver) step(gen int) {
	d.mu.Lock()
	if !d.running || gen != d.gen {
		d.mu.Unlock()
		return
	}
	p := Progress(d.clock.Now().Sub(d.started), d.duration)
	done := p >= 1
	if done {
		d.running, d.timer = false, nil
	}
	emit := d.emit
	d.mu.Unlock()

	if emit != nil {
		emit(p, gen)
	}
	if done {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running && gen == d.gen {
		d.arm(gen)
	}
}
