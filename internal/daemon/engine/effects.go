package engine

import (
	"context"
	"time"

	"github.com/grovetools/onair/command"
	"github.com/grovetools/onair/pkg/console"
	"github.com/grovetools/onair/pkg/models"
)

// applyEffects registers and cancels scheduler tasks and queues persistence.
func (e *Engine) applyEffects(s models.State, effects []console.Effect) {
	for _, eff := range effects {
		switch eff.Kind {
		case console.EffectAfter:
			e.sched.After(eff.Key, eff.Delay, e.firer(eff))
		case console.EffectEvery:
			e.sched.Every(eff.Key, eff.Delay, e.firer(eff))
		case console.EffectCancel:
			e.sched.Cancel(eff.Key)
		case console.EffectPersistPresets:
			e.queuePresets(s.SavedConfigs)
		case console.EffectPersistPrefs:
			e.queuePrefs(s.Prefs)
		default:
			e.logger.WithField("effect", eff.String()).Warn("Unknown effect")
		}
	}
}

// firer returns the scheduler callback of a timed effect. It runs on a timer
// goroutine and only ever enqueues.
func (e *Engine) firer(eff console.Effect) func() {
	if eff.Command != nil {
		cmd := *eff.Command
		return func() { e.Post(cmd) }
	}
	if eff.Task != nil {
		task := *eff.Task
		return func() {
			if cmd, ok := e.produce(e.ctx, task); ok {
				e.Post(cmd)
			}
		}
	}
	return func() {}
}

// syncDriver starts the frame driver for a freshly started auto transition and
// stops it once the transition is no longer active.
func (e *Engine) syncDriver(t models.Transition) {
	switch {
	case t.IsActive && t.Progress == 0 && !e.driver.Running():
		duration := time.Duration(t.DurationMs) * time.Millisecond
		gen, _ := e.driver.Start(duration, func(p float64, gen int) {
			e.Post(command.New(command.SwitcherSetProgress, command.Progress{Value: p, Generation: gen}))
		})
		e.logger.WithField("generation", gen).WithField("duration", duration).Debug("Transition started")
	case !t.IsActive && e.driver.Running():
		e.driver.Cancel()
		e.logger.Debug("Transition driver cancelled")
	}
}

func (e *Engine) queuePresets(presets []models.Preset) {
	if e.presets == nil {
		return
	}
	snapshot := append([]models.Preset(nil), presets...)
	e.enqueue(func(ctx context.Context) error {
		return e.presets.SavePresets(ctx, snapshot)
	})
}

func (e *Engine) queuePrefs(p models.Prefs) {
	if e.prefs == nil {
		return
	}
	e.enqueue(func(context.Context) error {
		return e.prefs.SavePrefs(p)
	})
}

func (e *Engine) enqueue(job func(context.Context) error) {
	select {
	case e.persist <- job:
	default:
		e.logger.Warn("Persistence queue full, dropping write")
	}
}

func (e *Engine) persistLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			e.drainPersist()
			return
		case job := <-e.persist:
			if err := job(ctx); err != nil {
				e.logger.WithError(err).Error("Persistence failed")
			}
		}
	}
}

// drainPersist flushes queued writes on shutdown.
func (e *Engine) drainPersist() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	for {
		select {
		case job := <-e.persist:
			if err := job(ctx); err != nil {
				e.logger.WithError(err).Error("Persistence failed")
			}
		default:
			return
		}
	}
}
