// Package engine owns the dispatch loop of the daemon. One goroutine applies
// commands to the state; timers, producers and collectors only enqueue.
package engine

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/grovetools/onair/command"
	"github.com/grovetools/onair/config"
	oaerrors "github.com/grovetools/onair/errors"
	"github.com/grovetools/onair/internal/daemon/collector"
	"github.com/grovetools/onair/internal/daemon/store"
	"github.com/grovetools/onair/pkg/console"
	"github.com/grovetools/onair/pkg/models"
	"github.com/grovetools/onair/pkg/scheduler"
	"github.com/grovetools/onair/pkg/services"
	"github.com/grovetools/onair/pkg/transition"
)

// ErrStopped is returned by Submit once the engine has shut down.
var ErrStopped = errors.New("engine stopped")

// QueueSize is the capacity of the command queue.
const QueueSize = 256

// Ack is the reply to a submitted command.
type Ack struct {
	Command  command.Type         `json:"command"`
	Accepted bool                 `json:"accepted"`
	Changed  bool                 `json:"changed"`
	Version  uint64               `json:"version"`
	Error    *oaerrors.OnAirError `json:"error,omitempty"`
}

// PresetStore persists the saved configurations.
type PresetStore interface {
	SavePresets(ctx context.Context, presets []models.Preset) error
	ListPresets(ctx context.Context) ([]models.Preset, error)
}

// PrefsStore persists the boot flags.
type PrefsStore interface {
	SavePrefs(p models.Prefs) error
}

// Services are the collaborators consulted by task producers.
type Services struct {
	Text      services.TextGenerator
	Probe     services.StreamProbe
	Discovery services.DeviceDiscovery
}

type request struct {
	cmd   command.Command
	reply chan Ack
}

// Engine serializes every state change of the daemon.
type Engine struct {
	store      *store.Store
	dispatcher atomic.Pointer[console.Dispatcher]
	clock      scheduler.Clock
	frame      time.Duration
	sched      *scheduler.Scheduler
	driver     *transition.Driver
	services   Services
	presets    PresetStore
	prefs      PrefsStore
	collectors []collector.Collector
	logger     *logrus.Entry

	requests chan request
	persist  chan func(context.Context) error
	done     chan struct{}
	stopOnce sync.Once

	rngMu sync.Mutex
	rng   *rand.Rand

	ctx context.Context
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock drives timers and transitions from clock.
func WithClock(clock scheduler.Clock) Option {
	return func(e *Engine) { e.clock = clock }
}

// WithFrameInterval paces transition frames.
func WithFrameInterval(d time.Duration) Option {
	return func(e *Engine) { e.frame = d }
}

// WithServices sets the task collaborators.
func WithServices(s Services) Option {
	return func(e *Engine) { e.services = s }
}

// WithPresetStore persists presets through ps.
func WithPresetStore(ps PresetStore) Option {
	return func(e *Engine) { e.presets = ps }
}

// WithPrefsStore persists boot flags through ps.
func WithPrefsStore(ps PrefsStore) Option {
	return func(e *Engine) { e.prefs = ps }
}

// WithRand seeds the health jitter.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// New creates an engine over st. It does nothing until Run is called.
func New(st *store.Store, d *console.Dispatcher, logger *logrus.Entry, opts ...Option) *Engine {
	e := &Engine{
		store:    st,
		logger:   logger,
		requests: make(chan request, QueueSize),
		persist:  make(chan func(context.Context) error, QueueSize),
		done:     make(chan struct{}),
		ctx:      context.Background(),
	}
	e.dispatcher.Store(d)
	for _, opt := range opts {
		opt(e)
	}
	e.sched = scheduler.New(e.clock)
	e.driver = transition.NewDriver(e.clock, e.frame)
	if e.rng == nil {
		e.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if e.services.Text == nil {
		e.services.Text = services.Static{}
	}
	if e.services.Probe == nil {
		e.services.Probe = services.NewSimulatedProbe(config.StreamsConfig{}, nil)
	}
	return e
}

// Register adds a collector to the engine.
func (e *Engine) Register(c collector.Collector) {
	e.collectors = append(e.collectors, c)
}

// Store returns the engine's state store.
func (e *Engine) Store() *store.Store {
	return e.store
}

// Scheduler returns the engine's timer registry.
func (e *Engine) Scheduler() *scheduler.Scheduler {
	return e.sched
}

// Driver returns the transition driver.
func (e *Engine) Driver() *transition.Driver {
	return e.driver
}

// Run processes commands and runs collectors until ctx is cancelled.
func (e *Engine) Run(ctx context.Context) {
	e.ctx = ctx
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		e.loop(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		e.persistLoop(ctx)
	}()

	for _, c := range e.collectors {
		wg.Add(1)
		go func(col collector.Collector) {
			defer wg.Done()
			e.logger.WithField("collector", col.Name()).Info("Starting collector")
			if err := col.Run(ctx, e.store, e); err != nil {
				e.logger.WithField("collector", col.Name()).WithError(err).Error("Collector failed")
			}
		}(c)
	}

	wg.Wait()
}

// Submit dispatches cmd and waits for its result.
func (e *Engine) Submit(ctx context.Context, cmd command.Command) (Ack, error) {
	reply := make(chan Ack, 1)
	select {
	case e.requests <- request{cmd: cmd, reply: reply}:
	case <-e.done:
		return Ack{}, ErrStopped
	case <-ctx.Done():
		return Ack{}, ctx.Err()
	}
	select {
	case ack := <-reply:
		return ack, nil
	case <-e.done:
		return Ack{}, ErrStopped
	case <-ctx.Done():
		return Ack{}, ctx.Err()
	}
}

// Send implements collector.Sender. A rejected command is an error.
func (e *Engine) Send(ctx context.Context, cmd command.Command) error {
	ack, err := e.Submit(ctx, cmd)
	if err != nil {
		return err
	}
	if ack.Error != nil {
		return ack.Error
	}
	return nil
}

// Post enqueues cmd without waiting for the result.
func (e *Engine) Post(cmd command.Command) {
	select {
	case e.requests <- request{cmd: cmd}:
	case <-e.done:
	}
}

// SetPolicy swaps the dispatcher policy. It applies from the next command on.
func (e *Engine) SetPolicy(p console.Policy) {
	e.dispatcher.Store(e.dispatcher.Load().WithPolicy(p))
}

// Policy returns the policy in effect.
func (e *Engine) Policy() console.Policy {
	return e.dispatcher.Load().Policy()
}

func (e *Engine) loop(ctx context.Context) {
	defer e.stop()
	for {
		select {
		case <-ctx.Done():
			return
		case req := <-e.requests:
			ack := e.handle(req.cmd)
			if req.reply != nil {
				req.reply <- ack
			}
		}
	}
}

func (e *Engine) stop() {
	e.stopOnce.Do(func() {
		close(e.done)
		e.sched.Close()
		e.driver.Cancel()
	})
}

// Done is closed when the loop has stopped.
func (e *Engine) Done() <-chan struct{} {
	return e.done
}

// handle runs on the loop goroutine only.
func (e *Engine) handle(cmd command.Command) Ack {
	log := e.logger.WithField("command", cmd.Type)
	ack := Ack{Command: cmd.Type, Version: e.store.Version()}

	if e.staleFrame(cmd) {
		log.Debug("Dropped stale transition frame")
		ack.Accepted = true
		return ack
	}

	current := e.store.State()
	res := e.dispatcher.Load().Dispatch(current, cmd)
	if res.Err != nil {
		ack.Error = asOnAirError(res.Err)
		log.WithField("code", ack.Error.Code).Info("Command rejected")
		e.store.Reject(cmd.Type, ack.Error)
		return ack
	}

	ack.Accepted, ack.Changed = true, res.Changed
	if res.Changed {
		ack.Version = e.store.Apply(res.State, cmd.Type)
	}
	e.applyEffects(res.State, res.Effects)
	e.syncDriver(res.State.Transition)
	if res.Changed && cmd.Type != command.SwitcherSetProgress && cmd.Type != command.TimerTick && cmd.Type != command.ScoreboardClockTick {
		log.WithField("version", ack.Version).Debug("Command applied")
	}
	return ack
}

func (e *Engine) staleFrame(cmd command.Command) bool {
	if cmd.Type != command.SwitcherSetProgress {
		return false
	}
	p, err := command.Decode[command.Progress](cmd)
	if err != nil || p.Generation == 0 {
		return false
	}
	return !e.driver.Accepts(p.Generation)
}

func asOnAirError(err error) *oaerrors.OnAirError {
	var oe *oaerrors.OnAirError
	if errors.As(err, &oe) {
		return oe
	}
	return oaerrors.Wrap(err, oaerrors.ErrCodeInternal, err.Error())
}
