// Package console is the command dispatcher of the production core. It maps
// a state snapshot and one command to the next snapshot plus the side
// effects the engine has to perform.
package console

import (
	"reflect"
	"time"

	"github.com/google/uuid"

	"github.com/grovetools/onair/command"
	oaerrors "github.com/grovetools/onair/errors"
	"github.com/grovetools/onair/pkg/models"
	"github.com/grovetools/onair/pkg/scoreboard"
)

// IDGenerator returns a new entity id with the given prefix.
type IDGenerator func(prefix string) string

// UUIDs is the default IDGenerator.
func UUIDs(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

// Result is the outcome of one dispatch.
type Result struct {
	State   models.State
	Effects []Effect
	// Err is set for rejected or malformed commands. State is then the input.
	Err error
	// Changed reports whether State differs from the input.
	Changed bool
}

// Dispatcher applies commands. It holds no production state of its own.
type Dispatcher struct {
	policy     Policy
	scoreboard *scoreboard.Engine
	ids        IDGenerator
	now        func() time.Time
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithScoreboard sets the engine used for scoreboard actions.
func WithScoreboard(e *scoreboard.Engine) Option {
	return func(d *Dispatcher) {
		if e != nil {
			d.scoreboard = e
		}
	}
}

// WithIDGenerator replaces the uuid based id source.
func WithIDGenerator(g IDGenerator) Option {
	return func(d *Dispatcher) {
		if g != nil {
			d.ids = g
		}
	}
}

// WithClock sets the wall clock used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) {
		if now != nil {
			d.now = now
		}
	}
}

// New creates a dispatcher with the given policy.
func New(policy Policy, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		policy:     policy,
		scoreboard: scoreboard.NewEngine(nil),
		ids:        UUIDs,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Policy returns the active policy.
func (d *Dispatcher) Policy() Policy {
	return d.policy
}

// WithPolicy returns a copy of d that uses p.
func (d *Dispatcher) WithPolicy(p Policy) *Dispatcher {
	out := *d
	out.policy = p
	return &out
}

// Scoreboard returns the scoreboard engine.
func (d *Dispatcher) Scoreboard() *scoreboard.Engine {
	return d.scoreboard
}

type handler func(t *tx, cmd command.Command) error

var handlers = map[command.Type]handler{}

func handle(typ command.Type, h handler) {
	handlers[typ] = h
}

// tx is one dispatch in progress. s is a private clone of the input.
type tx struct {
	d       *Dispatcher
	s       models.State
	effects []Effect
}

func (t *tx) emit(e ...Effect) {
	t.effects = append(t.effects, e...)
}

func (t *tx) policy() Policy {
	return t.d.policy
}

// Dispatch applies cmd to state. state is never modified. Unknown command
// types are ignored.
func (d *Dispatcher) Dispatch(state models.State, cmd command.Command) Result {
	h, ok := handlers[cmd.Type]
	if !ok {
		return Result{State: state}
	}
	if state.IsLive && command.IsStructural(cmd.Type) {
		return Result{State: state, Err: oaerrors.RejectedWhileLive(string(cmd.Type))}
	}

	t := &tx{d: d, s: state.Clone()}
	if err := h(t, cmd); err != nil {
		return Result{State: state, Err: err}
	}
	changed := !reflect.DeepEqual(state, t.s)
	if !changed {
		// Handlers only produce new state from copies, so the input is as good.
		return Result{State: state, Effects: t.effects}
	}
	return Result{State: t.s, Effects: t.effects, Changed: true}
}

// decode extracts a payload, mapping failures to ErrCodeInvalidPayload.
func decode[T any](cmd command.Command) (T, error) {
	v, err := command.Decode[T](cmd)
	if err != nil {
		return v, oaerrors.InvalidPayload(string(cmd.Type), err)
	}
	return v, nil
}

// on registers a handler that receives the decoded payload.
func on[T any](typ command.Type, fn func(t *tx, payload T) error) {
	handle(typ, func(t *tx, cmd command.Command) error {
		p, err := decode[T](cmd)
		if err != nil {
			return err
		}
		return fn(t, p)
	})
}

// bare registers a handler for a command without payload.
func bare(typ command.Type, fn func(t *tx) error) {
	handle(typ, func(t *tx, _ command.Command) error {
		return fn(t)
	})
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
