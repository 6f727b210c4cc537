package daemon

import (
	"context"
	"errors"
	"sync"

	"github.com/grovetools/onair/command"
	oaerrors "github.com/grovetools/onair/errors"
	"github.com/grovetools/onair/pkg/console"
	"github.com/grovetools/onair/pkg/models"
	"github.com/grovetools/onair/pkg/scoreboard"
	"github.com/grovetools/onair/pkg/views"
)

// LocalClient implements Client by dispatching against an in-memory state.
// Effects are discarded: timers never fire and nothing is persisted. It lets
// the CLI preview a command without a running daemon.
type LocalClient struct {
	dispatcher *console.Dispatcher
	catalog    *scoreboard.Catalog

	mu      sync.Mutex
	state   models.State
	version uint64
}

// NewLocalClient creates a LocalClient starting from initial.
func NewLocalClient(initial models.State, d *console.Dispatcher) *LocalClient {
	if d == nil {
		d = console.New(console.DefaultPolicy())
	}
	return &LocalClient{
		dispatcher: d,
		catalog:    scoreboard.DefaultCatalog(),
		state:      initial,
	}
}

// Send dispatches cmd against the local state.
func (c *LocalClient) Send(ctx context.Context, cmd command.Command) (Ack, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ack := Ack{Command: cmd.Type, Version: c.version}
	res := c.dispatcher.Dispatch(c.state, cmd)
	if res.Err != nil {
		var oe *oaerrors.OnAirError
		if !errors.As(res.Err, &oe) {
			oe = oaerrors.Wrap(res.Err, oaerrors.ErrCodeInternal, res.Err.Error())
		}
		ack.Error = oe
		return ack, nil
	}
	ack.Accepted, ack.Changed = true, res.Changed
	if res.Changed {
		c.state = res.State
		c.version++
		ack.Version = c.version
	}
	return ack, nil
}

// State returns the local state.
func (c *LocalClient) State(ctx context.Context) (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{Version: c.version, State: c.state}, nil
}

// Views derives the projections of the local state.
func (c *LocalClient) Views(ctx context.Context) (views.View, error) {
	snap, _ := c.State(ctx)
	return views.Build(snap.State), nil
}

// Presets returns the presets saved in the local state.
func (c *LocalClient) Presets(ctx context.Context) ([]models.Preset, error) {
	snap, _ := c.State(ctx)
	return snap.State.SavedConfigs, nil
}

// Sports lists the embedded scoreboard templates.
func (c *LocalClient) Sports(ctx context.Context) ([]Sport, error) {
	snap, _ := c.State(ctx)
	active := snap.State.Scoreboard.SportID()
	var out []Sport
	for _, id := range c.catalog.Sports() {
		out = append(out, Sport{ID: id, Active: id == active})
	}
	return out, nil
}

// Sport resolves one embedded template.
func (c *LocalClient) Sport(ctx context.Context, id string) (scoreboard.State, error) {
	if !c.catalog.Has(id) {
		return nil, oaerrors.New(oaerrors.ErrCodeNotFound, "unknown sport "+id)
	}
	return c.catalog.Load(id), nil
}

// StreamState returns an error since streaming is only available via daemon.
func (c *LocalClient) StreamState(ctx context.Context) (<-chan StateUpdate, error) {
	return nil, errors.New("streaming not available in local mode; start the daemon for real-time updates")
}

// IsRunning returns false since this is the offline client.
func (c *LocalClient) IsRunning() bool {
	return false
}

// Close is a no-op for LocalClient.
func (c *LocalClient) Close() error {
	return nil
}

// Ensure LocalClient implements Client interface.
var _ Client = (*LocalClient)(nil)
