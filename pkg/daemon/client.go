// Package daemon provides a client for the onair daemon (onaird). The remote
// client talks to the daemon's HTTP API; the local client runs the same
// dispatcher in-process for offline dry runs.
package daemon

import (
	"context"
	"time"

	"github.com/grovetools/onair/command"
	oaerrors "github.com/grovetools/onair/errors"
	"github.com/grovetools/onair/pkg/console"
	"github.com/grovetools/onair/pkg/models"
	"github.com/grovetools/onair/pkg/scoreboard"
	"github.com/grovetools/onair/pkg/views"
)

// Client defines the interface for interacting with the onair daemon.
// Both RemoteClient and LocalClient implement it.
type Client interface {
	// Send dispatches a command and returns its acknowledgement. A command
	// refused by policy is not an error: inspect Ack.Error.
	Send(ctx context.Context, cmd command.Command) (Ack, error)

	// State returns the current versioned state.
	State(ctx context.Context) (Snapshot, error)

	// Views returns the derived projections of the current state.
	Views(ctx context.Context) (views.View, error)

	// Presets returns the saved configurations.
	Presets(ctx context.Context) ([]models.Preset, error)

	// Sports lists the scoreboard templates.
	Sports(ctx context.Context) ([]Sport, error)

	// Sport returns one scoreboard template resolved against the base board.
	Sport(ctx context.Context, id string) (scoreboard.State, error)

	// StreamState subscribes to real-time state updates. The first update is
	// the full snapshot. The channel closes when ctx ends or the connection
	// drops.
	StreamState(ctx context.Context) (<-chan StateUpdate, error)

	// IsRunning returns true if the daemon is available and responding.
	IsRunning() bool

	// Close cleans up any resources used by the client.
	Close() error
}

// Ack is the daemon's reply to a command.
type Ack struct {
	Command  command.Type         `json:"command"`
	Accepted bool                 `json:"accepted"`
	Changed  bool                 `json:"changed"`
	Version  uint64               `json:"version"`
	Error    *oaerrors.OnAirError `json:"error,omitempty"`
}

// Snapshot is a state and the version it was published at.
type Snapshot struct {
	Version uint64       `json:"version"`
	State   models.State `json:"state"`
}

// StateUpdate represents an update pushed from the daemon to subscribers.
type StateUpdate struct {
	UpdateType string               `json:"update_type"` // "initial", "state", "rejected", "config_reload"
	Version    uint64               `json:"version"`
	Command    command.Type         `json:"command,omitempty"`
	State      *models.State        `json:"state,omitempty"`
	Error      *oaerrors.OnAirError `json:"error,omitempty"`
	Source     string               `json:"source,omitempty"`
	ConfigFile string               `json:"config_file,omitempty"`
}

// Sport is one entry of the scoreboard catalog.
type Sport struct {
	ID     string `json:"id"`
	Active bool   `json:"active"`
}

// RunningConfig is what the daemon reports about its own startup.
type RunningConfig struct {
	ConfigFiles []string       `json:"config_files,omitempty"`
	Socket      string         `json:"socket"`
	Listen      string         `json:"listen,omitempty"`
	Database    string         `json:"database,omitempty"`
	StartedAt   time.Time      `json:"started_at"`
	Policy      console.Policy `json:"policy"`
}
