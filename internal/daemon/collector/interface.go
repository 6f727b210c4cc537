// Package collector provides background workers that feed commands to the
// daemon engine.
package collector

import (
	"context"

	"github.com/grovetools/onair/command"
	"github.com/grovetools/onair/internal/daemon/store"
)

// Sender delivers a command to the engine and reports its rejection.
type Sender interface {
	Send(ctx context.Context, cmd command.Command) error
}

// Collector is a background worker that observes the outside world and
// issues commands.
type Collector interface {
	// Name returns the collector's name for logging.
	Name() string

	// Run starts the collector. It should block until its work is done or the
	// context is canceled. It reads the store to get context and writes only
	// through out.
	Run(ctx context.Context, st *store.Store, out Sender) error
}
