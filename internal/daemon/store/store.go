package store

import (
	"errors"
	"sync"

	"github.com/grovetools/onair/command"
	oaerrors "github.com/grovetools/onair/errors"
	"github.com/grovetools/onair/pkg/models"
)

// SubscriberBuffer is the capacity of each subscription channel.
const SubscriberBuffer = 100

// Store holds the current production state. Only the engine writes to it;
// readers get whole snapshots, never a partially applied command.
type Store struct {
	mu          sync.RWMutex
	state       models.State
	version     uint64
	subscribers map[chan Update]struct{}
}

// New creates a store seeded with initial at version 0.
func New(initial models.State) *Store {
	return &Store{
		state:       initial,
		subscribers: make(map[chan Update]struct{}),
	}
}

// Get returns the current snapshot. The state must be treated as read-only.
func (s *Store) Get() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{Version: s.version, State: s.state}
}

// State returns the current state.
func (s *Store) State() models.State {
	return s.Get().State
}

// Version returns the current version.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Apply publishes next as the new state and returns its version.
func (s *Store) Apply(next models.State, cmd command.Type) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = next
	s.version++
	st := next
	s.broadcast(Update{Type: UpdateState, Version: s.version, Command: cmd, State: &st, Source: "engine"})
	return s.version
}

// Reject notifies subscribers that cmd was refused.
func (s *Store) Reject(cmd command.Type, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.broadcast(Update{Type: UpdateRejected, Version: s.version, Command: cmd, Err: asOnAirError(err), Source: "engine"})
}

// BroadcastConfigReload sends a config reload notification to all subscribers.
func (s *Store) BroadcastConfigReload(file string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.broadcast(Update{Type: UpdateConfigReload, Version: s.version, Source: "config", Payload: file})
}

// Subscribe creates a new subscription channel for state updates.
func (s *Store) Subscribe() chan Update {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan Update, SubscriberBuffer)
	s.subscribers[ch] = struct{}{}
	return ch
}

// Unsubscribe removes a subscription and closes its channel.
func (s *Store) Unsubscribe(ch chan Update) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.subscribers[ch]; !ok {
		return
	}
	delete(s.subscribers, ch)
	close(ch)
}

// Subscribers returns the number of live subscriptions.
func (s *Store) Subscribers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subscribers)
}

// broadcast must be called with the lock held.
func (s *Store) broadcast(u Update) {
	for ch := range s.subscribers {
		select {
		case ch <- u:
		default:
			// Non-blocking send to prevent slow clients from stalling the daemon
		}
	}
}

func asOnAirError(err error) *oaerrors.OnAirError {
	if err == nil {
		return nil
	}
	var oe *oaerrors.OnAirError
	if errors.As(err, &oe) {
		return oe
	}
	return oaerrors.Wrap(err, oaerrors.ErrCodeInternal, err.Error())
}
