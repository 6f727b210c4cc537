// Package scheduler owns every timer of the production core. Tasks are keyed:
// registering a key replaces its previous task and a cancelled task never fires.
package scheduler

import (
	"sort"
	"sync"
	"time"
)

// Scheduler runs keyed one-shot and repeating tasks over a Clock.
type Scheduler struct {
	clock Clock

	mu     sync.Mutex
	seq    uint64
	tasks  map[string]*task
	closed bool
}

type task struct {
	id    uint64
	every time.Duration
	fn    func()
	timer Timer
}

// New creates a scheduler. A nil clock means the wall clock.
func New(clock Clock) *Scheduler {
	if clock == nil {
		clock = RealClock{}
	}
	return &Scheduler{clock: clock, tasks: make(map[string]*task)}
}

// Clock returns the scheduler's time source.
func (s *Scheduler) Clock() Clock {
	return s.clock
}

// After runs fn once after d.
func (s *Scheduler) After(key string, d time.Duration, fn func()) {
	s.schedule(key, d, 0, fn)
}

// Every runs fn each interval until cancelled. A non-positive interval is ignored.
func (s *Scheduler) Every(key string, interval time.Duration, fn func()) {
	if interval <= 0 {
		return
	}
	s.schedule(key, interval, interval, fn)
}

func (s *Scheduler) schedule(key string, delay, every time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if prev, ok := s.tasks[key]; ok {
		prev.timer.Stop()
	}
	s.seq++
	t := &task{id: s.seq, every: every, fn: fn}
	s.tasks[key] = t
	t.timer = s.clock.AfterFunc(delay, func() { s.fire(key, t.id) })
}

func (s *Scheduler) fire(key string, id uint64) {
	s.mu.Lock()
	t, ok := s.tasks[key]
	if !ok || t.id != id || s.closed {
		s.mu.Unlock()
		return
	}
	if t.every > 0 {
		t.timer = s.clock.AfterFunc(t.every, func() { s.fire(key, id) })
	} else {
		delete(s.tasks, key)
	}
	fn := t.fn
	s.mu.Unlock()

	fn()
}

// Cancel stops the task registered under key. It reports whether one was pending.
func (s *Scheduler) Cancel(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[key]
	if !ok {
		return false
	}
	t.timer.Stop()
	delete(s.tasks, key)
	return true
}

// CancelAll stops every task.
func (s *Scheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, t := range s.tasks {
		t.timer.Stop()
		delete(s.tasks, key)
	}
}

// Close cancels every task and refuses new ones.
func (s *Scheduler) Close() {
	s.CancelAll()
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

// Has reports whether key is pending.
func (s *Scheduler) Has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.tasks[key]
	return ok
}

// Pending returns the pending keys, sorted.
func (s *Scheduler) Pending() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.tasks))
	for key := range s.tasks {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
