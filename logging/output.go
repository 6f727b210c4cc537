package logging

import (
	"io"
	"os"
	"sync"
)

// terminal is the stderr destination shared by every component logger.
var terminal = &swapWriter{w: os.Stderr}

type swapWriter struct {
	mu sync.RWMutex
	w  io.Writer
}

func (s *swapWriter) Write(p []byte) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.w.Write(p)
}

func (s *swapWriter) swap(w io.Writer) io.Writer {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.w
	s.w = w
	return prev
}

// RedirectOutput sends the terminal half of every logger to w until restore
// is called. The file sink is unaffected. The monitor uses it to keep log
// lines off the screen it draws.
func RedirectOutput(w io.Writer) (restore func()) {
	prev := terminal.swap(w)
	var once sync.Once
	return func() { once.Do(func() { terminal.swap(prev) }) }
}

// Output is the writer loggers use for the terminal.
func Output() io.Writer {
	return terminal
}
