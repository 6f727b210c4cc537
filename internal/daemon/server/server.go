// Package server provides the HTTP server for the onair daemon.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/grovetools/onair/internal/daemon/engine"
	"github.com/grovetools/onair/pkg/console"
	"github.com/grovetools/onair/pkg/scoreboard"
	"github.com/grovetools/onair/schema"
)

// RunningConfig describes what the daemon was started with. It is exposed via
// the /api/config endpoint so clients can verify what config is active.
type RunningConfig struct {
	ConfigFiles []string       `json:"config_files,omitempty"`
	Socket      string         `json:"socket"`
	Listen      string         `json:"listen,omitempty"`
	Database    string         `json:"database,omitempty"`
	StartedAt   time.Time      `json:"started_at"`
	Policy      console.Policy `json:"policy"`
}

// Server manages the daemon's HTTP servers over a Unix socket and an optional
// TCP address.
type Server struct {
	logger    *logrus.Entry
	engine    *engine.Engine
	catalog   *scoreboard.Catalog
	validator *schema.Validator

	mu            sync.RWMutex
	runningConfig *RunningConfig
	servers       []*http.Server
}

// New creates a new Server instance.
func New(logger *logrus.Entry) *Server {
	return &Server{
		logger:  logger,
		catalog: scoreboard.DefaultCatalog(),
	}
}

// SetEngine sets the command engine for the server.
func (s *Server) SetEngine(eng *engine.Engine) {
	s.engine = eng
}

// SetCatalog sets the sport templates served by /api/sports.
func (s *Server) SetCatalog(c *scoreboard.Catalog) {
	s.catalog = c
}

// SetValidator makes POST /api/commands check documents against the command
// schema before parsing.
func (s *Server) SetValidator(v *schema.Validator) {
	s.validator = v
}

// SetRunningConfig sets the running configuration for the server.
func (s *Server) SetRunningConfig(cfg *RunningConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runningConfig = cfg
}

// Handler returns the routes of the daemon API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("/api/state", s.handleGetState)
	mux.HandleFunc("/api/views", s.handleGetViews)
	mux.HandleFunc("/api/commands", s.handleCommands)
	mux.HandleFunc("/api/stream", s.handleStreamState)
	mux.HandleFunc("/api/ws", s.handleWebSocket)
	mux.HandleFunc("/api/presets", s.handleGetPresets)
	mux.HandleFunc("/api/config", s.handleGetConfig)
	mux.HandleFunc("/api/sports", s.handleGetSports)

	return h2c.NewHandler(mux, &http2.Server{})
}

// ListenAndServe starts the daemon on the given unix socket path.
// It blocks until the server stops or fails.
func (s *Server) ListenAndServe(socketPath string) error {
	// Cleanup stale socket
	if _, err := os.Stat(socketPath); err == nil {
		if err := os.Remove(socketPath); err != nil {
			return fmt.Errorf("failed to remove stale socket: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(socketPath), 0755); err != nil {
		return fmt.Errorf("failed to create socket directory: %w", err)
	}

	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		return fmt.Errorf("failed to listen on socket: %w", err)
	}

	// Set restrictive permissions on socket
	if err := os.Chmod(socketPath, 0600); err != nil {
		_ = listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.logger.WithField("socket", socketPath).Info("Daemon listening")
	return s.serve(listener)
}

// ListenTCP serves the same API on a TCP address. It blocks like
// ListenAndServe.
func (s *Server) ListenTCP(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.logger.WithField("addr", listener.Addr().String()).Info("Daemon listening on TCP")
	return s.serve(listener)
}

func (s *Server) serve(l net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.mu.Lock()
	s.servers = append(s.servers, srv)
	s.mu.Unlock()

	if err := srv.Serve(l); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops every listener.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	s.mu.RLock()
	servers := append([]*http.Server(nil), s.servers...)
	s.mu.RUnlock()

	var first error
	for _, srv := range servers {
		if err := srv.Shutdown(ctx); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (s *Server) ready(w http.ResponseWriter) bool {
	if s.engine == nil {
		http.Error(w, "engine not initialized", http.StatusServiceUnavailable)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
