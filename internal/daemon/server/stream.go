package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/grovetools/onair/command"
	oaerrors "github.com/grovetools/onair/errors"
	"github.com/grovetools/onair/internal/daemon/engine"
	"github.com/grovetools/onair/internal/daemon/store"
	"github.com/grovetools/onair/pkg/models"
)

// apiStateUpdate matches the daemon.StateUpdate type for streaming.
type apiStateUpdate struct {
	UpdateType string               `json:"update_type"`
	Version    uint64               `json:"version"`
	Command    command.Type         `json:"command,omitempty"`
	State      *models.State        `json:"state,omitempty"`
	Error      *oaerrors.OnAirError `json:"error,omitempty"`
	Source     string               `json:"source,omitempty"`
	ConfigFile string               `json:"config_file,omitempty"`
}

// convertToAPIUpdate converts internal store.Update to the public API format.
func convertToAPIUpdate(u store.Update) *apiStateUpdate {
	out := &apiStateUpdate{
		UpdateType: string(u.Type),
		Version:    u.Version,
		Command:    u.Command,
		Source:     u.Source,
	}
	switch u.Type {
	case store.UpdateState:
		out.State = u.State
	case store.UpdateRejected:
		out.Error = u.Err
	case store.UpdateConfigReload:
		if file, ok := u.Payload.(string); ok {
			out.ConfigFile = file
		}
	default:
		return nil
	}
	return out
}

func initialUpdate(snap store.Snapshot) *apiStateUpdate {
	return &apiStateUpdate{UpdateType: "initial", Version: snap.Version, State: &snap.State}
}

// handleStreamState provides Server-Sent Events (SSE) for real-time state
// updates. The first event carries the full snapshot.
func (s *Server) handleStreamState(w http.ResponseWriter, r *http.Request) {
	if !s.ready(w) {
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	// Subscribe before the snapshot so no version is skipped.
	ch := s.engine.Store().Subscribe()
	defer s.engine.Store().Unsubscribe(ch)

	fmt.Fprintf(w, ": connected\n\n")
	flusher.Flush()
	s.logger.Debug("SSE client connected")

	snap := s.engine.Store().Get()
	if data, err := json.Marshal(initialUpdate(snap)); err == nil {
		fmt.Fprintf(w, "data: %s\n\n", data)
		flusher.Flush()
	}

	for {
		select {
		case <-r.Context().Done():
			s.logger.Debug("SSE client disconnected")
			return
		case update, ok := <-ch:
			if !ok {
				return
			}
			if update.Version <= snap.Version && update.Type == store.UpdateState {
				continue
			}
			apiUpdate := convertToAPIUpdate(update)
			if apiUpdate == nil {
				continue
			}
			data, err := json.Marshal(apiUpdate)
			if err != nil {
				s.logger.WithError(err).Error("Failed to marshal update")
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", data)
			flusher.Flush()
		}
	}
}

// wsMessage is a frame sent over /api/ws. Clients send bare command documents.
type wsMessage struct {
	Type   string          `json:"type"`
	Ack    *engine.Ack     `json:"ack,omitempty"`
	Update *apiStateUpdate `json:"update,omitempty"`
}

const (
	wsWriteTimeout = 5 * time.Second
	wsOutbox       = 32
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// Any origin may connect.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleWebSocket accepts commands and pushes acks and state updates over
// one connection. Only the writer goroutine touches the write side.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if !s.ready(w) {
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.WithError(err).Debug("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := s.engine.Store().Subscribe()
	defer s.engine.Store().Unsubscribe(ch)
	snap := s.engine.Store().Get()

	outbox := make(chan wsMessage, wsOutbox)
	outbox <- wsMessage{Type: "update", Update: initialUpdate(snap)}

	go s.wsWriter(ctx, cancel, conn, outbox, ch, snap.Version)
	s.logger.Debug("WebSocket client connected")

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			s.logger.WithError(err).Debug("WebSocket client disconnected")
			return
		}
		ack := s.wsSubmit(ctx, data)
		select {
		case outbox <- wsMessage{Type: "ack", Ack: &ack}:
		case <-ctx.Done():
			return
		}
	}
}

func (s *Server) wsSubmit(ctx context.Context, data []byte) engine.Ack {
	cmd, oe := s.decodeCommand(data)
	if oe != nil {
		return engine.Ack{Command: cmd.Type, Error: oe}
	}
	ack, err := s.engine.Submit(ctx, cmd)
	if err != nil {
		return engine.Ack{Command: cmd.Type, Error: oaerrors.Wrap(err, oaerrors.ErrCodeInternal, "command not processed")}
	}
	return ack
}

func (s *Server) wsWriter(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, outbox <-chan wsMessage, updates <-chan store.Update, since uint64) {
	defer cancel()
	// Closing unblocks the reader once writing has failed.
	defer conn.Close()

	write := func(m wsMessage) bool {
		conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		if err := conn.WriteJSON(m); err != nil {
			s.logger.WithError(err).Debug("WebSocket write failed")
			return false
		}
		return true
	}

	for {
		select {
		case <-ctx.Done():
			return
		case m := <-outbox:
			if !write(m) {
				return
			}
		case u, ok := <-updates:
			if !ok {
				return
			}
			if u.Type == store.UpdateState && u.Version <= since {
				continue
			}
			if apiUpdate := convertToAPIUpdate(u); apiUpdate != nil {
				if !write(wsMessage{Type: "update", Update: apiUpdate}) {
					return
				}
			}
		}
	}
}
