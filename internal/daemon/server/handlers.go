package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/grovetools/onair/command"
	oaerrors "github.com/grovetools/onair/errors"
	"github.com/grovetools/onair/internal/daemon/engine"
	"github.com/grovetools/onair/pkg/models"
	"github.com/grovetools/onair/pkg/views"
)

// maxCommandBytes bounds a single command document.
const maxCommandBytes = 1 << 20

// handleGetState returns the versioned state snapshot as JSON.
func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	if !s.ready(w) {
		return
	}
	writeJSON(w, http.StatusOK, s.engine.Store().Get())
}

// handleGetViews returns the derived projections of the current state.
func (s *Server) handleGetViews(w http.ResponseWriter, r *http.Request) {
	if !s.ready(w) {
		return
	}
	writeJSON(w, http.StatusOK, views.Build(s.engine.Store().State()))
}

// handleCommands dispatches one command document and replies with its ack.
// Rejections by policy answer 409, malformed or invalid documents 422.
func (s *Server) handleCommands(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !s.ready(w) {
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxCommandBytes))
	if err != nil {
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return
	}

	cmd, oe := s.decodeCommand(body)
	if oe != nil {
		s.logger.WithError(oe).Debug("Invalid command document")
		writeJSON(w, http.StatusUnprocessableEntity, engine.Ack{Command: cmd.Type, Error: oe})
		return
	}

	ack, err := s.engine.Submit(r.Context(), cmd)
	if err != nil {
		if errors.Is(err, engine.ErrStopped) {
			http.Error(w, "engine stopped", http.StatusServiceUnavailable)
			return
		}
		http.Error(w, err.Error(), http.StatusRequestTimeout)
		return
	}
	writeJSON(w, ackStatus(ack), ack)
}

// decodeCommand validates and parses a command document.
func (s *Server) decodeCommand(body []byte) (command.Command, *oaerrors.OnAirError) {
	if s.validator != nil {
		if err := s.validator.ValidateJSON(body); err != nil {
			cmd, _ := command.Parse(body)
			return cmd, oaerrors.Wrap(err, oaerrors.ErrCodeInvalidCommand, "command failed schema validation").
				WithDetail("reason", err.Error())
		}
	}
	cmd, err := command.Parse(body)
	if err != nil {
		return cmd, oaerrors.Wrap(err, oaerrors.ErrCodeInvalidCommand, "malformed command").
			WithDetail("reason", err.Error())
	}
	return cmd, nil
}

func ackStatus(ack engine.Ack) int {
	switch {
	case ack.Error == nil:
		return http.StatusOK
	case ack.Error.Code.IsRejection():
		return http.StatusConflict
	}
	return http.StatusUnprocessableEntity
}

// handleGetPresets returns the saved configurations.
func (s *Server) handleGetPresets(w http.ResponseWriter, r *http.Request) {
	if !s.ready(w) {
		return
	}
	presets := s.engine.Store().State().SavedConfigs
	if presets == nil {
		presets = []models.Preset{}
	}
	writeJSON(w, http.StatusOK, presets)
}

// handleGetConfig returns the running configuration as JSON. The policy
// reflects the last reload.
func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	cfg := s.runningConfig
	s.mu.RUnlock()
	if cfg == nil {
		http.Error(w, "config not initialized", http.StatusServiceUnavailable)
		return
	}

	out := *cfg
	if s.engine != nil {
		out.Policy = s.engine.Policy()
	}
	writeJSON(w, http.StatusOK, out)
}

// sportInfo is one entry of /api/sports.
type sportInfo struct {
	ID     string `json:"id"`
	Active bool   `json:"active"`
}

// handleGetSports lists the sport templates. With ?id= it returns the
// template resolved against the base board instead.
func (s *Server) handleGetSports(w http.ResponseWriter, r *http.Request) {
	if id := r.URL.Query().Get("id"); id != "" {
		if !s.catalog.Has(id) {
			http.Error(w, "unknown sport "+id, http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, s.catalog.Load(id))
		return
	}

	active := ""
	if s.engine != nil {
		active = s.engine.Store().State().Scoreboard.SportID()
	}
	ids := s.catalog.Sports()
	out := make([]sportInfo, 0, len(ids))
	for _, id := range ids {
		out = append(out, sportInfo{ID: id, Active: id == active})
	}
	writeJSON(w, http.StatusOK, out)
}
