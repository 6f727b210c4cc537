// Package store provides the in-memory state store for the onair daemon.
package store

import (
	"github.com/grovetools/onair/command"
	oaerrors "github.com/grovetools/onair/errors"
	"github.com/grovetools/onair/pkg/models"
)

// Snapshot is a published state and its version.
type Snapshot struct {
	Version uint64       `json:"version"`
	State   models.State `json:"state"`
}

// UpdateType defines what kind of change an update carries.
type UpdateType string

const (
	UpdateState        UpdateType = "state"
	UpdateRejected     UpdateType = "rejected"
	UpdateConfigReload UpdateType = "config_reload"
)

// Update is one notification to subscribers.
type Update struct {
	Type    UpdateType
	Version uint64
	Command command.Type
	// State is set for UpdateState.
	State *models.State
	// Err is set for UpdateRejected.
	Err *oaerrors.OnAirError
	// Source names the component behind the update (engine, config).
	Source  string
	Payload interface{}
}
