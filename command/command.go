// Package command defines the closed vocabulary of commands accepted by the
// production core. A command is a serializable {type, payload} record.
package command

import (
	"encoding/json"
	"fmt"
)

// Type names a command.
type Type string

// Command is one request to change production state.
type Command struct {
	Type    Type `json:"type"`
	Payload any  `json:"payload,omitempty"`
}

// New builds a command.
func New(t Type, payload any) Command {
	return Command{Type: t, Payload: payload}
}

// Bare builds a command without payload.
func Bare(t Type) Command {
	return Command{Type: t}
}

// String implements fmt.Stringer.
func (c Command) String() string {
	return string(c.Type)
}

// Decode extracts the payload of c as T. Payloads built in-process are
// returned as is; payloads decoded from the wire (maps, float64) go through
// a JSON round trip.
func Decode[T any](c Command) (T, error) {
	var out T
	if v, ok := c.Payload.(T); ok {
		return v, nil
	}
	if p, ok := c.Payload.(*T); ok && p != nil {
		return *p, nil
	}
	if c.Payload == nil {
		return out, fmt.Errorf("%s requires a payload", c.Type)
	}
	data, err := json.Marshal(c.Payload)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, err
	}
	return out, nil
}

// Parse decodes a wire command.
func Parse(data []byte) (Command, error) {
	var c Command
	if err := json.Unmarshal(data, &c); err != nil {
		return c, err
	}
	if c.Type == "" {
		return c, fmt.Errorf("command type is required")
	}
	return c, nil
}
