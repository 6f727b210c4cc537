// Package services defines the collaborators the daemon consults outside the
// dispatch loop: device discovery, text generation and stream probing.
package services

import (
	"context"
)

// Device is a capture device reported by discovery.
type Device struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// DeviceDiscovery enumerates the capture hardware available at setup.
type DeviceDiscovery interface {
	RequestPermissions(ctx context.Context) bool
	ListCameras(ctx context.Context) ([]Device, error)
	ListMicrophones(ctx context.Context) ([]Device, error)
}

// TextGenerator produces short broadcast copy from a prompt. Generate never
// fails; on error it returns GenerateFailedText.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) string
}

// StreamProbe connects to a stream destination.
type StreamProbe interface {
	Connect(ctx context.Context, destinationID string) ProbeResult
}

// ProbeResult is the outcome of a connect attempt.
type ProbeResult struct {
	OK      bool
	Viewers int
}

// GenerateFailedText is what a failed generation yields.
const GenerateFailedText = "Error generating title."
