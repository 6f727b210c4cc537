package errors

import (
	"fmt"
)

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *OnAirError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *OnAirError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// RejectedWhileLive is returned when a structural command arrives during a broadcast.
func RejectedWhileLive(commandType string) *OnAirError {
	return New(ErrCodeRejectedWhileLive,
		fmt.Sprintf("%s is not allowed while on air", commandType)).
		WithDetail("command", commandType)
}

// MicLocked is returned when the protected channel would be muted.
func MicLocked(channelID string) *OnAirError {
	return New(ErrCodeMicLocked,
		fmt.Sprintf("channel '%s' is protected by mic lock", channelID)).
		WithDetail("channel", channelID)
}

// InvalidPayload wraps a payload decoding failure for a command type.
func InvalidPayload(commandType string, err error) *OnAirError {
	return Wrap(err, ErrCodeInvalidPayload,
		fmt.Sprintf("invalid payload for %s", commandType)).
		WithDetail("command", commandType)
}

// UnknownAction creates a scoreboard action lookup error
func UnknownAction(sportID, actionID string) *OnAirError {
	return New(ErrCodeUnknownAction,
		fmt.Sprintf("sport '%s' has no action '%s'", sportID, actionID)).
		WithDetail("sport", sportID).
		WithDetail("action", actionID)
}

// DaemonNotRunning reports a missing or stale daemon socket.
func DaemonNotRunning(socket string) *OnAirError {
	return New(ErrCodeDaemonNotRunning, "onair daemon is not running").
		WithDetail("socket", socket)
}

// ExternalService wraps a collaborator failure (text generation, devices).
func ExternalService(service string, err error) *OnAirError {
	return Wrap(err, ErrCodeExternalService, fmt.Sprintf("%s failed", service)).
		WithDetail("service", service)
}
