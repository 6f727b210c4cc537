package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	// Policy rejections. State is left untouched.
	ErrCodeRejectedWhileLive ErrorCode = "REJECTED_WHILE_LIVE"
	ErrCodeMicLocked         ErrorCode = "MIC_LOCKED"

	// Command input errors
	ErrCodeInvalidPayload ErrorCode = "INVALID_PAYLOAD"
	ErrCodeInvalidCommand ErrorCode = "INVALID_COMMAND"
	ErrCodeUnknownAction  ErrorCode = "UNKNOWN_ACTION"

	// Declarative data errors
	ErrCodeTemplateInvalid ErrorCode = "TEMPLATE_INVALID"

	// Configuration errors
	ErrCodeConfigNotFound   ErrorCode = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid    ErrorCode = "CONFIG_INVALID"
	ErrCodeConfigValidation ErrorCode = "CONFIG_VALIDATION"
	ErrCodeConfigParse      ErrorCode = "CONFIG_PARSE"

	// Daemon errors
	ErrCodeDaemonNotRunning     ErrorCode = "DAEMON_NOT_RUNNING"
	ErrCodeDaemonAlreadyRunning ErrorCode = "DAEMON_ALREADY_RUNNING"

	// Collaborator errors
	ErrCodeStorage         ErrorCode = "STORAGE"
	ErrCodeExternalService ErrorCode = "EXTERNAL_SERVICE"

	// General errors
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
)

// OnAirError represents a structured error with context
type OnAirError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *OnAirError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *OnAirError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *OnAirError) WithDetail(key string, value interface{}) *OnAirError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ToJSON converts the error to JSON
func (e *OnAirError) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// IsRejection reports whether the code belongs to the policy rejection family.
func (c ErrorCode) IsRejection() bool {
	return c == ErrCodeRejectedWhileLive || c == ErrCodeMicLocked
}

// New creates a new OnAirError
func New(code ErrorCode, message string) *OnAirError {
	return &OnAirError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with an OnAirError
func Wrap(err error, code ErrorCode, message string) *OnAirError {
	return &OnAirError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Is checks if an error carries a specific code
func Is(err error, code ErrorCode) bool {
	return GetCode(err) == code && code != ""
}

// GetCode returns the code of the first OnAirError in err's chain.
func GetCode(err error) ErrorCode {
	var oe *OnAirError
	if stderrors.As(err, &oe) {
		return oe.Code
	}
	return ""
}
