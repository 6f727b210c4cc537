package cli

import (
	"fmt"
	"io"

	"github.com/grovetools/onair/errors"
	"github.com/grovetools/onair/tui/theme"
)

// ErrorHandler provides user-friendly error messages
type ErrorHandler struct {
	Verbose bool
	Out     io.Writer
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(out io.Writer, verbose bool) *ErrorHandler {
	return &ErrorHandler{Verbose: verbose, Out: out}
}

// Handle prints a hint for well-known error codes and returns err unchanged.
func (h *ErrorHandler) Handle(err error) error {
	if err == nil {
		return nil
	}
	fail := theme.DefaultTheme.Error.Render(theme.IconError)

	switch errors.GetCode(err) {
	case errors.ErrCodeDaemonNotRunning:
		fmt.Fprintf(h.Out, "%s The onair daemon is not running. Start it with 'onair daemon start'.\n", fail)

	case errors.ErrCodeDaemonAlreadyRunning:
		fmt.Fprintf(h.Out, "%s %v\nStop it first with 'onair daemon stop'.\n", fail, err)

	case errors.ErrCodeConfigNotFound:
		fmt.Fprintf(h.Out, "%s Configuration not found. Create onair.yml or pass --config.\n", fail)

	case errors.ErrCodeConfigValidation, errors.ErrCodeConfigParse, errors.ErrCodeConfigInvalid:
		fmt.Fprintf(h.Out, "%s Invalid configuration: %v\n", fail, err)
		fmt.Fprintf(h.Out, "Check it against 'onair schema config'.\n")

	case errors.ErrCodeRejectedWhileLive:
		fmt.Fprintf(h.Out, "%s Rejected while on air. Go off air before changing the rig.\n", fail)

	case errors.ErrCodeMicLocked:
		fmt.Fprintf(h.Out, "%s The protected mic is locked. Toggle the lock with CONSOLE_TOGGLE_MIC_LOCK.\n", fail)

	case errors.ErrCodeInvalidCommand, errors.ErrCodeInvalidPayload:
		fmt.Fprintf(h.Out, "%s %v\nList command payloads with 'onair schema commands'.\n", fail, err)

	default:
		fmt.Fprintf(h.Out, "%s Error: %v\n", fail, err)
	}

	if h.Verbose {
		if oaErr, ok := err.(*errors.OnAirError); ok {
			fmt.Fprintf(h.Out, "\nError details:\n%s\n", oaErr.ToJSON())
		}
	}
	return err
}
