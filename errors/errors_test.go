package errors

import (
	"fmt"
	"testing"
)

func TestOnAirError(t *testing.T) {
	// Test basic error creation
	err := New(ErrCodeNotFound, "source not found")
	if err.Code != ErrCodeNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeNotFound, err.Code)
	}

	// Test error wrapping
	cause := fmt.Errorf("underlying error")
	wrapped := Wrap(cause, ErrCodeStorage, "save failed")

	if wrapped.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}

	if !Is(wrapped, ErrCodeStorage) {
		t.Error("Is should return true for matching code")
	}

	if Is(wrapped, ErrCodeNotFound) {
		t.Error("Is should return false for non-matching code")
	}

	outer := fmt.Errorf("dispatch: %w", wrapped)
	if GetCode(outer) != ErrCodeStorage {
		t.Errorf("GetCode should unwrap fmt errors, got %q", GetCode(outer))
	}

	detailed := err.WithDetail("source", "cam-9").WithDetail("attempt", 2)
	if detailed.Details["source"] != "cam-9" {
		t.Error("WithDetail should add details")
	}
}

func TestErrorConstructors(t *testing.T) {
	err := RejectedWhileLive("SOURCE_ADD")
	if err.Code != ErrCodeRejectedWhileLive {
		t.Errorf("expected code %s, got %s", ErrCodeRejectedWhileLive, err.Code)
	}
	if err.Details["command"] != "SOURCE_ADD" {
		t.Error("RejectedWhileLive should include command detail")
	}
	if !err.Code.IsRejection() {
		t.Error("live rejection should be a policy rejection")
	}

	err = MicLocked("mic-1")
	if !err.Code.IsRejection() || err.Details["channel"] != "mic-1" {
		t.Error("MicLocked should be a rejection carrying the channel")
	}

	err = InvalidPayload("AUDIO_SET_PAN", fmt.Errorf("bad"))
	if err.Code.IsRejection() {
		t.Error("invalid payloads are not policy rejections")
	}

	if GetCode(nil) != "" {
		t.Error("nil error has no code")
	}
}
