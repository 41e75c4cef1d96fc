package analyses

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates no analysis with the given id belongs to the user.
var ErrNotFound = errors.New("analysis not found")

// ValidationError rejects a request before any credit is touched.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// MalformedOutputError indicates the model reply could not be turned into a
// result. Raw carries the reply for diagnostics; it is never persisted.
type MalformedOutputError struct {
	Raw string
	Err error
}

func (e *MalformedOutputError) Error() string {
	return fmt.Sprintf("malformed model output: %v", e.Err)
}

func (e *MalformedOutputError) Unwrap() error { return e.Err }

// ErrPersistence wraps storage failures after a successful model reply. The
// user is not charged when this is returned.
var ErrPersistence = errors.New("failed to persist analysis")
