package workspace

import (
	"errors"
	"fmt"
)

var (
	ErrGenerationInFlight = errors.New("generation already in progress")
	ErrWorkspaceClosed    = errors.New("workspace closed")
)

// MsgFillAllFields is shown when a required credential field is missing.
const MsgFillAllFields = "Please fill in all fields"

// ValidationError is recoverable and shown inline next to the offending input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IndexError reports a feature slot operation outside the current sequence.
type IndexError struct {
	Op    string
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: index %d out of range [0,%d)", e.Op, e.Index, e.Len)
}

type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// AuthenticationError wraps a rejection from the authentication collaborator.
type AuthenticationError struct {
	Err error
}

func (e *AuthenticationError) Error() string { return e.Err.Error() }
func (e *AuthenticationError) Unwrap() error { return e.Err }

// GenerationFailure is the outcome of a generation call that did not produce a usable result set.
type GenerationFailure struct {
	Err error
}

func (e *GenerationFailure) Error() string { return "generation failed: " + e.Err.Error() }
func (e *GenerationFailure) Unwrap() error { return e.Err }

type ClipboardError struct {
	Err error
}

func (e *ClipboardError) Error() string { return "clipboard write failed: " + e.Err.Error() }
func (e *ClipboardError) Unwrap() error { return e.Err }
