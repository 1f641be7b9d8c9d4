package interview

import (
	"errors"
	"fmt"

	"github.com/abhisek/intervue/internal/llm"
)

var (
	// ErrSessionNotFound means no persisted session has the given ID.
	ErrSessionNotFound = errors.New("interview session not found")

	// ErrSessionNotActive means the session has no live decision state:
	// it was completed, abandoned or lost its state.
	ErrSessionNotActive = errors.New("interview session is not active")

	// ErrSessionNotComplete means finalize was called before the last
	// answer was submitted.
	ErrSessionNotComplete = errors.New("interview session is not complete yet")
)

// ValidationError rejects a malformed request before any state is touched.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// GenerationError wraps a failed call to the generation capability.
type GenerationError struct {
	Op  string
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// UserMessage returns the message to show the candidate.
func (e *GenerationError) UserMessage() string {
	var unavailable *llm.ErrServiceUnavailable
	if errors.As(e.Err, &unavailable) {
		return llm.ServiceUnavailableMessage
	}
	return "Failed to generate the interview content. Please try again."
}

// PersistenceError wraps a failed store read or write.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
