package core

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSession is returned when a caller names a role outside the
	// supported set. Nothing is mutated.
	ErrInvalidSession = errors.New("invalid session")

	// ErrGenerationFailure matches every *GenerationError via errors.Is.
	ErrGenerationFailure = errors.New("generation failure")

	// ErrSessionNotFound is returned by the editor when a role has no history.
	ErrSessionNotFound = errors.New("session not found")

	// ErrNoGeneratedMessage is returned by the editor when a role's history
	// holds no generated message.
	ErrNoGeneratedMessage = errors.New("no generated message")
)

// GenerationError wraps a failed external generation call for a role.
type GenerationError struct {
	Role Role
	Err  error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed for %s: %v", e.Role, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *GenerationError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrGenerationFailure) hold for every GenerationError.
func (e *GenerationError) Is(target error) bool { return target == ErrGenerationFailure }
