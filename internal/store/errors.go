package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store. This is the generic version of the entity-specific not-found
	// errors below.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate of
	// a unique entity (e.g., a user with the same email).
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for specific validation details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrInconsistent is returned when the database contents contradict
	// themselves: a referenced question, choice or audio bundle is missing,
	// or a loaded bundle has no recordings. It signals corrupted or
	// out-of-sync state and is always fatal to the current request, never
	// silently skipped.
	ErrInconsistent = errors.New("database contents are inconsistent")

	// Entity-specific "not found" errors

	// ErrUserNotFound indicates that the requested user does not exist.
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrQuestionNotFound indicates that the requested quiz question does not exist.
	ErrQuestionNotFound = fmt.Errorf("%w: quiz question", ErrNotFound)

	// ErrWordNotFound indicates that the requested word does not exist.
	ErrWordNotFound = fmt.Errorf("%w: word", ErrNotFound)

	// ErrAudioFileNotFound indicates that the requested audio file does not exist.
	ErrAudioFileNotFound = fmt.Errorf("%w: audio file", ErrNotFound)

	// ErrQuestionDataNotFound indicates the user has no scheduling state for
	// the question, i.e. the question is unseen.
	ErrQuestionDataNotFound = fmt.Errorf("%w: question data", ErrNotFound)

	// ErrMetricsNotFound indicates that the user has no metrics row.
	ErrMetricsNotFound = fmt.Errorf("%w: user metrics", ErrNotFound)

	// Entity-specific "duplicate" errors

	// ErrEmailExists indicates that a user with the given email already exists.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
