// Package review implements the core of the study loop: choosing the next
// card to serve and processing answer events against the scheduling state.
package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/kotoba-app/kotoba-api/internal/domain"
)

// Service drives a user's study session.
type Service interface {
	// NextCard chooses the card the user should see next. Due quiz questions
	// come first, then quiz questions never asked whose skill is warm
	// enough, then new words within budget, then a peek at the earliest
	// future question. A nil card with a nil error means the user is done
	// for now.
	NextCard(ctx context.Context, userID uuid.UUID) (domain.Card, error)

	// Submit processes one answer event: it appends the audit row, advances
	// the scheduling state and skill levels where the event calls for it,
	// and returns the card to serve next. A missed quiz question is served
	// again immediately with the same right answer.
	Submit(ctx context.Context, userID uuid.UUID, answered domain.Answered) (domain.Card, error)
}

// Common error types for the review Service
var (
	// ErrQuestionNotFound indicates the answered question does not exist.
	ErrQuestionNotFound = errors.New("question not found")

	// ErrWordNotFound indicates the answered word does not exist.
	ErrWordNotFound = errors.New("word not found")

	// ErrInvalidAnswer indicates a malformed answer event, such as an
	// unknown event kind or a non-positive question ID.
	ErrInvalidAnswer = errors.New("invalid answer")
)

// ServiceError wraps errors from the review service with the operation that
// failed, so consumers can differentiate failures with errors.As instead of
// string matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "next_card", "submit")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewSubmitError returns a new ServiceError for the submit operation.
func NewSubmitError(message string, err error) *ServiceError {
	return &ServiceError{
		Operation: "submit",
		Message:   message,
		Err:       err,
	}
}

// NewNextCardError returns a new ServiceError for the next_card operation.
func NewNextCardError(message string, err error) *ServiceError {
	return &ServiceError{
		Operation: "next_card",
		Message:   message,
		Err:       err,
	}
}
