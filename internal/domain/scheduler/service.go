// Package scheduler implements the due-date state machine that drives
// question repetition: given a user's prior scheduling state for a question
// (or none) and a correctness verdict, it computes the next
// (streak, delay, due date) and the skill-level bonus the transition awards.
//
// The machine has two states. A question with no QuestionData row is Unseen;
// the first answer creates the row and moves it to Tracked, where it stays for
// the lifetime of the question. All calculations are pure; persistence is the
// caller's concern.
package scheduler

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/kotoba-app/kotoba-api/internal/domain"
)

// Common errors
var (
	ErrEmptyUser     = errors.New("user ID cannot be empty")
	ErrEmptyQuestion = errors.New("question ID cannot be empty")
	ErrStateMismatch = errors.New("previous state belongs to a different user or question")
)

// Service defines the interface for due-date scheduling operations.
type Service interface {
	// Advance computes the state following one answer event. prev is the
	// user's current QuestionData for the question, or nil when the question
	// is unseen. It returns the next state together with the skill-level
	// bonus the transition awards (0 when none). prev is never mutated.
	Advance(
		userID uuid.UUID,
		questionID int64,
		prev *domain.QuestionData,
		correct bool,
		now time.Time,
	) (*domain.QuestionData, int, error)
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new scheduling service with default parameters.
func NewDefaultService() Service {
	return &defaultService{params: NewDefaultParams()}
}

// NewServiceWithParams creates a new scheduling service with custom parameters.
func NewServiceWithParams(params *Params) Service {
	return &defaultService{params: params}
}

// Advance implements the Service interface.
func (s *defaultService) Advance(
	userID uuid.UUID,
	questionID int64,
	prev *domain.QuestionData,
	correct bool,
	now time.Time,
) (*domain.QuestionData, int, error) {
	if userID == uuid.Nil {
		return nil, 0, ErrEmptyUser
	}

	if questionID == 0 {
		return nil, 0, ErrEmptyQuestion
	}

	if prev != nil {
		if err := prev.Validate(); err != nil {
			return nil, 0, err
		}
		if prev.UserID != userID || prev.QuestionID != questionID {
			return nil, 0, ErrStateMismatch
		}
	}

	next, bonus := advance(userID, questionID, prev, correct, now, s.params)
	return next, bonus, nil
}
