package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Progress-state validation errors
var (
	// ErrProgressUserEmpty is returned when a progress row has no user ID.
	ErrProgressUserEmpty = errors.New("progress user ID cannot be empty")

	// ErrNegativeStreak is returned when a correct streak is negative.
	ErrNegativeStreak = errors.New("correct streak must be greater than or equal to 0")

	// ErrNegativeDelay is returned when a due delay is negative.
	ErrNegativeDelay = errors.New("due delay must be greater than or equal to 0")

	// ErrNegativeSkillLevel is returned when a skill level is negative.
	ErrNegativeSkillLevel = errors.New("skill level must be greater than or equal to 0")
)

// QuestionData tracks a user's scheduling state for a single quiz question.
// Absence of a row means the question has never been answered by the user.
// A row is created on the first answer and mutated on every subsequent one;
// it is never deleted.
type QuestionData struct {
	UserID        uuid.UUID `json:"user_id"`
	QuestionID    int64     `json:"question_id"`
	CorrectStreak int       `json:"correct_streak"` // Consecutive correct answers, reset on any miss
	DueDelay      int       `json:"due_delay"`      // Current repetition interval in seconds
	DueDate       time.Time `json:"due_date"`       // When the question becomes eligible again
}

// Validate checks if the QuestionData has valid data.
func (d *QuestionData) Validate() error {
	if d.UserID == uuid.Nil {
		return ErrProgressUserEmpty
	}

	if d.CorrectStreak < 0 {
		return ErrNegativeStreak
	}

	if d.DueDelay < 0 {
		return ErrNegativeDelay
	}

	return nil
}

// SkillData tracks a user's mastery level for a single skill nugget.
// Levels only ever increase; skill decay is deliberately not modelled.
type SkillData struct {
	UserID      uuid.UUID `json:"user_id"`
	SkillNugget int64     `json:"skill_nugget"`
	SkillLevel  int       `json:"skill_level"`
}

// Validate checks if the SkillData has valid data.
func (d *SkillData) Validate() error {
	if d.UserID == uuid.Nil {
		return ErrProgressUserEmpty
	}

	if d.SkillLevel < 0 {
		return ErrNegativeSkillLevel
	}

	return nil
}

// UserMetrics carries the per-user new-word exposure counters that gate
// new-word selection. The engine only increments them; resets (new calendar
// day, break taken) are owned by the background scheduler.
type UserMetrics struct {
	UserID             uuid.UUID `json:"user_id"`
	NewWordsToday      int       `json:"new_words_today"`
	NewWordsSinceBreak int       `json:"new_words_since_break"`
}
