package domain

import (
	"time"

	"github.com/google/uuid"
)

// AnswerData is the immutable audit record of one quiz-question answer event.
// Exactly one row is written per event, in the same transaction as the
// scheduling-state update; rows are never mutated or deleted and are the sole
// input for analytics.
type AnswerData struct {
	ID                 int64     `json:"id"`
	UserID             uuid.UUID `json:"user_id"`
	QuestionID         int64     `json:"question_id"`
	PromptAudioID      int64     `json:"prompt_audio_id"`
	CorrectChoiceID    int64     `json:"correct_choice_id"`
	AnsweredChoiceID   *int64    `json:"answered_choice_id,omitempty"` // nil when the question timed out unanswered
	ActiveAnswerTimeMs int       `json:"active_answer_time_ms"`
	FullAnswerTimeMs   int       `json:"full_answer_time_ms"`
	Correct            bool      `json:"correct"`
	AnsweredAt         time.Time `json:"answered_at"`
}

// WordData is the immutable audit record of one new-word exposure.
type WordData struct {
	ID           int64     `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	WordID       int64     `json:"word_id"`
	AudioTimes   int       `json:"audio_times"` // How many times the learner replayed the audio
	AnswerTimeMs int       `json:"answer_time_ms"`
	AnsweredAt   time.Time `json:"answered_at"`
}

// ExerciseData is the immutable audit record of one pronunciation-exercise
// round. Exercises review known words, so they do not touch the new-word
// counters.
type ExerciseData struct {
	ID                 int64     `json:"id"`
	UserID             uuid.UUID `json:"user_id"`
	WordID             int64     `json:"word_id"`
	AudioTimes         int       `json:"audio_times"`
	ActiveAnswerTimeMs int       `json:"active_answer_time_ms"`
	FullAnswerTimeMs   int       `json:"full_answer_time_ms"`
	AnswerLevel        int       `json:"answer_level"` // Learner's self-assessment of the round
	AnsweredAt         time.Time `json:"answered_at"`
}
