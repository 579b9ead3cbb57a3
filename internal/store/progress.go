package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/kotoba-app/kotoba-api/internal/domain"
)

// ProgressStore defines the interface for per-user learning state: question
// scheduling rows, skill levels, answer audit trails and the new-word
// counters.
type ProgressStore interface {
	// GetQuestionData retrieves the user's scheduling state for a question.
	// Returns ErrQuestionDataNotFound if the user has never answered it.
	GetQuestionData(ctx context.Context, userID uuid.UUID, questionID int64) (*domain.QuestionData, error)

	// CreateQuestionDataIfAbsent inserts the scheduling row only when the
	// user has no state for the question yet. It reports whether the row was
	// inserted; false means a concurrent writer got there first and the
	// caller should re-read and take the already-tracked path.
	CreateQuestionDataIfAbsent(ctx context.Context, data *domain.QuestionData) (bool, error)

	// UpdateQuestionData overwrites the scheduling row for the question.
	// Returns ErrQuestionDataNotFound if no row exists.
	UpdateQuestionData(ctx context.Context, data *domain.QuestionData) error

	// BumpSkill atomically increments the user's level for the given skill
	// nugget by delta, creating the row at level delta if absent, and
	// returns the resulting level.
	BumpSkill(ctx context.Context, userID uuid.UUID, nuggetID int64, delta int) (int, error)

	// SkillLevel returns the user's level for the nugget, 0 if no row exists.
	SkillLevel(ctx context.Context, userID uuid.UUID, nuggetID int64) (int, error)

	// InsertAnswerData appends a quiz-answer audit row.
	InsertAnswerData(ctx context.Context, data *domain.AnswerData) error

	// InsertWordData appends a word-exposure audit row.
	InsertWordData(ctx context.Context, data *domain.WordData) error

	// InsertExerciseData appends a pronunciation-exercise audit row.
	InsertExerciseData(ctx context.Context, data *domain.ExerciseData) error

	// GetMetrics retrieves the user's counters, creating a zeroed row when
	// none exists yet.
	GetMetrics(ctx context.Context, userID uuid.UUID) (*domain.UserMetrics, error)

	// IncrementWordCounters adds one to both new_words_today and
	// new_words_since_break for the user.
	IncrementWordCounters(ctx context.Context, userID uuid.UUID) error

	// ResetDailyCounters zeroes new_words_today for every user whose row was
	// last updated before cutoff. Returns the number of rows reset.
	ResetDailyCounters(ctx context.Context, cutoff time.Time) (int64, error)

	// ResetBreakCounters zeroes new_words_since_break for every user idle
	// since before cutoff. Returns the number of rows reset.
	ResetBreakCounters(ctx context.Context, cutoff time.Time) (int64, error)

	// WithTx returns a ProgressStore bound to the given transaction.
	WithTx(tx *sql.Tx) ProgressStore
}
