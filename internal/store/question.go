package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/kotoba-app/kotoba-api/internal/domain"
)

// DueQuestion pairs a quiz question with the user's scheduling state that
// made it eligible.
type DueQuestion struct {
	Question domain.QuizQuestion
	Data     domain.QuestionData
}

// QuestionStore defines the interface for quiz-question persistence.
type QuestionStore interface {
	// GetByID retrieves a question by its unique ID.
	// Returns ErrQuestionNotFound if the question does not exist.
	GetByID(ctx context.Context, id int64) (*domain.QuizQuestion, error)

	// GetWithChoices retrieves a question together with all of its answer
	// choices, ordered by choice ID. Returns ErrQuestionNotFound if the
	// question does not exist.
	GetWithChoices(ctx context.Context, id int64) (*domain.QuizQuestion, []domain.AnswerChoice, error)

	// ListDue retrieves up to limit published questions the user has
	// answered before, ordered by due date ascending. When includeFuture is
	// false only questions with a due date at or before now are returned;
	// when true the window extends into the future, which the selection
	// policy uses for peeking.
	ListDue(
		ctx context.Context,
		userID uuid.UUID,
		now time.Time,
		includeFuture bool,
		limit int,
	) ([]DueQuestion, error)

	// ListUnseen retrieves up to limit published questions the user has
	// never answered whose skill nugget has a level strictly greater than
	// minSkillLevel for the user, ordered by question ID ascending. The
	// threshold is policy owned by the caller, not by the store.
	ListUnseen(ctx context.Context, userID uuid.UUID, minSkillLevel, limit int) ([]domain.QuizQuestion, error)

	// Create saves a new question and its answer choices atomically.
	// Must run within a transaction via WithTx.
	Create(ctx context.Context, question *domain.QuizQuestion, choices []domain.AnswerChoice) (*domain.QuizQuestion, error)

	// Update modifies an existing question's editable fields.
	// Returns ErrQuestionNotFound if the question does not exist.
	Update(ctx context.Context, question *domain.QuizQuestion) error

	// UpdateChoice modifies an existing answer choice.
	// Returns ErrNotFound if the choice does not exist.
	UpdateChoice(ctx context.Context, choice *domain.AnswerChoice) error

	// SetPublished flips a question's published flag.
	// Returns ErrQuestionNotFound if the question does not exist.
	SetPublished(ctx context.Context, id int64, published bool) error

	// WithTx returns a QuestionStore bound to the given transaction.
	WithTx(tx *sql.Tx) QuestionStore
}
