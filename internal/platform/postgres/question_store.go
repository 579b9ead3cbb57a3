package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kotoba-app/kotoba-api/internal/domain"
	"github.com/kotoba-app/kotoba-api/internal/platform/logger"
	"github.com/kotoba-app/kotoba-api/internal/store"
)

// PostgresQuestionStore implements the store.QuestionStore interface
// using a PostgreSQL database as the storage backend.
type PostgresQuestionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresQuestionStore creates a new PostgreSQL implementation of the
// QuestionStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresQuestionStore(db store.DBTX, logger *slog.Logger) *PostgresQuestionStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresQuestionStore{
		db:     db,
		logger: logger.With(slog.String("component", "question_store")),
	}
}

// Ensure PostgresQuestionStore implements store.QuestionStore interface
var _ store.QuestionStore = (*PostgresQuestionStore)(nil)

// WithTx implements store.QuestionStore.WithTx
func (s *PostgresQuestionStore) WithTx(tx *sql.Tx) store.QuestionStore {
	return &PostgresQuestionStore{
		db:     tx,
		logger: s.logger,
	}
}

// GetByID implements store.QuestionStore.GetByID
func (s *PostgresQuestionStore) GetByID(ctx context.Context, id int64) (*domain.QuizQuestion, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, explanation, text, skill_nugget_id, published
		FROM quiz_questions
		WHERE id = $1
	`

	var q domain.QuizQuestion
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&q.ID,
		&q.Name,
		&q.Explanation,
		&q.Text,
		&q.SkillID,
		&q.Published,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("question not found", slog.Int64("question_id", id))
			return nil, store.ErrQuestionNotFound
		}
		log.Error("failed to get question by ID",
			slog.String("error", err.Error()),
			slog.Int64("question_id", id))
		return nil, MapError(err)
	}

	return &q, nil
}

// GetWithChoices implements store.QuestionStore.GetWithChoices
func (s *PostgresQuestionStore) GetWithChoices(
	ctx context.Context,
	id int64,
) (*domain.QuizQuestion, []domain.AnswerChoice, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	question, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	query := `
		SELECT id, question_id, answer_text, answer_audio_bundle_id, prompt_audio_bundle_id
		FROM question_answers
		WHERE question_id = $1
		ORDER BY id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, id)
	if err != nil {
		log.Error("failed to query answer choices",
			slog.String("error", err.Error()),
			slog.Int64("question_id", id))
		return nil, nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var choices []domain.AnswerChoice
	for rows.Next() {
		var c domain.AnswerChoice
		err := rows.Scan(
			&c.ID,
			&c.QuestionID,
			&c.Text,
			&c.AnswerAudioBundleID,
			&c.PromptAudioBundleID,
		)
		if err != nil {
			log.Error("failed to scan answer choice row",
				slog.String("error", err.Error()))
			return nil, nil, MapError(err)
		}
		choices = append(choices, c)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, nil, MapError(err)
	}

	if choices == nil {
		choices = []domain.AnswerChoice{}
	}

	return question, choices, nil
}

// ListDue implements store.QuestionStore.ListDue
func (s *PostgresQuestionStore) ListDue(
	ctx context.Context,
	userID uuid.UUID,
	now time.Time,
	includeFuture bool,
	limit int,
) ([]store.DueQuestion, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT q.id, q.name, q.explanation, q.text, q.skill_nugget_id, q.published,
			qd.user_id, qd.question_id, qd.correct_streak, qd.due_delay, qd.due_date
		FROM quiz_questions q
		JOIN question_data qd ON qd.question_id = q.id
		WHERE qd.user_id = $1
			AND q.published = TRUE
			AND ($2 OR qd.due_date <= $3)
		ORDER BY qd.due_date ASC
		LIMIT $4
	`

	rows, err := s.db.QueryContext(ctx, query, userID, includeFuture, now, limit)
	if err != nil {
		log.Error("failed to query due questions",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var due []store.DueQuestion
	for rows.Next() {
		var dq store.DueQuestion
		err := rows.Scan(
			&dq.Question.ID,
			&dq.Question.Name,
			&dq.Question.Explanation,
			&dq.Question.Text,
			&dq.Question.SkillID,
			&dq.Question.Published,
			&dq.Data.UserID,
			&dq.Data.QuestionID,
			&dq.Data.CorrectStreak,
			&dq.Data.DueDelay,
			&dq.Data.DueDate,
		)
		if err != nil {
			log.Error("failed to scan due question row",
				slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		due = append(due, dq)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	if due == nil {
		due = []store.DueQuestion{}
	}

	log.Debug("listed due questions",
		slog.String("user_id", userID.String()),
		slog.Bool("include_future", includeFuture),
		slog.Int("count", len(due)))
	return due, nil
}

// ListUnseen implements store.QuestionStore.ListUnseen
func (s *PostgresQuestionStore) ListUnseen(
	ctx context.Context,
	userID uuid.UUID,
	minSkillLevel, limit int,
) ([]domain.QuizQuestion, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT q.id, q.name, q.explanation, q.text, q.skill_nugget_id, q.published
		FROM quiz_questions q
		JOIN skill_data sd ON sd.skill_nugget_id = q.skill_nugget_id AND sd.user_id = $1
		WHERE q.published = TRUE
			AND sd.skill_level > $2
			AND NOT EXISTS (
				SELECT 1 FROM question_data qd
				WHERE qd.user_id = $1 AND qd.question_id = q.id
			)
		ORDER BY q.id ASC
		LIMIT $3
	`

	rows, err := s.db.QueryContext(ctx, query, userID, minSkillLevel, limit)
	if err != nil {
		log.Error("failed to query unseen questions",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var questions []domain.QuizQuestion
	for rows.Next() {
		var q domain.QuizQuestion
		err := rows.Scan(&q.ID, &q.Name, &q.Explanation, &q.Text, &q.SkillID, &q.Published)
		if err != nil {
			log.Error("failed to scan question row",
				slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		questions = append(questions, q)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	if questions == nil {
		questions = []domain.QuizQuestion{}
	}

	log.Debug("listed unseen questions",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(questions)))
	return questions, nil
}

// Create implements store.QuestionStore.Create
// It saves the question and its answer choices in order. Callers run it
// inside a transaction via WithTx so a choice failure rolls back the question.
func (s *PostgresQuestionStore) Create(
	ctx context.Context,
	question *domain.QuizQuestion,
	choices []domain.AnswerChoice,
) (*domain.QuizQuestion, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := question.Validate(); err != nil {
		log.Warn("question validation failed during create",
			slog.String("error", err.Error()),
			slog.String("name", question.Name))
		return nil, err
	}

	query := `
		INSERT INTO quiz_questions (name, explanation, text, skill_nugget_id, published)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := s.db.QueryRowContext(
		ctx,
		query,
		question.Name,
		question.Explanation,
		question.Text,
		question.SkillID,
		question.Published,
	).Scan(&question.ID)
	if err != nil {
		log.Error("failed to create question",
			slog.String("error", err.Error()),
			slog.String("name", question.Name))
		return nil, MapError(err)
	}

	choiceQuery := `
		INSERT INTO question_answers (question_id, answer_text, answer_audio_bundle_id, prompt_audio_bundle_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	for i := range choices {
		choices[i].QuestionID = question.ID
		if err := choices[i].Validate(); err != nil {
			log.Warn("answer choice validation failed during create",
				slog.String("error", err.Error()),
				slog.Int64("question_id", question.ID))
			return nil, err
		}
		err := s.db.QueryRowContext(
			ctx,
			choiceQuery,
			choices[i].QuestionID,
			choices[i].Text,
			choices[i].AnswerAudioBundleID,
			choices[i].PromptAudioBundleID,
		).Scan(&choices[i].ID)
		if err != nil {
			log.Error("failed to create answer choice",
				slog.String("error", err.Error()),
				slog.Int64("question_id", question.ID))
			return nil, MapError(err)
		}
	}

	log.Info("question created successfully",
		slog.Int64("question_id", question.ID),
		slog.String("name", question.Name),
		slog.Int("choices", len(choices)))
	return question, nil
}

// Update implements store.QuestionStore.Update
func (s *PostgresQuestionStore) Update(ctx context.Context, question *domain.QuizQuestion) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := question.Validate(); err != nil {
		log.Warn("question validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("question_id", question.ID))
		return err
	}

	query := `
		UPDATE quiz_questions
		SET name = $1, explanation = $2, text = $3, skill_nugget_id = $4, published = $5
		WHERE id = $6
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		question.Name,
		question.Explanation,
		question.Text,
		question.SkillID,
		question.Published,
		question.ID,
	)
	if err != nil {
		log.Error("failed to update question",
			slog.String("error", err.Error()),
			slog.Int64("question_id", question.ID))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "quiz question"); err != nil {
		return store.ErrQuestionNotFound
	}

	log.Info("question updated successfully",
		slog.Int64("question_id", question.ID))
	return nil
}

// UpdateChoice implements store.QuestionStore.UpdateChoice
func (s *PostgresQuestionStore) UpdateChoice(ctx context.Context, choice *domain.AnswerChoice) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := choice.Validate(); err != nil {
		log.Warn("answer choice validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("choice_id", choice.ID))
		return err
	}

	query := `
		UPDATE question_answers
		SET answer_text = $1, answer_audio_bundle_id = $2, prompt_audio_bundle_id = $3
		WHERE id = $4
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		choice.Text,
		choice.AnswerAudioBundleID,
		choice.PromptAudioBundleID,
		choice.ID,
	)
	if err != nil {
		log.Error("failed to update answer choice",
			slog.String("error", err.Error()),
			slog.Int64("choice_id", choice.ID))
		return MapError(err)
	}

	return CheckRowsAffected(result, "answer choice")
}

// SetPublished implements store.QuestionStore.SetPublished
func (s *PostgresQuestionStore) SetPublished(ctx context.Context, id int64, published bool) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE quiz_questions
		SET published = $1
		WHERE id = $2
	`
	result, err := s.db.ExecContext(ctx, query, published, id)
	if err != nil {
		log.Error("failed to set question published flag",
			slog.String("error", err.Error()),
			slog.Int64("question_id", id))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "quiz question"); err != nil {
		return store.ErrQuestionNotFound
	}

	log.Info("question published flag updated",
		slog.Int64("question_id", id),
		slog.Bool("published", published))
	return nil
}
