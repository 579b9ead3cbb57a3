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

// PostgresProgressStore implements the store.ProgressStore interface
// using a PostgreSQL database as the storage backend.
type PostgresProgressStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProgressStore creates a new PostgreSQL implementation of the
// ProgressStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresProgressStore(db store.DBTX, logger *slog.Logger) *PostgresProgressStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresProgressStore{
		db:     db,
		logger: logger.With(slog.String("component", "progress_store")),
	}
}

// Ensure PostgresProgressStore implements store.ProgressStore interface
var _ store.ProgressStore = (*PostgresProgressStore)(nil)

// WithTx implements store.ProgressStore.WithTx
func (s *PostgresProgressStore) WithTx(tx *sql.Tx) store.ProgressStore {
	return &PostgresProgressStore{
		db:     tx,
		logger: s.logger,
	}
}

// GetQuestionData implements store.ProgressStore.GetQuestionData
func (s *PostgresProgressStore) GetQuestionData(
	ctx context.Context,
	userID uuid.UUID,
	questionID int64,
) (*domain.QuestionData, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT user_id, question_id, correct_streak, due_delay, due_date
		FROM question_data
		WHERE user_id = $1 AND question_id = $2
	`

	var data domain.QuestionData
	err := s.db.QueryRowContext(ctx, query, userID, questionID).Scan(
		&data.UserID,
		&data.QuestionID,
		&data.CorrectStreak,
		&data.DueDelay,
		&data.DueDate,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("question data not found",
				slog.String("user_id", userID.String()),
				slog.Int64("question_id", questionID))
			return nil, store.ErrQuestionDataNotFound
		}
		log.Error("failed to get question data",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.Int64("question_id", questionID))
		return nil, MapError(err)
	}

	return &data, nil
}

// CreateQuestionDataIfAbsent implements store.ProgressStore.CreateQuestionDataIfAbsent
// The ON CONFLICT DO NOTHING form makes the first-answer insert race-safe:
// when two requests answer the same unseen question concurrently, exactly one
// insert wins and the loser observes inserted == false.
func (s *PostgresProgressStore) CreateQuestionDataIfAbsent(
	ctx context.Context,
	data *domain.QuestionData,
) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := data.Validate(); err != nil {
		log.Warn("question data validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", data.UserID.String()),
			slog.Int64("question_id", data.QuestionID))
		return false, err
	}

	query := `
		INSERT INTO question_data (user_id, question_id, correct_streak, due_delay, due_date)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, question_id) DO NOTHING
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		data.UserID,
		data.QuestionID,
		data.CorrectStreak,
		data.DueDelay,
		data.DueDate,
	)
	if err != nil {
		log.Error("failed to create question data",
			slog.String("error", err.Error()),
			slog.String("user_id", data.UserID.String()),
			slog.Int64("question_id", data.QuestionID))
		return false, MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()))
		return false, MapError(err)
	}

	inserted := rowsAffected > 0
	if !inserted {
		log.Debug("question data already present, insert skipped",
			slog.String("user_id", data.UserID.String()),
			slog.Int64("question_id", data.QuestionID))
	}
	return inserted, nil
}

// UpdateQuestionData implements store.ProgressStore.UpdateQuestionData
func (s *PostgresProgressStore) UpdateQuestionData(ctx context.Context, data *domain.QuestionData) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := data.Validate(); err != nil {
		log.Warn("question data validation failed during update",
			slog.String("error", err.Error()),
			slog.String("user_id", data.UserID.String()),
			slog.Int64("question_id", data.QuestionID))
		return err
	}

	query := `
		UPDATE question_data
		SET correct_streak = $1, due_delay = $2, due_date = $3
		WHERE user_id = $4 AND question_id = $5
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		data.CorrectStreak,
		data.DueDelay,
		data.DueDate,
		data.UserID,
		data.QuestionID,
	)
	if err != nil {
		log.Error("failed to update question data",
			slog.String("error", err.Error()),
			slog.String("user_id", data.UserID.String()),
			slog.Int64("question_id", data.QuestionID))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "question data"); err != nil {
		return store.ErrQuestionDataNotFound
	}

	return nil
}

// BumpSkill implements store.ProgressStore.BumpSkill
// The increment happens inside the database so concurrent bumps never lose
// an update, and the new level comes back in the same round trip.
func (s *PostgresProgressStore) BumpSkill(
	ctx context.Context,
	userID uuid.UUID,
	nuggetID int64,
	delta int,
) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO skill_data (user_id, skill_nugget_id, skill_level)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, skill_nugget_id)
		DO UPDATE SET skill_level = skill_data.skill_level + EXCLUDED.skill_level
		RETURNING skill_level
	`

	var level int
	err := s.db.QueryRowContext(ctx, query, userID, nuggetID, delta).Scan(&level)
	if err != nil {
		log.Error("failed to bump skill level",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.Int64("nugget_id", nuggetID))
		return 0, MapError(err)
	}

	log.Debug("skill level bumped",
		slog.String("user_id", userID.String()),
		slog.Int64("nugget_id", nuggetID),
		slog.Int("delta", delta),
		slog.Int("level", level))
	return level, nil
}

// SkillLevel implements store.ProgressStore.SkillLevel
func (s *PostgresProgressStore) SkillLevel(
	ctx context.Context,
	userID uuid.UUID,
	nuggetID int64,
) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT skill_level
		FROM skill_data
		WHERE user_id = $1 AND skill_nugget_id = $2
	`

	var level int
	err := s.db.QueryRowContext(ctx, query, userID, nuggetID).Scan(&level)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		log.Error("failed to get skill level",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.Int64("nugget_id", nuggetID))
		return 0, MapError(err)
	}

	return level, nil
}

// InsertAnswerData implements store.ProgressStore.InsertAnswerData
func (s *PostgresProgressStore) InsertAnswerData(ctx context.Context, data *domain.AnswerData) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO answer_data (
			user_id, question_id, prompt_audio_id, correct_choice_id,
			answered_choice_id, active_answer_time_ms, full_answer_time_ms,
			correct, answered_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	err := s.db.QueryRowContext(
		ctx,
		query,
		data.UserID,
		data.QuestionID,
		data.PromptAudioID,
		data.CorrectChoiceID,
		data.AnsweredChoiceID,
		data.ActiveAnswerTimeMs,
		data.FullAnswerTimeMs,
		data.Correct,
		data.AnsweredAt,
	).Scan(&data.ID)
	if err != nil {
		log.Error("failed to insert answer data",
			slog.String("error", err.Error()),
			slog.String("user_id", data.UserID.String()),
			slog.Int64("question_id", data.QuestionID))
		return MapError(err)
	}

	return nil
}

// InsertWordData implements store.ProgressStore.InsertWordData
func (s *PostgresProgressStore) InsertWordData(ctx context.Context, data *domain.WordData) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO word_data (user_id, word_id, audio_times, answer_time_ms, answered_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := s.db.QueryRowContext(
		ctx,
		query,
		data.UserID,
		data.WordID,
		data.AudioTimes,
		data.AnswerTimeMs,
		data.AnsweredAt,
	).Scan(&data.ID)
	if err != nil {
		log.Error("failed to insert word data",
			slog.String("error", err.Error()),
			slog.String("user_id", data.UserID.String()),
			slog.Int64("word_id", data.WordID))
		return MapError(err)
	}

	return nil
}

// InsertExerciseData implements store.ProgressStore.InsertExerciseData
func (s *PostgresProgressStore) InsertExerciseData(ctx context.Context, data *domain.ExerciseData) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO exercise_data (
			user_id, word_id, audio_times, active_answer_time_ms,
			full_answer_time_ms, answer_level, answered_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := s.db.QueryRowContext(
		ctx,
		query,
		data.UserID,
		data.WordID,
		data.AudioTimes,
		data.ActiveAnswerTimeMs,
		data.FullAnswerTimeMs,
		data.AnswerLevel,
		data.AnsweredAt,
	).Scan(&data.ID)
	if err != nil {
		log.Error("failed to insert exercise data",
			slog.String("error", err.Error()),
			slog.String("user_id", data.UserID.String()),
			slog.Int64("word_id", data.WordID))
		return MapError(err)
	}

	return nil
}

// GetMetrics implements store.ProgressStore.GetMetrics
// A missing row means the user has never been exposed to a new word, so a
// zeroed row is created on the spot rather than treated as an error.
func (s *PostgresProgressStore) GetMetrics(ctx context.Context, userID uuid.UUID) (*domain.UserMetrics, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO user_metrics (user_id, new_words_today, new_words_since_break, updated_at)
		VALUES ($1, 0, 0, NOW())
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING user_id, new_words_today, new_words_since_break
	`

	var metrics domain.UserMetrics
	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&metrics.UserID,
		&metrics.NewWordsToday,
		&metrics.NewWordsSinceBreak,
	)
	if err != nil {
		log.Error("failed to get user metrics",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}

	return &metrics, nil
}

// IncrementWordCounters implements store.ProgressStore.IncrementWordCounters
func (s *PostgresProgressStore) IncrementWordCounters(ctx context.Context, userID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO user_metrics (user_id, new_words_today, new_words_since_break, updated_at)
		VALUES ($1, 1, 1, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			new_words_today = user_metrics.new_words_today + 1,
			new_words_since_break = user_metrics.new_words_since_break + 1,
			updated_at = NOW()
	`
	_, err := s.db.ExecContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to increment word counters",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return MapError(err)
	}

	log.Debug("word counters incremented",
		slog.String("user_id", userID.String()))
	return nil
}

// ResetDailyCounters implements store.ProgressStore.ResetDailyCounters
func (s *PostgresProgressStore) ResetDailyCounters(ctx context.Context, cutoff time.Time) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE user_metrics
		SET new_words_today = 0
		WHERE new_words_today > 0 AND updated_at < $1
	`
	result, err := s.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		log.Error("failed to reset daily counters",
			slog.String("error", err.Error()))
		return 0, MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, MapError(err)
	}

	return rowsAffected, nil
}

// ResetBreakCounters implements store.ProgressStore.ResetBreakCounters
func (s *PostgresProgressStore) ResetBreakCounters(ctx context.Context, cutoff time.Time) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE user_metrics
		SET new_words_since_break = 0
		WHERE new_words_since_break > 0 AND updated_at < $1
	`
	result, err := s.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		log.Error("failed to reset break counters",
			slog.String("error", err.Error()))
		return 0, MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, MapError(err)
	}

	return rowsAffected, nil
}
