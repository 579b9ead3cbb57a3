package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/kotoba-app/kotoba-api/internal/domain"
	"github.com/kotoba-app/kotoba-api/internal/platform/logger"
	"github.com/kotoba-app/kotoba-api/internal/store"
)

// PostgresWordStore implements the store.WordStore interface
// using a PostgreSQL database as the storage backend.
type PostgresWordStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresWordStore creates a new PostgreSQL implementation of the
// WordStore interface. If logger is nil, a default logger will be used.
func NewPostgresWordStore(db store.DBTX, logger *slog.Logger) *PostgresWordStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresWordStore{
		db:     db,
		logger: logger.With(slog.String("component", "word_store")),
	}
}

// Ensure PostgresWordStore implements store.WordStore interface
var _ store.WordStore = (*PostgresWordStore)(nil)

// WithTx implements store.WordStore.WithTx
func (s *PostgresWordStore) WithTx(tx *sql.Tx) store.WordStore {
	return &PostgresWordStore{
		db:     tx,
		logger: s.logger,
	}
}

// GetByID implements store.WordStore.GetByID
func (s *PostgresWordStore) GetByID(ctx context.Context, id int64) (*domain.Word, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, word, explanation, audio_bundle_id, skill_nugget_id, published
		FROM words
		WHERE id = $1
	`

	var w domain.Word
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&w.ID,
		&w.Word,
		&w.Explanation,
		&w.AudioBundleID,
		&w.SkillNuggetID,
		&w.Published,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("word not found", slog.Int64("word_id", id))
			return nil, store.ErrWordNotFound
		}
		log.Error("failed to get word by ID",
			slog.String("error", err.Error()),
			slog.Int64("word_id", id))
		return nil, MapError(err)
	}

	return &w, nil
}

// ListUnseen implements store.WordStore.ListUnseen
// A word counts as seen once the user has a word_data audit row for it.
func (s *PostgresWordStore) ListUnseen(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) ([]domain.Word, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT w.id, w.word, w.explanation, w.audio_bundle_id, w.skill_nugget_id, w.published
		FROM words w
		WHERE w.published = TRUE
			AND NOT EXISTS (
				SELECT 1 FROM word_data wd
				WHERE wd.user_id = $1 AND wd.word_id = w.id
			)
		ORDER BY w.id ASC
		LIMIT $2
	`

	rows, err := s.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		log.Error("failed to query unseen words",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var words []domain.Word
	for rows.Next() {
		var w domain.Word
		err := rows.Scan(&w.ID, &w.Word, &w.Explanation, &w.AudioBundleID, &w.SkillNuggetID, &w.Published)
		if err != nil {
			log.Error("failed to scan word row",
				slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		words = append(words, w)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	if words == nil {
		words = []domain.Word{}
	}

	log.Debug("listed unseen words",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(words)))
	return words, nil
}

// Create implements store.WordStore.Create
func (s *PostgresWordStore) Create(ctx context.Context, word *domain.Word) (*domain.Word, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := word.Validate(); err != nil {
		log.Warn("word validation failed during create",
			slog.String("error", err.Error()),
			slog.String("word", word.Word))
		return nil, err
	}

	query := `
		INSERT INTO words (word, explanation, audio_bundle_id, skill_nugget_id, published)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := s.db.QueryRowContext(
		ctx,
		query,
		word.Word,
		word.Explanation,
		word.AudioBundleID,
		word.SkillNuggetID,
		word.Published,
	).Scan(&word.ID)
	if err != nil {
		log.Error("failed to create word",
			slog.String("error", err.Error()),
			slog.String("word", word.Word))
		return nil, MapError(err)
	}

	log.Info("word created successfully",
		slog.Int64("word_id", word.ID),
		slog.String("word", word.Word))
	return word, nil
}

// Update implements store.WordStore.Update
func (s *PostgresWordStore) Update(ctx context.Context, word *domain.Word) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := word.Validate(); err != nil {
		log.Warn("word validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("word_id", word.ID))
		return err
	}

	query := `
		UPDATE words
		SET word = $1, explanation = $2, audio_bundle_id = $3, skill_nugget_id = $4, published = $5
		WHERE id = $6
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		word.Word,
		word.Explanation,
		word.AudioBundleID,
		word.SkillNuggetID,
		word.Published,
		word.ID,
	)
	if err != nil {
		log.Error("failed to update word",
			slog.String("error", err.Error()),
			slog.Int64("word_id", word.ID))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "word"); err != nil {
		return store.ErrWordNotFound
	}

	log.Info("word updated successfully", slog.Int64("word_id", word.ID))
	return nil
}

// SetPublished implements store.WordStore.SetPublished
func (s *PostgresWordStore) SetPublished(ctx context.Context, id int64, published bool) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE words
		SET published = $1
		WHERE id = $2
	`
	result, err := s.db.ExecContext(ctx, query, published, id)
	if err != nil {
		log.Error("failed to set word published flag",
			slog.String("error", err.Error()),
			slog.Int64("word_id", id))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "word"); err != nil {
		return store.ErrWordNotFound
	}

	log.Info("word published flag updated",
		slog.Int64("word_id", id),
		slog.Bool("published", published))
	return nil
}
