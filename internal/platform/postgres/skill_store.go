package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/kotoba-app/kotoba-api/internal/domain"
	"github.com/kotoba-app/kotoba-api/internal/platform/logger"
	"github.com/kotoba-app/kotoba-api/internal/store"
)

// PostgresSkillStore implements the store.SkillStore interface
// using a PostgreSQL database as the storage backend.
type PostgresSkillStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSkillStore creates a new PostgreSQL implementation of the
// SkillStore interface. If logger is nil, a default logger will be used.
func NewPostgresSkillStore(db store.DBTX, logger *slog.Logger) *PostgresSkillStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresSkillStore{
		db:     db,
		logger: logger.With(slog.String("component", "skill_store")),
	}
}

// Ensure PostgresSkillStore implements store.SkillStore interface
var _ store.SkillStore = (*PostgresSkillStore)(nil)

// WithTx implements store.SkillStore.WithTx
func (s *PostgresSkillStore) WithTx(tx *sql.Tx) store.SkillStore {
	return &PostgresSkillStore{
		db:     tx,
		logger: s.logger,
	}
}

// GetByID implements store.SkillStore.GetByID
func (s *PostgresSkillStore) GetByID(ctx context.Context, id int64) (*domain.SkillNugget, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, skill_summary
		FROM skill_nuggets
		WHERE id = $1
	`

	var nugget domain.SkillNugget
	err := s.db.QueryRowContext(ctx, query, id).Scan(&nugget.ID, &nugget.Summary)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("skill nugget not found", slog.Int64("nugget_id", id))
			return nil, store.ErrNotFound
		}
		log.Error("failed to get skill nugget by ID",
			slog.String("error", err.Error()),
			slog.Int64("nugget_id", id))
		return nil, MapError(err)
	}

	return &nugget, nil
}

// GetOrCreate implements store.SkillStore.GetOrCreate
// The upsert form keeps concurrent creators from racing: both end up with
// the same row.
func (s *PostgresSkillStore) GetOrCreate(ctx context.Context, summary string) (*domain.SkillNugget, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	nugget := domain.SkillNugget{Summary: summary}
	if err := nugget.Validate(); err != nil {
		log.Warn("skill nugget validation failed",
			slog.String("error", err.Error()))
		return nil, err
	}

	query := `
		INSERT INTO skill_nuggets (skill_summary)
		VALUES ($1)
		ON CONFLICT (skill_summary) DO UPDATE SET skill_summary = EXCLUDED.skill_summary
		RETURNING id
	`
	err := s.db.QueryRowContext(ctx, query, summary).Scan(&nugget.ID)
	if err != nil {
		log.Error("failed to get or create skill nugget",
			slog.String("error", err.Error()),
			slog.String("summary", summary))
		return nil, MapError(err)
	}

	return &nugget, nil
}

// List implements store.SkillStore.List
func (s *PostgresSkillStore) List(ctx context.Context) ([]domain.SkillNugget, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, skill_summary
		FROM skill_nuggets
		ORDER BY id ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query skill nuggets",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var nuggets []domain.SkillNugget
	for rows.Next() {
		var n domain.SkillNugget
		if err := rows.Scan(&n.ID, &n.Summary); err != nil {
			log.Error("failed to scan skill nugget row",
				slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		nuggets = append(nuggets, n)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	if nuggets == nil {
		nuggets = []domain.SkillNugget{}
	}

	return nuggets, nil
}
