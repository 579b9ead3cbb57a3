// Package skill maintains per-user skill-nugget levels. Levels only ever go
// up; every qualifying answer, word exposure or exercise round feeds a bump
// through the Tracker.
package skill

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/kotoba-app/kotoba-api/internal/platform/logger"
	"github.com/kotoba-app/kotoba-api/internal/store"
)

// Tracker records skill-level progress against the progress store.
type Tracker struct {
	progress store.ProgressStore
	logger   *slog.Logger
}

// NewTracker creates a Tracker backed by the given progress store.
// If logger is nil, a default logger will be used.
func NewTracker(progress store.ProgressStore, logger *slog.Logger) *Tracker {
	if progress == nil {
		panic("progress store cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Tracker{
		progress: progress,
		logger:   logger.With(slog.String("component", "skill_tracker")),
	}
}

// WithTx returns a Tracker whose writes run inside the given transaction.
func (t *Tracker) WithTx(tx *sql.Tx) *Tracker {
	return &Tracker{
		progress: t.progress.WithTx(tx),
		logger:   t.logger,
	}
}

// Bump raises the user's level for the nugget by delta and returns the new
// level. A delta of zero is a no-op that reports the current level.
func (t *Tracker) Bump(ctx context.Context, userID uuid.UUID, nuggetID int64, delta int) (int, error) {
	log := logger.FromContextOrDefault(ctx, t.logger)

	if delta == 0 {
		return t.Level(ctx, userID, nuggetID)
	}
	if delta < 0 {
		return 0, fmt.Errorf("skill bump delta cannot be negative: %d", delta)
	}

	level, err := t.progress.BumpSkill(ctx, userID, nuggetID, delta)
	if err != nil {
		return 0, fmt.Errorf("failed to bump skill: %w", err)
	}

	log.Debug("skill bumped",
		slog.String("user_id", userID.String()),
		slog.Int64("nugget_id", nuggetID),
		slog.Int("delta", delta),
		slog.Int("level", level))
	return level, nil
}

// Level reports the user's current level for the nugget, 0 when untouched.
func (t *Tracker) Level(ctx context.Context, userID uuid.UUID, nuggetID int64) (int, error) {
	level, err := t.progress.SkillLevel(ctx, userID, nuggetID)
	if err != nil {
		return 0, fmt.Errorf("failed to get skill level: %w", err)
	}
	return level, nil
}
