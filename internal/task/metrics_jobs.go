package task

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kotoba-app/kotoba-api/internal/store"
)

// DailyResetJob zeroes new_words_today for users whose counter was last
// touched before the current UTC day began.
type DailyResetJob struct {
	progress store.ProgressStore
	now      func() time.Time
	logger   *slog.Logger
}

// NewDailyResetJob creates the daily counter reset job.
func NewDailyResetJob(progress store.ProgressStore, logger *slog.Logger) *DailyResetJob {
	if progress == nil {
		panic("progress store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &DailyResetJob{
		progress: progress,
		now:      time.Now,
		logger:   logger.With(slog.String("component", "daily_reset_job")),
	}
}

// Name implements Job.
func (j *DailyResetJob) Name() string { return "daily_word_counter_reset" }

// Run implements Job. The cutoff is UTC midnight of the current day, so a
// counter incremented yesterday resets on the first pass after rollover and
// today's activity is left alone.
func (j *DailyResetJob) Run(ctx context.Context) error {
	now := j.now().UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	reset, err := j.progress.ResetDailyCounters(ctx, midnight)
	if err != nil {
		return fmt.Errorf("failed to reset daily counters: %w", err)
	}

	if reset > 0 {
		j.logger.Info("daily word counters reset",
			slog.Int64("users", reset))
	}
	return nil
}

// BreakResetJob zeroes new_words_since_break for users who have been idle
// long enough to count as having taken a break.
type BreakResetJob struct {
	progress   store.ProgressStore
	breakAfter time.Duration
	now        func() time.Time
	logger     *slog.Logger
}

// NewBreakResetJob creates the sitting counter reset job. breakAfter is the
// idle period that qualifies as a break.
func NewBreakResetJob(
	progress store.ProgressStore,
	breakAfter time.Duration,
	logger *slog.Logger,
) *BreakResetJob {
	if progress == nil {
		panic("progress store cannot be nil")
	}
	if breakAfter <= 0 {
		breakAfter = 30 * time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &BreakResetJob{
		progress:   progress,
		breakAfter: breakAfter,
		now:        time.Now,
		logger:     logger.With(slog.String("component", "break_reset_job")),
	}
}

// Name implements Job.
func (j *BreakResetJob) Name() string { return "break_word_counter_reset" }

// Run implements Job.
func (j *BreakResetJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC().Add(-j.breakAfter)

	reset, err := j.progress.ResetBreakCounters(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to reset break counters: %w", err)
	}

	if reset > 0 {
		j.logger.Info("sitting word counters reset",
			slog.Int64("users", reset))
	}
	return nil
}
