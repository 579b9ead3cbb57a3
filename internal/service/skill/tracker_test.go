package skill

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kotoba-app/kotoba-api/internal/domain"
	"github.com/kotoba-app/kotoba-api/internal/store"
)

// stubProgressStore implements store.ProgressStore with an in-memory level
// map; only the skill methods carry behavior.
type stubProgressStore struct {
	levels map[int64]int
}

func newStubProgressStore() *stubProgressStore {
	return &stubProgressStore{levels: make(map[int64]int)}
}

func (s *stubProgressStore) BumpSkill(
	ctx context.Context,
	userID uuid.UUID,
	nuggetID int64,
	delta int,
) (int, error) {
	s.levels[nuggetID] += delta
	return s.levels[nuggetID], nil
}

func (s *stubProgressStore) SkillLevel(ctx context.Context, userID uuid.UUID, nuggetID int64) (int, error) {
	return s.levels[nuggetID], nil
}

func (s *stubProgressStore) GetQuestionData(
	ctx context.Context,
	userID uuid.UUID,
	questionID int64,
) (*domain.QuestionData, error) {
	return nil, store.ErrQuestionDataNotFound
}

func (s *stubProgressStore) CreateQuestionDataIfAbsent(
	ctx context.Context,
	data *domain.QuestionData,
) (bool, error) {
	return true, nil
}

func (s *stubProgressStore) UpdateQuestionData(ctx context.Context, data *domain.QuestionData) error {
	return nil
}

func (s *stubProgressStore) InsertAnswerData(ctx context.Context, data *domain.AnswerData) error {
	return nil
}

func (s *stubProgressStore) InsertWordData(ctx context.Context, data *domain.WordData) error {
	return nil
}

func (s *stubProgressStore) InsertExerciseData(ctx context.Context, data *domain.ExerciseData) error {
	return nil
}

func (s *stubProgressStore) GetMetrics(ctx context.Context, userID uuid.UUID) (*domain.UserMetrics, error) {
	return &domain.UserMetrics{UserID: userID}, nil
}

func (s *stubProgressStore) IncrementWordCounters(ctx context.Context, userID uuid.UUID) error {
	return nil
}

func (s *stubProgressStore) ResetDailyCounters(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

func (s *stubProgressStore) ResetBreakCounters(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

func (s *stubProgressStore) WithTx(tx *sql.Tx) store.ProgressStore { return s }

func TestTrackerBump(t *testing.T) {
	t.Parallel()
	progress := newStubProgressStore()
	tracker := NewTracker(progress, nil)
	userID := uuid.New()

	level, err := tracker.Bump(context.Background(), userID, 3, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, level)

	level, err = tracker.Bump(context.Background(), userID, 3, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, level, "bumps accumulate")
}

func TestTrackerBumpZeroReportsCurrentLevel(t *testing.T) {
	t.Parallel()
	progress := newStubProgressStore()
	progress.levels[5] = 4
	tracker := NewTracker(progress, nil)

	level, err := tracker.Bump(context.Background(), uuid.New(), 5, 0)
	require.NoError(t, err)
	assert.Equal(t, 4, level)
}

func TestTrackerBumpRejectsNegativeDelta(t *testing.T) {
	t.Parallel()
	tracker := NewTracker(newStubProgressStore(), nil)

	_, err := tracker.Bump(context.Background(), uuid.New(), 1, -1)
	assert.Error(t, err, "skill levels only ever increase")
}

func TestTrackerLevelDefaultsToZero(t *testing.T) {
	t.Parallel()
	tracker := NewTracker(newStubProgressStore(), nil)

	level, err := tracker.Level(context.Background(), uuid.New(), 99)
	require.NoError(t, err)
	assert.Equal(t, 0, level)
}
