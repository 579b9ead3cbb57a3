package scheduler

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kotoba-app/kotoba-api/internal/domain"
)

func TestAdvanceUnseen(t *testing.T) {
	t.Parallel()
	service := NewDefaultService()
	userID := uuid.New()
	now := time.Now().UTC()

	t.Run("correct first answer starts the initial interval", func(t *testing.T) {
		next, bonus, err := service.Advance(userID, 42, nil, true, now)
		require.NoError(t, err)
		require.NotNil(t, next)

		assert.Equal(t, userID, next.UserID)
		assert.Equal(t, int64(42), next.QuestionID)
		assert.Equal(t, 1, next.CorrectStreak)
		assert.Equal(t, 30, next.DueDelay)
		assert.True(t, next.DueDate.Equal(now.Add(30*time.Second)))
		assert.Equal(t, 1, bonus, "first correct answer awards the first-exposure bonus")
	})

	t.Run("wrong first answer is due immediately with no bonus", func(t *testing.T) {
		next, bonus, err := service.Advance(userID, 42, nil, false, now)
		require.NoError(t, err)
		require.NotNil(t, next)

		assert.Equal(t, 0, next.CorrectStreak)
		assert.Equal(t, 0, next.DueDelay)
		assert.True(t, next.DueDate.Equal(now))
		assert.Equal(t, 0, bonus)
	})
}

func TestAdvanceTracked(t *testing.T) {
	t.Parallel()
	service := NewDefaultService()
	userID := uuid.New()
	now := time.Now().UTC()

	prev := func(streak, delay int) *domain.QuestionData {
		return &domain.QuestionData{
			UserID:        userID,
			QuestionID:    7,
			CorrectStreak: streak,
			DueDelay:      delay,
			DueDate:       now.Add(-time.Minute),
		}
	}

	testCases := []struct {
		name         string
		prev         *domain.QuestionData
		correct      bool
		expectStreak int
		expectDelay  int
		expectBonus  int
	}{
		{
			name:         "correct answer doubles the interval",
			prev:         prev(1, 30),
			correct:      true,
			expectStreak: 2,
			expectDelay:  60,
			expectBonus:  0,
		},
		{
			name:         "interval keeps doubling on later answers",
			prev:         prev(2, 60),
			correct:      true,
			expectStreak: 3,
			expectDelay:  120,
			expectBonus:  1,
		},
		{
			name:         "long streaks keep earning the bonus",
			prev:         prev(5, 480),
			correct:      true,
			expectStreak: 6,
			expectDelay:  960,
			expectBonus:  1,
		},
		{
			name:         "doubling a reset interval is clamped to the floor",
			prev:         prev(0, 0),
			correct:      true,
			expectStreak: 1,
			expectDelay:  15,
			expectBonus:  0,
		},
		{
			name:         "wrong answer resets streak and interval",
			prev:         prev(4, 240),
			correct:      false,
			expectStreak: 0,
			expectDelay:  0,
			expectBonus:  0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			next, bonus, err := service.Advance(userID, 7, tc.prev, tc.correct, now)
			require.NoError(t, err)
			require.NotNil(t, next)

			assert.Equal(t, tc.expectStreak, next.CorrectStreak)
			assert.Equal(t, tc.expectDelay, next.DueDelay)
			assert.Equal(t, tc.expectBonus, bonus)
			assert.True(t, next.DueDate.Equal(now.Add(time.Duration(tc.expectDelay)*time.Second)))
		})
	}
}

func TestAdvanceDoesNotMutatePrev(t *testing.T) {
	t.Parallel()
	service := NewDefaultService()
	userID := uuid.New()
	now := time.Now().UTC()

	prev := &domain.QuestionData{
		UserID:        userID,
		QuestionID:    3,
		CorrectStreak: 2,
		DueDelay:      60,
		DueDate:       now.Add(-time.Minute),
	}
	snapshot := *prev

	_, _, err := service.Advance(userID, 3, prev, true, now)
	require.NoError(t, err)
	assert.Equal(t, snapshot, *prev, "previous state must not be mutated")
}

func TestAdvanceValidation(t *testing.T) {
	t.Parallel()
	service := NewDefaultService()
	userID := uuid.New()
	now := time.Now().UTC()

	t.Run("rejects empty user", func(t *testing.T) {
		_, _, err := service.Advance(uuid.Nil, 1, nil, true, now)
		assert.ErrorIs(t, err, ErrEmptyUser)
	})

	t.Run("rejects empty question", func(t *testing.T) {
		_, _, err := service.Advance(userID, 0, nil, true, now)
		assert.ErrorIs(t, err, ErrEmptyQuestion)
	})

	t.Run("rejects state from a different question", func(t *testing.T) {
		prev := &domain.QuestionData{
			UserID:     userID,
			QuestionID: 99,
			DueDate:    now,
		}
		_, _, err := service.Advance(userID, 1, prev, true, now)
		assert.ErrorIs(t, err, ErrStateMismatch)
	})

	t.Run("rejects invalid previous state", func(t *testing.T) {
		prev := &domain.QuestionData{
			UserID:        userID,
			QuestionID:    1,
			CorrectStreak: -1,
			DueDate:       now,
		}
		_, _, err := service.Advance(userID, 1, prev, true, now)
		assert.ErrorIs(t, err, domain.ErrNegativeStreak)
	})
}

func TestAdvanceWithCustomParams(t *testing.T) {
	t.Parallel()
	params := &Params{
		InitialDelaySeconds:  10,
		MinDelaySeconds:      5,
		GrowthFactor:         3,
		StreakBonusThreshold: 1,
		FirstAnswerBonus:     2,
		StreakBonus:          1,
	}
	service := NewServiceWithParams(params)
	userID := uuid.New()
	now := time.Now().UTC()

	next, bonus, err := service.Advance(userID, 1, nil, true, now)
	require.NoError(t, err)
	assert.Equal(t, 10, next.DueDelay)
	assert.Equal(t, 2, bonus)

	next2, bonus2, err := service.Advance(userID, 1, next, true, now)
	require.NoError(t, err)
	assert.Equal(t, 30, next2.DueDelay)
	assert.Equal(t, 1, bonus2, "streak 2 exceeds the threshold of 1")
}
