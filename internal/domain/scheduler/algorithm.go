package scheduler

import (
	"time"

	"github.com/google/uuid"

	"github.com/kotoba-app/kotoba-api/internal/domain"
)

// nextDelay determines the new repetition interval in seconds.
//
// A wrong answer always resets the interval to zero, making the question due
// immediately. A correct answer to a tracked question doubles the interval
// (clamped below by params.MinDelaySeconds); a correct first answer starts at
// params.InitialDelaySeconds.
func nextDelay(prev *domain.QuestionData, correct bool, params *Params) int {
	if !correct {
		return 0
	}

	if prev == nil {
		return params.InitialDelaySeconds
	}

	delay := prev.DueDelay * params.GrowthFactor
	if delay < params.MinDelaySeconds {
		delay = params.MinDelaySeconds
	}
	return delay
}

// nextStreak determines the new consecutive-correct count. The streak resets
// to zero on any miss; it never goes negative.
func nextStreak(prev *domain.QuestionData, correct bool) int {
	if !correct {
		return 0
	}

	if prev == nil {
		return 1
	}
	return prev.CorrectStreak + 1
}

// skillBonus determines the skill-level increment this transition awards.
//
// A correct first answer earns the one-time first-exposure bonus. A correct
// answer to a tracked question earns the streak bonus whenever the resulting
// streak exceeds params.StreakBonusThreshold. Wrong answers never award a
// bonus, and never apply a penalty either: skill levels only increase.
func skillBonus(prev *domain.QuestionData, streak int, correct bool, params *Params) int {
	if !correct {
		return 0
	}

	if prev == nil {
		return params.FirstAnswerBonus
	}

	if streak > params.StreakBonusThreshold {
		return params.StreakBonus
	}
	return 0
}

// advance computes the full state transition for one answer event. It is a
// pure function: the previous state is never mutated, and the returned
// QuestionData satisfies DueDate >= now.
func advance(
	userID uuid.UUID,
	questionID int64,
	prev *domain.QuestionData,
	correct bool,
	now time.Time,
	params *Params,
) (*domain.QuestionData, int) {
	delay := nextDelay(prev, correct, params)
	streak := nextStreak(prev, correct)

	next := &domain.QuestionData{
		UserID:        userID,
		QuestionID:    questionID,
		CorrectStreak: streak,
		DueDelay:      delay,
		DueDate:       now.Add(time.Duration(delay) * time.Second),
	}

	return next, skillBonus(prev, streak, correct, params)
}
