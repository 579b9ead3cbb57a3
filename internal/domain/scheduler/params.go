package scheduler

// Params defines all configurable parameters for the due-date scheduling
// algorithm.
type Params struct {
	// InitialDelaySeconds is the repetition interval granted by a correct
	// first answer.
	InitialDelaySeconds int

	// MinDelaySeconds is the floor applied when a tracked question's delay is
	// doubled, so a short delay cannot collapse to zero on doubling.
	MinDelaySeconds int

	// GrowthFactor multiplies the delay on every correct answer to a tracked
	// question.
	GrowthFactor int

	// StreakBonusThreshold is the streak length that must be exceeded for a
	// correct answer to award a skill-level bonus. The bonus is granted on
	// every qualifying answer, not only on crossing the threshold, so long
	// streaks keep compounding; this mirrors the established leveling
	// behavior and is kept as an explicit policy knob rather than silently
	// changed.
	StreakBonusThreshold int

	// FirstAnswerBonus is the one-time skill-level bonus for answering a
	// question correctly on first exposure.
	FirstAnswerBonus int

	// StreakBonus is the skill-level bonus for each qualifying streak answer.
	StreakBonus int
}

// NewDefaultParams creates a new Params instance with default values.
func NewDefaultParams() *Params {
	return &Params{
		InitialDelaySeconds:  30,
		MinDelaySeconds:      15,
		GrowthFactor:         2,
		StreakBonusThreshold: 2,
		FirstAnswerBonus:     1,
		StreakBonus:          1,
	}
}
