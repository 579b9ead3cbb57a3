package domain

import "errors"

// ErrSkillSummaryEmpty is returned when a skill nugget has no summary text.
var ErrSkillSummaryEmpty = errors.New("skill nugget summary cannot be empty")

// SkillNugget is a named unit of learnable competence (for example, one
// grammar point) that groups one or more words and quiz questions.
// Nuggets are created lazily on first reference and are immutable afterwards.
type SkillNugget struct {
	ID      int64  `json:"id"`
	Summary string `json:"summary"`
}

// Validate checks if the SkillNugget has valid data.
func (n *SkillNugget) Validate() error {
	if n.Summary == "" {
		return ErrSkillSummaryEmpty
	}
	return nil
}
