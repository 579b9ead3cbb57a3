package domain

import "errors"

// Word-specific validation errors
var (
	// ErrWordTextEmpty is returned when a word has no text.
	ErrWordTextEmpty = errors.New("word text cannot be empty")

	// ErrWordSkillEmpty is returned when a word references no skill nugget.
	ErrWordSkillEmpty = errors.New("word skill nugget cannot be empty")

	// ErrWordAudioEmpty is returned when a word references no audio bundle.
	ErrWordAudioEmpty = errors.New("word audio bundle cannot be empty")
)

// Word is a vocabulary item belonging to exactly one SkillNugget, with a
// bundle of recorded pronunciations. Only published words are served.
type Word struct {
	ID            int64  `json:"id"`
	Word          string `json:"word"`
	Explanation   string `json:"explanation"`
	AudioBundleID int64  `json:"audio_bundle_id"`
	SkillNuggetID int64  `json:"skill_nugget_id"`
	Published     bool   `json:"published"`
}

// Validate checks if the Word has valid data.
func (w *Word) Validate() error {
	if w.Word == "" {
		return ErrWordTextEmpty
	}

	if w.SkillNuggetID == 0 {
		return ErrWordSkillEmpty
	}

	if w.AudioBundleID == 0 {
		return ErrWordAudioEmpty
	}

	return nil
}
