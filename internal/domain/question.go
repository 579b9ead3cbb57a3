package domain

import "errors"

// Question-specific validation errors
var (
	// ErrQuestionNameEmpty is returned when a quiz question has no name.
	ErrQuestionNameEmpty = errors.New("quiz question name cannot be empty")

	// ErrQuestionSkillEmpty is returned when a quiz question references no skill nugget.
	ErrQuestionSkillEmpty = errors.New("quiz question skill nugget cannot be empty")

	// ErrAnswerTextEmpty is returned when an answer choice has no text.
	ErrAnswerTextEmpty = errors.New("answer choice text cannot be empty")

	// ErrAnswerAudioEmpty is returned when an answer choice references no prompt audio bundle.
	ErrAnswerAudioEmpty = errors.New("answer choice prompt audio bundle cannot be empty")
)

// QuizQuestion is a listening question belonging to exactly one SkillNugget.
// Only published questions are ever served to learners.
type QuizQuestion struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Explanation string `json:"explanation"`
	Text        string `json:"text"`
	SkillID     int64  `json:"skill_id"`
	Published   bool   `json:"published"`
}

// Validate checks if the QuizQuestion has valid data.
func (q *QuizQuestion) Validate() error {
	if q.Name == "" {
		return ErrQuestionNameEmpty
	}

	if q.SkillID == 0 {
		return ErrQuestionSkillEmpty
	}

	return nil
}

// AnswerChoice is one selectable option for a QuizQuestion. Its prompt audio
// bundle holds the spoken variants of the question prompt that correspond to
// this choice being the right answer; the optional answer audio bundle holds
// the spoken form of the choice itself.
type AnswerChoice struct {
	ID                  int64  `json:"id"`
	QuestionID          int64  `json:"question_id"`
	Text                string `json:"text"`
	AnswerAudioBundleID *int64 `json:"answer_audio_bundle_id,omitempty"`
	PromptAudioBundleID int64  `json:"prompt_audio_bundle_id"`
}

// Validate checks if the AnswerChoice has valid data.
func (a *AnswerChoice) Validate() error {
	if a.Text == "" {
		return ErrAnswerTextEmpty
	}

	if a.PromptAudioBundleID == 0 {
		return ErrAnswerAudioEmpty
	}

	return nil
}
