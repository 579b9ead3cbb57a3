package domain

import "time"

// CardKind discriminates the card variants served to a learner.
type CardKind string

// Possible card kinds
const (
	CardKindQuiz CardKind = "quiz"
	CardKindWord CardKind = "word"
)

// Card is the sum type of everything the selection policy can serve.
// A nil Card means "no card available", which is a successful outcome,
// not an error.
type Card interface {
	Kind() CardKind
}

// QuizCard is a quiz question assembled for presentation: the prompt, one
// randomly chosen prompt-audio recording, the full (shuffled) choice list and
// the identity of the right answer, which the caller keeps private.
type QuizCard struct {
	Question      QuizQuestion   `json:"question"`
	PromptAudio   AudioFile      `json:"prompt_audio"`
	RightAnswerID int64          `json:"right_answer_id"`
	Choices       []AnswerChoice `json:"choices"`
	DueDelay      int            `json:"due_delay"`
	DueDate       *time.Time     `json:"due_date,omitempty"` // nil for questions never answered before
}

// Kind implements Card.
func (*QuizCard) Kind() CardKind { return CardKindQuiz }

// WordCard is a new vocabulary word assembled for presentation with one
// randomly chosen recording.
type WordCard struct {
	Word  Word      `json:"word"`
	Audio AudioFile `json:"audio"`
}

// Kind implements Card.
func (*WordCard) Kind() CardKind { return CardKindWord }
