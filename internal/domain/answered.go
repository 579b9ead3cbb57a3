package domain

// AnsweredKind discriminates the inbound answer-event variants.
type AnsweredKind string

// Possible answer-event kinds
const (
	AnsweredKindWord     AnsweredKind = "word"
	AnsweredKindQuestion AnsweredKind = "question"
	AnsweredKindExercise AnsweredKind = "exercise"
)

// Answered is the sum type of every answer event a learner can submit.
type Answered interface {
	Kind() AnsweredKind
}

// AnsweredWord reports a new-word exposure: the learner has seen the word and
// acknowledged it.
type AnsweredWord struct {
	WordID       int64
	AudioTimes   int
	AnswerTimeMs int
}

// Kind implements Answered.
func (*AnsweredWord) Kind() AnsweredKind { return AnsweredKindWord }

// AnsweredQuestion reports a quiz-question answer. AnsweredID is nil when the
// question timed out unanswered, which always counts as incorrect.
// RightAnswerID echoes the right-answer identity the card was served with.
type AnsweredQuestion struct {
	QuestionID         int64
	RightAnswerID      int64
	AnsweredID         *int64
	PromptAudioID      int64
	ActiveAnswerTimeMs int
	FullAnswerTimeMs   int
}

// Kind implements Answered.
func (*AnsweredQuestion) Kind() AnsweredKind { return AnsweredKindQuestion }

// IsCorrect reports whether the chosen option matches the right answer.
// A nil or non-positive choice denotes "timed out, unanswered".
func (a *AnsweredQuestion) IsCorrect() bool {
	return a.AnsweredID != nil && *a.AnsweredID > 0 && *a.AnsweredID == a.RightAnswerID
}

// AnsweredExercise reports a pronunciation-exercise round for a known word.
type AnsweredExercise struct {
	WordID             int64
	AudioTimes         int
	ActiveAnswerTimeMs int
	FullAnswerTimeMs   int
	AnswerLevel        int
}

// Kind implements Answered.
func (*AnsweredExercise) Kind() AnsweredKind { return AnsweredKindExercise }
