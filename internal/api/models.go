package api

import (
	"time"

	"github.com/kotoba-app/kotoba-api/internal/domain"
)

// RegisterRequest is the request body for POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest is the request body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is the response body for successful register/login calls.
type AuthResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}

// ChoiceResponse is one selectable answer of a served quiz card.
type ChoiceResponse struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
}

// QuizCardResponse is the payload of a served quiz card. RightAnswerID is
// echoed back by the client with its answer so the grading stays stable even
// if the content shifts between serve and answer.
type QuizCardResponse struct {
	QuestionID    int64            `json:"question_id"`
	Name          string           `json:"name"`
	Explanation   string           `json:"explanation"`
	Text          string           `json:"text"`
	PromptAudioID int64            `json:"prompt_audio_id"`
	RightAnswerID int64            `json:"right_answer_id"`
	Choices       []ChoiceResponse `json:"choices"`
	DueDelay      int              `json:"due_delay"`
	DueDate       *time.Time       `json:"due_date,omitempty"`
}

// WordCardResponse is the payload of a served word card. Words carry no
// scheduling state, so DueDelay is always zero and DueDate stays unset; the
// fields are kept so both card kinds share one shape.
type WordCardResponse struct {
	WordID      int64      `json:"word_id"`
	Word        string     `json:"word"`
	Explanation string     `json:"explanation"`
	AudioID     int64      `json:"audio_id"`
	DueDelay    int        `json:"due_delay"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// CardResponse is the discriminated envelope for any served card.
type CardResponse struct {
	Kind string            `json:"kind"`
	Quiz *QuizCardResponse `json:"quiz,omitempty"`
	Word *WordCardResponse `json:"word,omitempty"`
}

// SubmitAnswerRequest is the request body for POST /quiz/answer. Kind selects
// which of the payloads applies.
type SubmitAnswerRequest struct {
	Kind     string                 `json:"kind" validate:"required,oneof=question word exercise"`
	Question *QuestionAnswerPayload `json:"question,omitempty"`
	Word     *WordAnswerPayload     `json:"word,omitempty"`
	Exercise *ExerciseAnswerPayload `json:"exercise,omitempty"`
}

// QuestionAnswerPayload reports a quiz-question answer. AnsweredID omitted or
// non-positive means the question timed out unanswered.
type QuestionAnswerPayload struct {
	QuestionID         int64  `json:"question_id" validate:"required,gt=0"`
	RightAnswerID      int64  `json:"right_answer_id" validate:"required,gt=0"`
	AnsweredID         *int64 `json:"answered_id"`
	PromptAudioID      int64  `json:"prompt_audio_id" validate:"required,gt=0"`
	ActiveAnswerTimeMs int    `json:"active_answer_time_ms" validate:"gte=0"`
	FullAnswerTimeMs   int    `json:"full_answer_time_ms" validate:"gte=0"`
}

// WordAnswerPayload acknowledges a new-word exposure.
type WordAnswerPayload struct {
	WordID       int64 `json:"word_id" validate:"required,gt=0"`
	AudioTimes   int   `json:"audio_times" validate:"gte=0"`
	AnswerTimeMs int   `json:"answer_time_ms" validate:"gte=0"`
}

// ExerciseAnswerPayload reports a pronunciation-exercise round.
type ExerciseAnswerPayload struct {
	WordID             int64 `json:"word_id" validate:"required,gt=0"`
	AudioTimes         int   `json:"audio_times" validate:"gte=0"`
	ActiveAnswerTimeMs int   `json:"active_answer_time_ms" validate:"gte=0"`
	FullAnswerTimeMs   int   `json:"full_answer_time_ms" validate:"gte=0"`
	AnswerLevel        int   `json:"answer_level" validate:"gte=0"`
}

// cardToResponse converts a domain.Card into the wire envelope. A nil card
// maps to nil, which handlers turn into 204 No Content.
func cardToResponse(card domain.Card) *CardResponse {
	switch c := card.(type) {
	case *domain.QuizCard:
		choices := make([]ChoiceResponse, len(c.Choices))
		for i, choice := range c.Choices {
			choices[i] = ChoiceResponse{ID: choice.ID, Text: choice.Text}
		}
		return &CardResponse{
			Kind: string(domain.CardKindQuiz),
			Quiz: &QuizCardResponse{
				QuestionID:    c.Question.ID,
				Name:          c.Question.Name,
				Explanation:   c.Question.Explanation,
				Text:          c.Question.Text,
				PromptAudioID: c.PromptAudio.ID,
				RightAnswerID: c.RightAnswerID,
				Choices:       choices,
				DueDelay:      c.DueDelay,
				DueDate:       c.DueDate,
			},
		}
	case *domain.WordCard:
		return &CardResponse{
			Kind: string(domain.CardKindWord),
			Word: &WordCardResponse{
				WordID:      c.Word.ID,
				Word:        c.Word.Word,
				Explanation: c.Word.Explanation,
				AudioID:     c.Audio.ID,
			},
		}
	default:
		return nil
	}
}

// answeredFromRequest converts the wire request into the domain answer event.
// Returns nil when the kind and payload do not line up.
func answeredFromRequest(req *SubmitAnswerRequest) domain.Answered {
	switch req.Kind {
	case string(domain.AnsweredKindQuestion):
		if req.Question == nil {
			return nil
		}
		return &domain.AnsweredQuestion{
			QuestionID:         req.Question.QuestionID,
			RightAnswerID:      req.Question.RightAnswerID,
			AnsweredID:         req.Question.AnsweredID,
			PromptAudioID:      req.Question.PromptAudioID,
			ActiveAnswerTimeMs: req.Question.ActiveAnswerTimeMs,
			FullAnswerTimeMs:   req.Question.FullAnswerTimeMs,
		}
	case string(domain.AnsweredKindWord):
		if req.Word == nil {
			return nil
		}
		return &domain.AnsweredWord{
			WordID:       req.Word.WordID,
			AudioTimes:   req.Word.AudioTimes,
			AnswerTimeMs: req.Word.AnswerTimeMs,
		}
	case string(domain.AnsweredKindExercise):
		if req.Exercise == nil {
			return nil
		}
		return &domain.AnsweredExercise{
			WordID:             req.Exercise.WordID,
			AudioTimes:         req.Exercise.AudioTimes,
			ActiveAnswerTimeMs: req.Exercise.ActiveAnswerTimeMs,
			FullAnswerTimeMs:   req.Exercise.FullAnswerTimeMs,
			AnswerLevel:        req.Exercise.AnswerLevel,
		}
	default:
		return nil
	}
}
