package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kotoba-app/kotoba-api/internal/domain"
)

func TestCardToResponseQuiz(t *testing.T) {
	t.Parallel()
	due := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	card := &domain.QuizCard{
		Question: domain.QuizQuestion{
			ID:          10,
			Name:        "kore-sore",
			Explanation: "this vs. that",
			Text:        "Which word did you hear?",
		},
		PromptAudio:   domain.AudioFile{ID: 901},
		RightAnswerID: 102,
		Choices: []domain.AnswerChoice{
			{ID: 101, Text: "kore"},
			{ID: 102, Text: "sore"},
		},
		DueDelay: 60,
		DueDate:  &due,
	}

	resp := cardToResponse(card)
	require.NotNil(t, resp)
	assert.Equal(t, "quiz", resp.Kind)
	require.NotNil(t, resp.Quiz)
	assert.Nil(t, resp.Word)

	assert.Equal(t, int64(10), resp.Quiz.QuestionID)
	assert.Equal(t, int64(901), resp.Quiz.PromptAudioID)
	assert.Equal(t, int64(102), resp.Quiz.RightAnswerID)
	require.Len(t, resp.Quiz.Choices, 2)
	assert.Equal(t, "kore", resp.Quiz.Choices[0].Text)
	assert.Equal(t, 60, resp.Quiz.DueDelay)
	require.NotNil(t, resp.Quiz.DueDate)
}

func TestCardToResponseWord(t *testing.T) {
	t.Parallel()
	card := &domain.WordCard{
		Word:  domain.Word{ID: 5, Word: "inu", Explanation: "dog"},
		Audio: domain.AudioFile{ID: 902},
	}

	resp := cardToResponse(card)
	require.NotNil(t, resp)
	assert.Equal(t, "word", resp.Kind)
	require.NotNil(t, resp.Word)
	assert.Nil(t, resp.Quiz)
	assert.Equal(t, int64(5), resp.Word.WordID)
	assert.Equal(t, int64(902), resp.Word.AudioID)
	assert.Zero(t, resp.Word.DueDelay)
	assert.Nil(t, resp.Word.DueDate)
}

func TestCardToResponseNil(t *testing.T) {
	t.Parallel()
	assert.Nil(t, cardToResponse(nil))
}

func TestAnsweredFromRequest(t *testing.T) {
	t.Parallel()
	answeredID := int64(101)

	t.Run("question", func(t *testing.T) {
		answered := answeredFromRequest(&SubmitAnswerRequest{
			Kind: "question",
			Question: &QuestionAnswerPayload{
				QuestionID:    10,
				RightAnswerID: 102,
				AnsweredID:    &answeredID,
				PromptAudioID: 901,
			},
		})

		question, ok := answered.(*domain.AnsweredQuestion)
		require.True(t, ok)
		assert.Equal(t, int64(10), question.QuestionID)
		assert.Equal(t, int64(102), question.RightAnswerID)
		require.NotNil(t, question.AnsweredID)
		assert.Equal(t, answeredID, *question.AnsweredID)
	})

	t.Run("word", func(t *testing.T) {
		answered := answeredFromRequest(&SubmitAnswerRequest{
			Kind: "word",
			Word: &WordAnswerPayload{WordID: 5, AudioTimes: 2},
		})

		word, ok := answered.(*domain.AnsweredWord)
		require.True(t, ok)
		assert.Equal(t, int64(5), word.WordID)
		assert.Equal(t, 2, word.AudioTimes)
	})

	t.Run("exercise", func(t *testing.T) {
		answered := answeredFromRequest(&SubmitAnswerRequest{
			Kind:     "exercise",
			Exercise: &ExerciseAnswerPayload{WordID: 5, AnswerLevel: 3},
		})

		exercise, ok := answered.(*domain.AnsweredExercise)
		require.True(t, ok)
		assert.Equal(t, 3, exercise.AnswerLevel)
	})

	t.Run("kind and payload mismatch", func(t *testing.T) {
		assert.Nil(t, answeredFromRequest(&SubmitAnswerRequest{
			Kind: "question",
			Word: &WordAnswerPayload{WordID: 5},
		}))
	})

	t.Run("unknown kind", func(t *testing.T) {
		assert.Nil(t, answeredFromRequest(&SubmitAnswerRequest{Kind: "essay"}))
	})
}
