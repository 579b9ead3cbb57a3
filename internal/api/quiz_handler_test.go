package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kotoba-app/kotoba-api/internal/api/shared"
	"github.com/kotoba-app/kotoba-api/internal/domain"
	"github.com/kotoba-app/kotoba-api/internal/service/review"
)

// mockReviewService is a func-field mock of review.Service.
type mockReviewService struct {
	NextCardFunc func(ctx context.Context, userID uuid.UUID) (domain.Card, error)
	SubmitFunc   func(ctx context.Context, userID uuid.UUID, answered domain.Answered) (domain.Card, error)
}

func (m *mockReviewService) NextCard(ctx context.Context, userID uuid.UUID) (domain.Card, error) {
	if m.NextCardFunc != nil {
		return m.NextCardFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockReviewService) Submit(
	ctx context.Context,
	userID uuid.UUID,
	answered domain.Answered,
) (domain.Card, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, userID, answered)
	}
	return nil, nil
}

func testQuizCard() *domain.QuizCard {
	return &domain.QuizCard{
		Question:      domain.QuizQuestion{ID: 10, Name: "kore-sore", Text: "Which word did you hear?"},
		PromptAudio:   domain.AudioFile{ID: 901},
		RightAnswerID: 102,
		Choices: []domain.AnswerChoice{
			{ID: 101, Text: "kore"},
			{ID: 102, Text: "sore"},
		},
	}
}

func authedRequest(method, path, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	ctx := context.WithValue(req.Context(), shared.UserIDContextKey, uuid.New())
	return req.WithContext(ctx)
}

func TestNextCardHandler(t *testing.T) {
	t.Parallel()

	t.Run("serves a card", func(t *testing.T) {
		service := &mockReviewService{
			NextCardFunc: func(ctx context.Context, userID uuid.UUID) (domain.Card, error) {
				return testQuizCard(), nil
			},
		}
		handler := NewQuizHandler(service, slog.Default())

		rec := httptest.NewRecorder()
		handler.NextCard(rec, authedRequest(http.MethodGet, "/api/quiz/next", ""))

		require.Equal(t, http.StatusOK, rec.Code)
		var resp CardResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "quiz", resp.Kind)
		require.NotNil(t, resp.Quiz)
		assert.Equal(t, int64(10), resp.Quiz.QuestionID)
	})

	t.Run("empty deck is 204", func(t *testing.T) {
		handler := NewQuizHandler(&mockReviewService{}, slog.Default())

		rec := httptest.NewRecorder()
		handler.NextCard(rec, authedRequest(http.MethodGet, "/api/quiz/next", ""))

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("missing user ID is 401", func(t *testing.T) {
		handler := NewQuizHandler(&mockReviewService{}, slog.Default())

		rec := httptest.NewRecorder()
		handler.NextCard(rec, httptest.NewRequest(http.MethodGet, "/api/quiz/next", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("service failure is 500 without details", func(t *testing.T) {
		service := &mockReviewService{
			NextCardFunc: func(ctx context.Context, userID uuid.UUID) (domain.Card, error) {
				return nil, review.NewNextCardError("failed to list due questions", assert.AnError)
			},
		}
		handler := NewQuizHandler(service, slog.Default())

		rec := httptest.NewRecorder()
		handler.NextCard(rec, authedRequest(http.MethodGet, "/api/quiz/next", ""))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "assert.AnError")
	})
}

func TestSubmitAnswerHandler(t *testing.T) {
	t.Parallel()

	t.Run("records an answer and serves the next card", func(t *testing.T) {
		var submitted domain.Answered
		service := &mockReviewService{
			SubmitFunc: func(ctx context.Context, userID uuid.UUID, answered domain.Answered) (domain.Card, error) {
				submitted = answered
				return testQuizCard(), nil
			},
		}
		handler := NewQuizHandler(service, slog.Default())

		body := `{
			"kind": "question",
			"question": {
				"question_id": 10,
				"right_answer_id": 102,
				"answered_id": 102,
				"prompt_audio_id": 901
			}
		}`
		rec := httptest.NewRecorder()
		handler.SubmitAnswer(rec, authedRequest(http.MethodPost, "/api/quiz/answer", body))

		require.Equal(t, http.StatusOK, rec.Code)
		question, ok := submitted.(*domain.AnsweredQuestion)
		require.True(t, ok)
		assert.Equal(t, int64(10), question.QuestionID)
		assert.Equal(t, int64(102), question.RightAnswerID)
	})

	t.Run("nothing left after the answer is 204", func(t *testing.T) {
		handler := NewQuizHandler(&mockReviewService{}, slog.Default())

		body := `{"kind": "word", "word": {"word_id": 5}}`
		rec := httptest.NewRecorder()
		handler.SubmitAnswer(rec, authedRequest(http.MethodPost, "/api/quiz/answer", body))

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("malformed body is 400", func(t *testing.T) {
		handler := NewQuizHandler(&mockReviewService{}, slog.Default())

		rec := httptest.NewRecorder()
		handler.SubmitAnswer(rec, authedRequest(http.MethodPost, "/api/quiz/answer", "{not json"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown kind is 400", func(t *testing.T) {
		handler := NewQuizHandler(&mockReviewService{}, slog.Default())

		body := `{"kind": "essay"}`
		rec := httptest.NewRecorder()
		handler.SubmitAnswer(rec, authedRequest(http.MethodPost, "/api/quiz/answer", body))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("kind without matching payload is 400", func(t *testing.T) {
		handler := NewQuizHandler(&mockReviewService{}, slog.Default())

		body := `{"kind": "question", "word": {"word_id": 5}}`
		rec := httptest.NewRecorder()
		handler.SubmitAnswer(rec, authedRequest(http.MethodPost, "/api/quiz/answer", body))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "does not match kind")
	})

	t.Run("unknown question is 404", func(t *testing.T) {
		service := &mockReviewService{
			SubmitFunc: func(ctx context.Context, userID uuid.UUID, answered domain.Answered) (domain.Card, error) {
				return nil, review.ErrQuestionNotFound
			},
		}
		handler := NewQuizHandler(service, slog.Default())

		body := `{
			"kind": "question",
			"question": {"question_id": 99, "right_answer_id": 1, "prompt_audio_id": 1}
		}`
		rec := httptest.NewRecorder()
		handler.SubmitAnswer(rec, authedRequest(http.MethodPost, "/api/quiz/answer", body))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
