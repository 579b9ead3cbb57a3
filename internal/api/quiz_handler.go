package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/kotoba-app/kotoba-api/internal/api/shared"
	"github.com/kotoba-app/kotoba-api/internal/platform/logger"
	"github.com/kotoba-app/kotoba-api/internal/redact"
	"github.com/kotoba-app/kotoba-api/internal/service/review"
)

// QuizHandler handles the study-session HTTP requests.
type QuizHandler struct {
	reviewService review.Service
	logger        *slog.Logger
}

// NewQuizHandler creates a new QuizHandler.
func NewQuizHandler(reviewService review.Service, logger *slog.Logger) *QuizHandler {
	if reviewService == nil {
		panic("reviewService cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil for QuizHandler")
	}

	return &QuizHandler{
		reviewService: reviewService,
		logger:        logger.With(slog.String("component", "quiz_handler")),
	}
}

// NextCard handles GET /quiz/next requests.
// It returns the next card for the authenticated user, or 204 No Content
// when nothing is available.
func (h *QuizHandler) NextCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	card, err := h.reviewService.NextCard(r.Context(), userID)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to get next card"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	if card == nil {
		log.Debug("no cards available", slog.String("user_id", userID.String()))
		w.WriteHeader(http.StatusNoContent)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, cardToResponse(card))
}

// SubmitAnswer handles POST /quiz/answer requests.
// It records the answer event and returns the next card to serve, which for
// a missed question is the same question again.
func (h *QuizHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req SubmitAnswerRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", userID.String()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	answered := answeredFromRequest(&req)
	if answered == nil {
		log.Warn("answer payload does not match kind",
			slog.String("kind", req.Kind),
			slog.String("user_id", userID.String()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Answer payload does not match kind")
		return
	}

	card, err := h.reviewService.Submit(r.Context(), userID, answered)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to submit answer"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	if card == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, cardToResponse(card))
}
