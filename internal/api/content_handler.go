package api

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kotoba-app/kotoba-api/internal/api/shared"
	"github.com/kotoba-app/kotoba-api/internal/domain"
	"github.com/kotoba-app/kotoba-api/internal/platform/logger"
	"github.com/kotoba-app/kotoba-api/internal/redact"
	"github.com/kotoba-app/kotoba-api/internal/service/content"
)

// CreateChoiceRequest is one answer choice in a question creation request.
type CreateChoiceRequest struct {
	Text                string `json:"text" validate:"required"`
	AnswerAudioBundleID *int64 `json:"answer_audio_bundle_id"`
	PromptAudioBundleID int64  `json:"prompt_audio_bundle_id" validate:"required,gt=0"`
}

// CreateQuestionRequest is the request body for POST /content/questions.
type CreateQuestionRequest struct {
	Name         string                `json:"name" validate:"required"`
	Explanation  string                `json:"explanation" validate:"required"`
	Text         string                `json:"text" validate:"required"`
	SkillSummary string                `json:"skill_summary" validate:"required"`
	Published    bool                  `json:"published"`
	Choices      []CreateChoiceRequest `json:"choices" validate:"required,min=1,dive"`
}

// CreateWordRequest is the request body for POST /content/words.
type CreateWordRequest struct {
	Word          string `json:"word" validate:"required"`
	Explanation   string `json:"explanation" validate:"required"`
	SkillSummary  string `json:"skill_summary" validate:"required"`
	AudioBundleID int64  `json:"audio_bundle_id" validate:"required,gt=0"`
	Published     bool   `json:"published"`
}

// AddRecordingRequest is the request body for POST /content/recordings.
type AddRecordingRequest struct {
	BundleID   int64  `json:"bundle_id"`
	BundleName string `json:"bundle_name"`
	Narrator   string `json:"narrator"`
	FilePath   string `json:"file_path" validate:"required"`
	MimeType   string `json:"mime_type" validate:"required"`
}

// PublishRequest is the request body for the publish toggles.
type PublishRequest struct {
	Published bool `json:"published"`
}

// ContentHandler handles editor-facing content management requests.
type ContentHandler struct {
	contentService *content.Service
	logger         *slog.Logger
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(contentService *content.Service, logger *slog.Logger) *ContentHandler {
	if contentService == nil {
		panic("contentService cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil for ContentHandler")
	}

	return &ContentHandler{
		contentService: contentService,
		logger:         logger.With(slog.String("component", "content_handler")),
	}
}

// CreateQuestion handles POST /content/questions requests.
func (h *ContentHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateQuestionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	choices := make([]content.NewChoice, len(req.Choices))
	for i, c := range req.Choices {
		choices[i] = content.NewChoice{
			Text:                c.Text,
			AnswerAudioBundleID: c.AnswerAudioBundleID,
			PromptAudioBundleID: c.PromptAudioBundleID,
		}
	}

	question, err := h.contentService.CreateQuestion(r.Context(), content.NewQuestion{
		Name:         req.Name,
		Explanation:  req.Explanation,
		Text:         req.Text,
		SkillSummary: req.SkillSummary,
		Published:    req.Published,
		Choices:      choices,
	})
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to create question"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, question)
}

// PublishQuestion handles PUT /content/questions/{id}/publish requests.
func (h *ContentHandler) PublishQuestion(w http.ResponseWriter, r *http.Request) {
	h.setPublished(w, r, h.contentService.SetQuestionPublished)
}

// CreateWord handles POST /content/words requests.
func (h *ContentHandler) CreateWord(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateWordRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	word, err := h.contentService.CreateWord(r.Context(), content.NewWord{
		Word:          req.Word,
		Explanation:   req.Explanation,
		SkillSummary:  req.SkillSummary,
		AudioBundleID: req.AudioBundleID,
		Published:     req.Published,
	})
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to create word"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, word)
}

// PublishWord handles PUT /content/words/{id}/publish requests.
func (h *ContentHandler) PublishWord(w http.ResponseWriter, r *http.Request) {
	h.setPublished(w, r, h.contentService.SetWordPublished)
}

// AddRecording handles POST /content/recordings requests.
func (h *ContentHandler) AddRecording(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req AddRecordingRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	if req.BundleID == 0 && req.BundleName == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Either bundle_id or bundle_name is required")
		return
	}

	file, err := h.contentService.AddRecording(r.Context(), content.NewRecording{
		BundleID:   req.BundleID,
		BundleName: req.BundleName,
		Narrator:   req.Narrator,
		FilePath:   req.FilePath,
		MimeType:   req.MimeType,
	})
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to add recording"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, file)
}

// ListSkills handles GET /content/skills requests.
func (h *ContentHandler) ListSkills(w http.ResponseWriter, r *http.Request) {
	skills, err := h.contentService.ListSkills(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(
			w, r,
			http.StatusInternalServerError,
			"Failed to list skills",
			err,
		)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, skills)
}

// BundleResponse is one audio bundle with its recordings.
type BundleResponse struct {
	Bundle domain.AudioBundle `json:"bundle"`
	Files  []domain.AudioFile `json:"files"`
}

// ListBundles handles GET /content/bundles requests.
func (h *ContentHandler) ListBundles(w http.ResponseWriter, r *http.Request) {
	filesByBundle, bundles, err := h.contentService.ListBundles(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(
			w, r,
			http.StatusInternalServerError,
			"Failed to list bundles",
			err,
		)
		return
	}

	response := make([]BundleResponse, len(bundles))
	for i, b := range bundles {
		files := filesByBundle[b.ID]
		if files == nil {
			files = []domain.AudioFile{}
		}
		response[i] = BundleResponse{Bundle: b, Files: files}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// setPublished implements the shared publish-toggle flow for questions and
// words.
func (h *ContentHandler) setPublished(
	w http.ResponseWriter,
	r *http.Request,
	set func(ctx context.Context, id int64, published bool) error,
) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	idParam := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil || id <= 0 {
		log.Warn("invalid content ID", slog.String("id", idParam))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid ID")
		return
	}

	var req PublishRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := set(r.Context(), id, req.Published); err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to update published state"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
