package api

import (
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/kotoba-app/kotoba-api/internal/api/shared"
	"github.com/kotoba-app/kotoba-api/internal/platform/logger"
	"github.com/kotoba-app/kotoba-api/internal/service/content"
)

// AudioHandler serves quiz and word recordings from the media directory.
type AudioHandler struct {
	contentService *content.Service
	audioDir       string
	logger         *slog.Logger
}

// NewAudioHandler creates a new AudioHandler serving files rooted at audioDir.
func NewAudioHandler(contentService *content.Service, audioDir string, logger *slog.Logger) *AudioHandler {
	if contentService == nil {
		panic("contentService cannot be nil")
	}
	if audioDir == "" {
		panic("audioDir cannot be empty")
	}
	if logger == nil {
		panic("logger cannot be nil for AudioHandler")
	}

	return &AudioHandler{
		contentService: contentService,
		audioDir:       audioDir,
		logger:         logger.With(slog.String("component", "audio_handler")),
	}
}

// ServeFile handles GET /audio/{id} requests. The recording is looked up by
// ID; its stored path is resolved strictly inside the media directory.
func (h *AudioHandler) ServeFile(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	idParam := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil || id <= 0 {
		log.Warn("invalid audio file ID", slog.String("id", idParam))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid audio file ID")
		return
	}

	file, err := h.contentService.GetAudioFile(r.Context(), id)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to load audio file"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	// The stored path is relative to the media root. Reject anything that
	// resolves outside it.
	cleaned := filepath.Clean(file.FilePath)
	if strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		log.Error("audio file path escapes media directory",
			slog.Int64("file_id", id))
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to load audio file")
		return
	}

	if file.MimeType != "" {
		w.Header().Set("Content-Type", file.MimeType)
	}
	http.ServeFile(w, r, filepath.Join(h.audioDir, cleaned))
}
