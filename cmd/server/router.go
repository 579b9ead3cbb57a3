package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/kotoba-app/kotoba-api/internal/api"
	apiMiddleware "github.com/kotoba-app/kotoba-api/internal/api/middleware"
)

// setupRouter configures the application router with all routes and
// middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(app.userService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)
	quizHandler := api.NewQuizHandler(app.reviewService, app.logger)
	contentHandler := api.NewContentHandler(app.contentService, app.logger)
	audioHandler := api.NewAudioHandler(app.contentService, app.config.Media.AudioDir, app.logger)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Study session endpoints
			r.Get("/quiz/next", quizHandler.NextCard)
			r.Post("/quiz/answer", quizHandler.SubmitAnswer)

			// Audio playback
			r.Get("/audio/{id}", audioHandler.ServeFile)

			// Editor endpoints
			r.Post("/content/questions", contentHandler.CreateQuestion)
			r.Put("/content/questions/{id}/publish", contentHandler.PublishQuestion)
			r.Post("/content/words", contentHandler.CreateWord)
			r.Put("/content/words/{id}/publish", contentHandler.PublishWord)
			r.Post("/content/recordings", contentHandler.AddRecording)
			r.Get("/content/skills", contentHandler.ListSkills)
			r.Get("/content/bundles", contentHandler.ListBundles)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
