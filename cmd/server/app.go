package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/kotoba-app/kotoba-api/internal/config"
	"github.com/kotoba-app/kotoba-api/internal/domain/scheduler"
	"github.com/kotoba-app/kotoba-api/internal/platform/postgres"
	"github.com/kotoba-app/kotoba-api/internal/service/auth"
	"github.com/kotoba-app/kotoba-api/internal/service/content"
	"github.com/kotoba-app/kotoba-api/internal/service/review"
	"github.com/kotoba-app/kotoba-api/internal/service/skill"
	"github.com/kotoba-app/kotoba-api/internal/store"
	"github.com/kotoba-app/kotoba-api/internal/task"
	"golang.org/x/crypto/bcrypt"
)

// application holds the shared application dependencies so wiring and
// cleanup live in one place.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	questionStore store.QuestionStore
	wordStore     store.WordStore
	skillStore    store.SkillStore
	audioStore    store.AudioStore
	progressStore store.ProgressStore
	userStore     store.UserStore

	jwtService     auth.JWTService
	userService    *auth.UserService
	reviewService  review.Service
	contentService *content.Service

	maintenanceRunner *task.Runner
}

// newApplication creates an application instance with all dependencies
// initialized. The database connection and logger must already be
// established.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		slog.Int("token_lifetime_hours", cfg.Auth.TokenLifetimeHours))

	app.questionStore = postgres.NewPostgresQuestionStore(db, logger)
	app.wordStore = postgres.NewPostgresWordStore(db, logger)
	app.skillStore = postgres.NewPostgresSkillStore(db, logger)
	app.audioStore = postgres.NewPostgresAudioStore(db, logger)
	app.progressStore = postgres.NewPostgresProgressStore(db, logger)
	app.userStore = postgres.NewPostgresUserStore(db, logger)

	runner := store.NewDBRunner(db)

	bcryptCost := cfg.Auth.BCryptCost
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	app.userService = auth.NewUserService(
		app.userStore,
		auth.NewBcryptHasher(bcryptCost),
		auth.NewBcryptVerifier(),
		app.jwtService,
		logger,
	)

	policy := review.Policy{
		BatchSize:             cfg.Quiz.BatchSize,
		MaxNewWordsPerDay:     cfg.Quiz.MaxNewWordsPerDay,
		MaxNewWordsPerSitting: cfg.Quiz.MaxNewWordsPerSitting,
		ColdQuizSkillLevel:    cfg.Quiz.ColdQuizSkillLevel,
	}
	app.reviewService = review.NewService(review.Config{
		Questions: app.questionStore,
		Words:     app.wordStore,
		Progress:  app.progressStore,
		Audio:     app.audioStore,
		Skills:    skill.NewTracker(app.progressStore, logger),
		Scheduler: scheduler.NewDefaultService(),
		Runner:    runner,
		Policy:    &policy,
		Logger:    logger,
	})

	app.contentService = content.NewService(
		app.questionStore,
		app.wordStore,
		app.skillStore,
		app.audioStore,
		runner,
		logger,
	)

	app.maintenanceRunner = task.NewRunner(
		[]task.Job{
			task.NewDailyResetJob(app.progressStore, logger),
			task.NewBreakResetJob(app.progressStore, cfg.Scheduler.BreakAfter, logger),
		},
		task.RunnerConfig{TickInterval: cfg.Scheduler.TickInterval},
		logger,
	)
	app.maintenanceRunner.Start()

	logger.Info("application initialized")
	return app, nil
}

// Run starts the HTTP server and blocks until shutdown.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.maintenanceRunner != nil {
		app.maintenanceRunner.Stop()
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", slog.String("error", err.Error()))
		}
	}

	app.logger.Info("application shutdown completed")
}
