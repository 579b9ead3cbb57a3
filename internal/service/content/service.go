// Package content manages the study material catalogue: quiz questions with
// their answer choices, vocabulary words, skill nuggets and audio recordings.
// It is the editor-facing counterpart of the learner-facing review package.
package content

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/kotoba-app/kotoba-api/internal/domain"
	"github.com/kotoba-app/kotoba-api/internal/platform/logger"
	"github.com/kotoba-app/kotoba-api/internal/store"
)

// NewChoice describes one answer choice of a question being created.
type NewChoice struct {
	Text                string
	AnswerAudioBundleID *int64
	PromptAudioBundleID int64
}

// NewQuestion describes a quiz question being created. The skill nugget is
// addressed by summary and created on first use.
type NewQuestion struct {
	Name         string
	Explanation  string
	Text         string
	SkillSummary string
	Published    bool
	Choices      []NewChoice
}

// NewWord describes a vocabulary word being created.
type NewWord struct {
	Word          string
	Explanation   string
	SkillSummary  string
	AudioBundleID int64
	Published     bool
}

// NewRecording describes an audio recording being registered. A zero
// BundleID creates a fresh bundle named BundleName.
type NewRecording struct {
	BundleID   int64
	BundleName string
	Narrator   string
	FilePath   string
	MimeType   string
}

// Service implements content management on top of the stores.
type Service struct {
	questions store.QuestionStore
	words     store.WordStore
	skills    store.SkillStore
	audio     store.AudioStore
	runner    store.Runner
	logger    *slog.Logger
}

// NewService creates a content management Service.
// If logger is nil, a default logger will be used.
func NewService(
	questions store.QuestionStore,
	words store.WordStore,
	skills store.SkillStore,
	audio store.AudioStore,
	runner store.Runner,
	logger *slog.Logger,
) *Service {
	if questions == nil {
		panic("question store cannot be nil")
	}
	if words == nil {
		panic("word store cannot be nil")
	}
	if skills == nil {
		panic("skill store cannot be nil")
	}
	if audio == nil {
		panic("audio store cannot be nil")
	}
	if runner == nil {
		panic("transaction runner cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		questions: questions,
		words:     words,
		skills:    skills,
		audio:     audio,
		runner:    runner,
		logger:    logger.With(slog.String("component", "content_service")),
	}
}

// CreateQuestion creates a quiz question with its choices, resolving the
// skill nugget by summary. The whole graph lands in one transaction.
func (s *Service) CreateQuestion(ctx context.Context, in NewQuestion) (*domain.QuizQuestion, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var created *domain.QuizQuestion
	err := s.runner.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		nugget, err := s.skills.WithTx(tx).GetOrCreate(ctx, in.SkillSummary)
		if err != nil {
			return fmt.Errorf("failed to resolve skill nugget: %w", err)
		}

		question := &domain.QuizQuestion{
			Name:        in.Name,
			Explanation: in.Explanation,
			Text:        in.Text,
			SkillID:     nugget.ID,
			Published:   in.Published,
		}
		choices := make([]domain.AnswerChoice, len(in.Choices))
		for i, c := range in.Choices {
			choices[i] = domain.AnswerChoice{
				Text:                c.Text,
				AnswerAudioBundleID: c.AnswerAudioBundleID,
				PromptAudioBundleID: c.PromptAudioBundleID,
			}
		}

		created, err = s.questions.WithTx(tx).Create(ctx, question, choices)
		if err != nil {
			return fmt.Errorf("failed to create question: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Error("failed to create question",
			slog.String("error", err.Error()),
			slog.String("name", in.Name))
		return nil, err
	}

	log.Info("question created",
		slog.Int64("question_id", created.ID),
		slog.String("name", created.Name))
	return created, nil
}

// UpdateQuestion modifies an existing question's fields.
func (s *Service) UpdateQuestion(ctx context.Context, question *domain.QuizQuestion) error {
	return s.questions.Update(ctx, question)
}

// UpdateChoice modifies an existing answer choice.
func (s *Service) UpdateChoice(ctx context.Context, choice *domain.AnswerChoice) error {
	return s.questions.UpdateChoice(ctx, choice)
}

// SetQuestionPublished flips a question's visibility to learners.
func (s *Service) SetQuestionPublished(ctx context.Context, id int64, published bool) error {
	return s.questions.SetPublished(ctx, id, published)
}

// CreateWord creates a vocabulary word, resolving the skill nugget by summary.
func (s *Service) CreateWord(ctx context.Context, in NewWord) (*domain.Word, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var created *domain.Word
	err := s.runner.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		nugget, err := s.skills.WithTx(tx).GetOrCreate(ctx, in.SkillSummary)
		if err != nil {
			return fmt.Errorf("failed to resolve skill nugget: %w", err)
		}

		created, err = s.words.WithTx(tx).Create(ctx, &domain.Word{
			Word:          in.Word,
			Explanation:   in.Explanation,
			AudioBundleID: in.AudioBundleID,
			SkillNuggetID: nugget.ID,
			Published:     in.Published,
		})
		if err != nil {
			return fmt.Errorf("failed to create word: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Error("failed to create word",
			slog.String("error", err.Error()),
			slog.String("word", in.Word))
		return nil, err
	}

	log.Info("word created",
		slog.Int64("word_id", created.ID),
		slog.String("word", created.Word))
	return created, nil
}

// UpdateWord modifies an existing word's fields.
func (s *Service) UpdateWord(ctx context.Context, word *domain.Word) error {
	return s.words.Update(ctx, word)
}

// SetWordPublished flips a word's visibility to learners.
func (s *Service) SetWordPublished(ctx context.Context, id int64, published bool) error {
	return s.words.SetPublished(ctx, id, published)
}

// AddRecording registers an audio recording, creating the bundle and the
// narrator as needed, in one transaction.
func (s *Service) AddRecording(ctx context.Context, in NewRecording) (*domain.AudioFile, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var created *domain.AudioFile
	err := s.runner.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		audio := s.audio.WithTx(tx)

		bundleID := in.BundleID
		if bundleID == 0 {
			bundle, err := audio.CreateBundle(ctx, in.BundleName)
			if err != nil {
				return fmt.Errorf("failed to create audio bundle: %w", err)
			}
			bundleID = bundle.ID
		}

		narrator, err := audio.GetOrCreateNarrator(ctx, in.Narrator)
		if err != nil {
			return fmt.Errorf("failed to resolve narrator: %w", err)
		}

		created, err = audio.CreateFile(ctx, &domain.AudioFile{
			BundleID:   bundleID,
			NarratorID: narrator.ID,
			FilePath:   in.FilePath,
			MimeType:   in.MimeType,
		})
		if err != nil {
			return fmt.Errorf("failed to create audio file: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Error("failed to add recording",
			slog.String("error", err.Error()),
			slog.String("file_path", in.FilePath))
		return nil, err
	}

	log.Info("recording added",
		slog.Int64("file_id", created.ID),
		slog.Int64("bundle_id", created.BundleID))
	return created, nil
}

// GetAudioFile retrieves one recording's metadata, used when serving media.
func (s *Service) GetAudioFile(ctx context.Context, id int64) (*domain.AudioFile, error) {
	return s.audio.GetFile(ctx, id)
}

// ListSkills lists every skill nugget.
func (s *Service) ListSkills(ctx context.Context) ([]domain.SkillNugget, error) {
	return s.skills.List(ctx)
}

// ListBundles lists every audio bundle with its recordings.
func (s *Service) ListBundles(ctx context.Context) (map[int64][]domain.AudioFile, []domain.AudioBundle, error) {
	return s.audio.ListBundles(ctx)
}
