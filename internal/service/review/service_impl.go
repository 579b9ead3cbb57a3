package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kotoba-app/kotoba-api/internal/domain"
	"github.com/kotoba-app/kotoba-api/internal/domain/scheduler"
	"github.com/kotoba-app/kotoba-api/internal/platform/logger"
	"github.com/kotoba-app/kotoba-api/internal/service/skill"
	"github.com/kotoba-app/kotoba-api/internal/store"
)

// Policy carries the tunables of the card selection loop.
type Policy struct {
	// BatchSize caps how many candidates each selection query fetches.
	BatchSize int
	// MaxNewWordsPerDay is the daily budget of new-word exposures. A word
	// is only served while the day counter has not passed this value.
	MaxNewWordsPerDay int
	// MaxNewWordsPerSitting is the since-last-break budget. Both budgets
	// must hold for a new word to be served.
	MaxNewWordsPerSitting int
	// ColdQuizSkillLevel is the skill level a nugget must exceed before its
	// never-asked questions are offered.
	ColdQuizSkillLevel int
}

// NewDefaultPolicy returns the standard selection policy.
func NewDefaultPolicy() Policy {
	return Policy{
		BatchSize:             5,
		MaxNewWordsPerDay:     18,
		MaxNewWordsPerSitting: 6,
		ColdQuizSkillLevel:    1,
	}
}

// Verify interface compliance at compile time
var _ Service = (*serviceImpl)(nil)

// serviceImpl implements the review Service interface.
type serviceImpl struct {
	questions store.QuestionStore
	words     store.WordStore
	progress  store.ProgressStore
	audio     store.AudioStore
	skills    *skill.Tracker
	sched     scheduler.Service
	runner    store.Runner
	chooser   Chooser
	policy    Policy
	now       func() time.Time
	logger    *slog.Logger
}

// Config gathers the collaborators of the review service.
type Config struct {
	Questions store.QuestionStore
	Words     store.WordStore
	Progress  store.ProgressStore
	Audio     store.AudioStore
	Skills    *skill.Tracker
	Scheduler scheduler.Service
	Runner    store.Runner
	Chooser   Chooser          // optional; defaults to math/rand
	Policy    *Policy          // optional; defaults to NewDefaultPolicy
	Now       func() time.Time // optional; defaults to time.Now
	Logger    *slog.Logger
}

// NewService creates a new review Service implementation.
func NewService(cfg Config) Service {
	if cfg.Questions == nil {
		panic("question store cannot be nil")
	}
	if cfg.Words == nil {
		panic("word store cannot be nil")
	}
	if cfg.Progress == nil {
		panic("progress store cannot be nil")
	}
	if cfg.Audio == nil {
		panic("audio store cannot be nil")
	}
	if cfg.Skills == nil {
		panic("skill tracker cannot be nil")
	}
	if cfg.Scheduler == nil {
		panic("scheduler cannot be nil")
	}
	if cfg.Runner == nil {
		panic("transaction runner cannot be nil")
	}

	chooser := cfg.Chooser
	if chooser == nil {
		chooser = NewChooser()
	}

	policy := NewDefaultPolicy()
	if cfg.Policy != nil {
		policy = *cfg.Policy
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	return &serviceImpl{
		questions: cfg.Questions,
		words:     cfg.Words,
		progress:  cfg.Progress,
		audio:     cfg.Audio,
		skills:    cfg.Skills,
		sched:     cfg.Scheduler,
		runner:    cfg.Runner,
		chooser:   chooser,
		policy:    policy,
		now:       now,
		logger:    log.With(slog.String("component", "review_service")),
	}
}

// NextCard implements Service.NextCard.
//
// Selection order: due questions, then never-asked questions with a warm
// enough skill nugget, then new words within both exposure budgets, then a
// peek at the earliest future question. Empty deck means nil card, nil error.
func (s *serviceImpl) NextCard(ctx context.Context, userID uuid.UUID) (domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := s.now().UTC()

	due, err := s.questions.ListDue(ctx, userID, now, false, s.policy.BatchSize)
	if err != nil {
		return nil, NewNextCardError("failed to list due questions", err)
	}
	if len(due) > 0 {
		log.Debug("serving due question",
			slog.String("user_id", userID.String()),
			slog.Int64("question_id", due[0].Question.ID))
		return s.buildQuizCard(ctx, due[0].Question.ID, &due[0].Data, 0)
	}

	fresh, err := s.questions.ListUnseen(ctx, userID, s.policy.ColdQuizSkillLevel, s.policy.BatchSize)
	if err != nil {
		return nil, NewNextCardError("failed to list unseen questions", err)
	}
	if len(fresh) > 0 {
		log.Debug("serving unseen question",
			slog.String("user_id", userID.String()),
			slog.Int64("question_id", fresh[0].ID))
		return s.buildQuizCard(ctx, fresh[0].ID, nil, 0)
	}

	metrics, err := s.progress.GetMetrics(ctx, userID)
	if err != nil {
		return nil, NewNextCardError("failed to get user metrics", err)
	}
	if metrics.NewWordsToday <= s.policy.MaxNewWordsPerDay &&
		metrics.NewWordsSinceBreak <= s.policy.MaxNewWordsPerSitting {
		words, err := s.words.ListUnseen(ctx, userID, s.policy.BatchSize)
		if err != nil {
			return nil, NewNextCardError("failed to list unseen words", err)
		}
		if len(words) > 0 {
			log.Debug("serving new word",
				slog.String("user_id", userID.String()),
				slog.Int64("word_id", words[0].ID))
			return s.buildWordCard(ctx, &words[0])
		}
	}

	ahead, err := s.questions.ListDue(ctx, userID, now, true, s.policy.BatchSize)
	if err != nil {
		return nil, NewNextCardError("failed to peek future questions", err)
	}
	if len(ahead) > 0 {
		log.Debug("serving future question early",
			slog.String("user_id", userID.String()),
			slog.Int64("question_id", ahead[0].Question.ID))
		return s.buildQuizCard(ctx, ahead[0].Question.ID, &ahead[0].Data, 0)
	}

	log.Debug("no cards available", slog.String("user_id", userID.String()))
	return nil, nil
}

// Submit implements Service.Submit.
func (s *serviceImpl) Submit(
	ctx context.Context,
	userID uuid.UUID,
	answered domain.Answered,
) (domain.Card, error) {
	switch a := answered.(type) {
	case *domain.AnsweredQuestion:
		return s.submitQuestion(ctx, userID, a)
	case *domain.AnsweredWord:
		return s.submitWord(ctx, userID, a)
	case *domain.AnsweredExercise:
		return s.submitExercise(ctx, userID, a)
	default:
		return nil, ErrInvalidAnswer
	}
}

// submitQuestion records one quiz-question answer. All state changes happen
// in a single transaction; a miss re-serves the same question with the same
// right answer so the learner sees the correction immediately.
func (s *serviceImpl) submitQuestion(
	ctx context.Context,
	userID uuid.UUID,
	a *domain.AnsweredQuestion,
) (domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if a.QuestionID <= 0 || a.RightAnswerID <= 0 {
		return nil, ErrInvalidAnswer
	}

	question, choices, err := s.questions.GetWithChoices(ctx, a.QuestionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, NewSubmitError("failed to load question", err)
	}

	// The echoed right answer must belong to the question; anything else
	// means the stored content shifted under a served card.
	if findChoice(choices, a.RightAnswerID) == nil {
		log.Error("right answer does not belong to question",
			slog.String("user_id", userID.String()),
			slog.Int64("question_id", a.QuestionID),
			slog.Int64("right_answer_id", a.RightAnswerID))
		return nil, fmt.Errorf(
			"%w: answer choice %d does not belong to question %d",
			store.ErrInconsistent, a.RightAnswerID, a.QuestionID,
		)
	}

	correct := a.IsCorrect()
	now := s.now().UTC()

	var updated *domain.QuestionData
	err = s.runner.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		progress := s.progress.WithTx(tx)
		skills := s.skills.WithTx(tx)

		prev, err := progress.GetQuestionData(ctx, userID, a.QuestionID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("failed to get question data: %w", err)
		}

		var bonus int
		if prev == nil {
			// First answer: try to create the row. Losing the insert race
			// means another request answered first, so fall through to the
			// tracked path against its state.
			next, b, err := s.sched.Advance(userID, a.QuestionID, nil, correct, now)
			if err != nil {
				return fmt.Errorf("failed to advance schedule: %w", err)
			}
			inserted, err := progress.CreateQuestionDataIfAbsent(ctx, next)
			if err != nil {
				return fmt.Errorf("failed to create question data: %w", err)
			}
			if inserted {
				updated, bonus = next, b
			} else {
				prev, err = progress.GetQuestionData(ctx, userID, a.QuestionID)
				if err != nil {
					return fmt.Errorf("failed to re-read question data: %w", err)
				}
			}
		}

		if updated == nil {
			next, b, err := s.sched.Advance(userID, a.QuestionID, prev, correct, now)
			if err != nil {
				return fmt.Errorf("failed to advance schedule: %w", err)
			}
			if err := progress.UpdateQuestionData(ctx, next); err != nil {
				return fmt.Errorf("failed to update question data: %w", err)
			}
			updated, bonus = next, b
		}

		if bonus > 0 {
			if _, err := skills.Bump(ctx, userID, question.SkillID, bonus); err != nil {
				return err
			}
		}

		return progress.InsertAnswerData(ctx, &domain.AnswerData{
			UserID:             userID,
			QuestionID:         a.QuestionID,
			PromptAudioID:      a.PromptAudioID,
			CorrectChoiceID:    a.RightAnswerID,
			AnsweredChoiceID:   a.AnsweredID,
			ActiveAnswerTimeMs: a.ActiveAnswerTimeMs,
			FullAnswerTimeMs:   a.FullAnswerTimeMs,
			Correct:            correct,
			AnsweredAt:         now,
		})
	})
	if err != nil {
		if errors.Is(err, store.ErrInconsistent) {
			return nil, err
		}
		log.Error("failed to submit question answer",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.Int64("question_id", a.QuestionID))
		return nil, NewSubmitError("failed to record question answer", err)
	}

	log.Info("question answer recorded",
		slog.String("user_id", userID.String()),
		slog.Int64("question_id", a.QuestionID),
		slog.Bool("correct", correct),
		slog.Int("streak", updated.CorrectStreak),
		slog.Int("due_delay", updated.DueDelay))

	if !correct {
		// Serve the same question again, keeping the right answer stable so
		// the learner can close the loop on the miss.
		return s.buildQuizCard(ctx, a.QuestionID, updated, a.RightAnswerID)
	}

	return s.NextCard(ctx, userID)
}

// submitWord records one new-word exposure: the audit row, a one-point skill
// bump for the word's nugget and both exposure counters, atomically.
func (s *serviceImpl) submitWord(
	ctx context.Context,
	userID uuid.UUID,
	a *domain.AnsweredWord,
) (domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if a.WordID <= 0 {
		return nil, ErrInvalidAnswer
	}

	word, err := s.words.GetByID(ctx, a.WordID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrWordNotFound
		}
		return nil, NewSubmitError("failed to load word", err)
	}

	now := s.now().UTC()
	err = s.runner.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		progress := s.progress.WithTx(tx)
		skills := s.skills.WithTx(tx)

		if err := progress.InsertWordData(ctx, &domain.WordData{
			UserID:       userID,
			WordID:       a.WordID,
			AudioTimes:   a.AudioTimes,
			AnswerTimeMs: a.AnswerTimeMs,
			AnsweredAt:   now,
		}); err != nil {
			return err
		}

		if _, err := skills.Bump(ctx, userID, word.SkillNuggetID, 1); err != nil {
			return err
		}

		return progress.IncrementWordCounters(ctx, userID)
	})
	if err != nil {
		log.Error("failed to submit word answer",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.Int64("word_id", a.WordID))
		return nil, NewSubmitError("failed to record word exposure", err)
	}

	log.Info("word exposure recorded",
		slog.String("user_id", userID.String()),
		slog.Int64("word_id", a.WordID))

	return s.NextCard(ctx, userID)
}

// submitExercise records one pronunciation-exercise round. Exercises revisit
// known words, so the new-word counters stay untouched.
func (s *serviceImpl) submitExercise(
	ctx context.Context,
	userID uuid.UUID,
	a *domain.AnsweredExercise,
) (domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if a.WordID <= 0 {
		return nil, ErrInvalidAnswer
	}

	word, err := s.words.GetByID(ctx, a.WordID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrWordNotFound
		}
		return nil, NewSubmitError("failed to load word", err)
	}

	now := s.now().UTC()
	err = s.runner.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		progress := s.progress.WithTx(tx)
		skills := s.skills.WithTx(tx)

		if err := progress.InsertExerciseData(ctx, &domain.ExerciseData{
			UserID:             userID,
			WordID:             a.WordID,
			AudioTimes:         a.AudioTimes,
			ActiveAnswerTimeMs: a.ActiveAnswerTimeMs,
			FullAnswerTimeMs:   a.FullAnswerTimeMs,
			AnswerLevel:        a.AnswerLevel,
			AnsweredAt:         now,
		}); err != nil {
			return err
		}

		_, err := skills.Bump(ctx, userID, word.SkillNuggetID, 1)
		return err
	})
	if err != nil {
		log.Error("failed to submit exercise answer",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.Int64("word_id", a.WordID))
		return nil, NewSubmitError("failed to record exercise round", err)
	}

	log.Info("exercise round recorded",
		slog.String("user_id", userID.String()),
		slog.Int64("word_id", a.WordID),
		slog.Int("answer_level", a.AnswerLevel))

	return s.NextCard(ctx, userID)
}

// buildQuizCard assembles a servable quiz card. retainedRightID pins the
// right answer when re-serving a missed question; zero means pick one at
// random. data carries the scheduling state when the question is tracked.
func (s *serviceImpl) buildQuizCard(
	ctx context.Context,
	questionID int64,
	data *domain.QuestionData,
	retainedRightID int64,
) (domain.Card, error) {
	question, choices, err := s.questions.GetWithChoices(ctx, questionID)
	if err != nil {
		// The question id came out of selection or a progress row moments
		// ago; a miss here means the data is torn, not that the client is
		// stale.
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf(
				"%w: question %d vanished after selection",
				store.ErrInconsistent, questionID,
			)
		}
		return nil, NewNextCardError("failed to load question with choices", err)
	}

	if len(choices) == 0 {
		return nil, fmt.Errorf(
			"%w: question %d has no answer choices",
			store.ErrInconsistent, questionID,
		)
	}

	var right *domain.AnswerChoice
	if retainedRightID != 0 {
		right = findChoice(choices, retainedRightID)
		if right == nil {
			return nil, fmt.Errorf(
				"%w: retained right answer %d not among choices of question %d",
				store.ErrInconsistent, retainedRightID, questionID,
			)
		}
	} else {
		right = &choices[s.chooser.Intn(len(choices))]
	}

	files, err := s.audio.FilesFor(ctx, right.PromptAudioBundleID)
	if err != nil {
		return nil, NewNextCardError("failed to load prompt audio bundle", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf(
			"%w: audio bundle %d has no recordings",
			store.ErrInconsistent, right.PromptAudioBundleID,
		)
	}
	promptAudio := files[s.chooser.Intn(len(files))]

	shuffled := make([]domain.AnswerChoice, len(choices))
	copy(shuffled, choices)
	s.chooser.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	card := &domain.QuizCard{
		Question:      *question,
		PromptAudio:   promptAudio,
		RightAnswerID: right.ID,
		Choices:       shuffled,
	}
	if data != nil {
		card.DueDelay = data.DueDelay
		due := data.DueDate
		card.DueDate = &due
	}
	return card, nil
}

// buildWordCard assembles a servable word card with one random recording.
func (s *serviceImpl) buildWordCard(ctx context.Context, word *domain.Word) (domain.Card, error) {
	files, err := s.audio.FilesFor(ctx, word.AudioBundleID)
	if err != nil {
		return nil, NewNextCardError("failed to load word audio bundle", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf(
			"%w: audio bundle %d has no recordings",
			store.ErrInconsistent, word.AudioBundleID,
		)
	}

	return &domain.WordCard{
		Word:  *word,
		Audio: files[s.chooser.Intn(len(files))],
	}, nil
}

// findChoice returns the choice with the given ID, or nil.
func findChoice(choices []domain.AnswerChoice, id int64) *domain.AnswerChoice {
	for i := range choices {
		if choices[i].ID == id {
			return &choices[i]
		}
	}
	return nil
}
