package review

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/kotoba-app/kotoba-api/internal/domain"
	"github.com/kotoba-app/kotoba-api/internal/store"
)

// mockQuestionStore is a func-field mock of store.QuestionStore.
type mockQuestionStore struct {
	GetByIDFunc        func(ctx context.Context, id int64) (*domain.QuizQuestion, error)
	GetWithChoicesFunc func(ctx context.Context, id int64) (*domain.QuizQuestion, []domain.AnswerChoice, error)
	ListDueFunc        func(ctx context.Context, userID uuid.UUID, now time.Time, includeFuture bool, limit int) ([]store.DueQuestion, error)
	ListUnseenFunc     func(ctx context.Context, userID uuid.UUID, minSkillLevel, limit int) ([]domain.QuizQuestion, error)
}

func (m *mockQuestionStore) GetByID(ctx context.Context, id int64) (*domain.QuizQuestion, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, store.ErrQuestionNotFound
}

func (m *mockQuestionStore) GetWithChoices(
	ctx context.Context,
	id int64,
) (*domain.QuizQuestion, []domain.AnswerChoice, error) {
	if m.GetWithChoicesFunc != nil {
		return m.GetWithChoicesFunc(ctx, id)
	}
	return nil, nil, store.ErrQuestionNotFound
}

func (m *mockQuestionStore) ListDue(
	ctx context.Context,
	userID uuid.UUID,
	now time.Time,
	includeFuture bool,
	limit int,
) ([]store.DueQuestion, error) {
	if m.ListDueFunc != nil {
		return m.ListDueFunc(ctx, userID, now, includeFuture, limit)
	}
	return []store.DueQuestion{}, nil
}

func (m *mockQuestionStore) ListUnseen(
	ctx context.Context,
	userID uuid.UUID,
	minSkillLevel, limit int,
) ([]domain.QuizQuestion, error) {
	if m.ListUnseenFunc != nil {
		return m.ListUnseenFunc(ctx, userID, minSkillLevel, limit)
	}
	return []domain.QuizQuestion{}, nil
}

func (m *mockQuestionStore) Create(
	ctx context.Context,
	question *domain.QuizQuestion,
	choices []domain.AnswerChoice,
) (*domain.QuizQuestion, error) {
	return question, nil
}

func (m *mockQuestionStore) Update(ctx context.Context, question *domain.QuizQuestion) error {
	return nil
}

func (m *mockQuestionStore) UpdateChoice(ctx context.Context, choice *domain.AnswerChoice) error {
	return nil
}

func (m *mockQuestionStore) SetPublished(ctx context.Context, id int64, published bool) error {
	return nil
}

func (m *mockQuestionStore) WithTx(tx *sql.Tx) store.QuestionStore { return m }

// mockWordStore is a func-field mock of store.WordStore.
type mockWordStore struct {
	GetByIDFunc    func(ctx context.Context, id int64) (*domain.Word, error)
	ListUnseenFunc func(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Word, error)

	listUnseenCalls int
}

func (m *mockWordStore) GetByID(ctx context.Context, id int64) (*domain.Word, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, store.ErrWordNotFound
}

func (m *mockWordStore) ListUnseen(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) ([]domain.Word, error) {
	m.listUnseenCalls++
	if m.ListUnseenFunc != nil {
		return m.ListUnseenFunc(ctx, userID, limit)
	}
	return []domain.Word{}, nil
}

func (m *mockWordStore) Create(ctx context.Context, word *domain.Word) (*domain.Word, error) {
	return word, nil
}

func (m *mockWordStore) Update(ctx context.Context, word *domain.Word) error { return nil }

func (m *mockWordStore) SetPublished(ctx context.Context, id int64, published bool) error {
	return nil
}

func (m *mockWordStore) WithTx(tx *sql.Tx) store.WordStore { return m }

// mockProgressStore is a func-field mock of store.ProgressStore. Call
// counters track the writes the service is expected to make.
type mockProgressStore struct {
	GetQuestionDataFunc            func(ctx context.Context, userID uuid.UUID, questionID int64) (*domain.QuestionData, error)
	CreateQuestionDataIfAbsentFunc func(ctx context.Context, data *domain.QuestionData) (bool, error)
	UpdateQuestionDataFunc         func(ctx context.Context, data *domain.QuestionData) error
	BumpSkillFunc                  func(ctx context.Context, userID uuid.UUID, nuggetID int64, delta int) (int, error)
	GetMetricsFunc                 func(ctx context.Context, userID uuid.UUID) (*domain.UserMetrics, error)

	insertedAnswers   []*domain.AnswerData
	insertedWords     []*domain.WordData
	insertedExercises []*domain.ExerciseData
	bumps             []int64
	counterIncrements int
}

func (m *mockProgressStore) GetQuestionData(
	ctx context.Context,
	userID uuid.UUID,
	questionID int64,
) (*domain.QuestionData, error) {
	if m.GetQuestionDataFunc != nil {
		return m.GetQuestionDataFunc(ctx, userID, questionID)
	}
	return nil, store.ErrQuestionDataNotFound
}

func (m *mockProgressStore) CreateQuestionDataIfAbsent(
	ctx context.Context,
	data *domain.QuestionData,
) (bool, error) {
	if m.CreateQuestionDataIfAbsentFunc != nil {
		return m.CreateQuestionDataIfAbsentFunc(ctx, data)
	}
	return true, nil
}

func (m *mockProgressStore) UpdateQuestionData(ctx context.Context, data *domain.QuestionData) error {
	if m.UpdateQuestionDataFunc != nil {
		return m.UpdateQuestionDataFunc(ctx, data)
	}
	return nil
}

func (m *mockProgressStore) BumpSkill(
	ctx context.Context,
	userID uuid.UUID,
	nuggetID int64,
	delta int,
) (int, error) {
	m.bumps = append(m.bumps, nuggetID)
	if m.BumpSkillFunc != nil {
		return m.BumpSkillFunc(ctx, userID, nuggetID, delta)
	}
	return delta, nil
}

func (m *mockProgressStore) SkillLevel(ctx context.Context, userID uuid.UUID, nuggetID int64) (int, error) {
	return 0, nil
}

func (m *mockProgressStore) InsertAnswerData(ctx context.Context, data *domain.AnswerData) error {
	m.insertedAnswers = append(m.insertedAnswers, data)
	return nil
}

func (m *mockProgressStore) InsertWordData(ctx context.Context, data *domain.WordData) error {
	m.insertedWords = append(m.insertedWords, data)
	return nil
}

func (m *mockProgressStore) InsertExerciseData(ctx context.Context, data *domain.ExerciseData) error {
	m.insertedExercises = append(m.insertedExercises, data)
	return nil
}

func (m *mockProgressStore) GetMetrics(ctx context.Context, userID uuid.UUID) (*domain.UserMetrics, error) {
	if m.GetMetricsFunc != nil {
		return m.GetMetricsFunc(ctx, userID)
	}
	return &domain.UserMetrics{UserID: userID}, nil
}

func (m *mockProgressStore) IncrementWordCounters(ctx context.Context, userID uuid.UUID) error {
	m.counterIncrements++
	return nil
}

func (m *mockProgressStore) ResetDailyCounters(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

func (m *mockProgressStore) ResetBreakCounters(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

func (m *mockProgressStore) WithTx(tx *sql.Tx) store.ProgressStore { return m }

// mockAudioStore is a func-field mock of store.AudioStore.
type mockAudioStore struct {
	FilesForFunc func(ctx context.Context, bundleID int64) ([]domain.AudioFile, error)
}

func (m *mockAudioStore) FilesFor(ctx context.Context, bundleID int64) ([]domain.AudioFile, error) {
	if m.FilesForFunc != nil {
		return m.FilesForFunc(ctx, bundleID)
	}
	return []domain.AudioFile{}, nil
}

func (m *mockAudioStore) GetFile(ctx context.Context, id int64) (*domain.AudioFile, error) {
	return nil, store.ErrAudioFileNotFound
}

func (m *mockAudioStore) CreateBundle(ctx context.Context, name string) (*domain.AudioBundle, error) {
	return &domain.AudioBundle{Name: name}, nil
}

func (m *mockAudioStore) CreateFile(ctx context.Context, file *domain.AudioFile) (*domain.AudioFile, error) {
	return file, nil
}

func (m *mockAudioStore) GetOrCreateNarrator(ctx context.Context, name string) (*domain.Narrator, error) {
	return &domain.Narrator{Name: name}, nil
}

func (m *mockAudioStore) ListBundles(ctx context.Context) (map[int64][]domain.AudioFile, []domain.AudioBundle, error) {
	return map[int64][]domain.AudioFile{}, []domain.AudioBundle{}, nil
}

func (m *mockAudioStore) WithTx(tx *sql.Tx) store.AudioStore { return m }

// mockRunner executes the transaction body directly, with no database.
type mockRunner struct {
	calls int
}

func (m *mockRunner) RunInTransaction(ctx context.Context, fn store.TxFn) error {
	m.calls++
	return fn(ctx, nil)
}

// firstChooser always picks index zero and never shuffles, making card
// assembly deterministic.
type firstChooser struct{}

func (firstChooser) Intn(n int) int                     { return 0 }
func (firstChooser) Shuffle(n int, swap func(i, j int)) {}
