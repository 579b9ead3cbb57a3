package store

import (
	"context"
	"database/sql"

	"github.com/kotoba-app/kotoba-api/internal/domain"
)

// AudioStore defines the interface for the audio media catalogue: bundles of
// alternate recordings and the files inside them.
type AudioStore interface {
	// FilesFor retrieves all recordings in the given bundle.
	// An empty result is NOT an error at this level; callers that require a
	// non-empty bundle enforce that themselves (see ErrInconsistent).
	FilesFor(ctx context.Context, bundleID int64) ([]domain.AudioFile, error)

	// GetFile retrieves a single recording by ID.
	// Returns ErrAudioFileNotFound if the file does not exist.
	GetFile(ctx context.Context, id int64) (*domain.AudioFile, error)

	// CreateBundle creates a new, empty bundle with the given name.
	CreateBundle(ctx context.Context, name string) (*domain.AudioBundle, error)

	// CreateFile registers a recording inside a bundle.
	CreateFile(ctx context.Context, file *domain.AudioFile) (*domain.AudioFile, error)

	// GetOrCreateNarrator retrieves the narrator with the given name,
	// creating it if absent. An empty name maps to "anonymous".
	GetOrCreateNarrator(ctx context.Context, name string) (*domain.Narrator, error)

	// ListBundles retrieves all bundles together with their recordings.
	ListBundles(ctx context.Context) (map[int64][]domain.AudioFile, []domain.AudioBundle, error)

	// WithTx returns an AudioStore bound to the given transaction.
	WithTx(tx *sql.Tx) AudioStore
}
