package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/kotoba-app/kotoba-api/internal/domain"
)

// WordStore defines the interface for vocabulary-word persistence.
type WordStore interface {
	// GetByID retrieves a word by its unique ID.
	// Returns ErrWordNotFound if the word does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Word, error)

	// ListUnseen retrieves up to limit published words the user has never
	// been shown, ordered by word ID ascending.
	ListUnseen(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Word, error)

	// Create saves a new word.
	Create(ctx context.Context, word *domain.Word) (*domain.Word, error)

	// Update modifies an existing word's editable fields.
	// Returns ErrWordNotFound if the word does not exist.
	Update(ctx context.Context, word *domain.Word) error

	// SetPublished flips a word's published flag.
	// Returns ErrWordNotFound if the word does not exist.
	SetPublished(ctx context.Context, id int64, published bool) error

	// WithTx returns a WordStore bound to the given transaction.
	WithTx(tx *sql.Tx) WordStore
}

// SkillStore defines the interface for skill-nugget persistence. Nuggets are
// created lazily on first reference and never modified afterwards.
type SkillStore interface {
	// GetByID retrieves a skill nugget by its unique ID.
	// Returns ErrNotFound if the nugget does not exist.
	GetByID(ctx context.Context, id int64) (*domain.SkillNugget, error)

	// GetOrCreate retrieves the nugget with the given summary, creating it
	// if it does not exist yet.
	GetOrCreate(ctx context.Context, summary string) (*domain.SkillNugget, error)

	// List retrieves all skill nuggets ordered by ID.
	List(ctx context.Context) ([]domain.SkillNugget, error)

	// WithTx returns a SkillStore bound to the given transaction.
	WithTx(tx *sql.Tx) SkillStore
}
