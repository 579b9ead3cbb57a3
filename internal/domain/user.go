package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User-specific validation errors
var (
	// ErrUserIDEmpty is returned when a user ID is empty or nil.
	ErrUserIDEmpty = errors.New("user ID cannot be empty")

	// ErrUserEmailEmpty is returned when a user's email is empty.
	ErrUserEmailEmpty = errors.New("user email cannot be empty")

	// ErrUserEmailInvalid is returned when a user's email has no '@'.
	ErrUserEmailInvalid = errors.New("user email must contain '@'")

	// ErrUserEmailTooLong is returned when a user's email exceeds 254 characters.
	ErrUserEmailTooLong = errors.New("user email can be 254 characters at maximum")
)

// User represents a learner account. Password hashes are stored alongside the
// user but are never exposed through the API layer.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewUser creates a new User with the given email and password hash.
// It generates a new UUID for the user ID and sets the timestamps.
// Returns an error if validation fails.
func NewUser(email, passwordHash string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrUserIDEmpty
	}

	if u.Email == "" {
		return ErrUserEmailEmpty
	}

	if len(u.Email) > 254 {
		return ErrUserEmailTooLong
	}

	if !strings.Contains(u.Email, "@") {
		return ErrUserEmailInvalid
	}

	return nil
}
