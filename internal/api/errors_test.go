package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"github.com/kotoba-app/kotoba-api/internal/service/auth"
	"github.com/kotoba-app/kotoba-api/internal/service/review"
	"github.com/kotoba-app/kotoba-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"invalid credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{"question not found", review.ErrQuestionNotFound, http.StatusNotFound},
		{"word not found", review.ErrWordNotFound, http.StatusNotFound},
		{"store not found", store.ErrNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("context: %w", store.ErrUserNotFound), http.StatusNotFound},
		{"email exists", store.ErrEmailExists, http.StatusConflict},
		{"invalid answer", review.ErrInvalidAnswer, http.StatusBadRequest},
		{"short password", auth.ErrPasswordTooShort, http.StatusBadRequest},
		{"inconsistent content", store.ErrInconsistent, http.StatusInternalServerError},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil error", nil, "An unexpected error occurred"},
		{"invalid credentials", auth.ErrInvalidCredentials, "Invalid email or password"},
		{"question not found", review.ErrQuestionNotFound, "Question not found"},
		{"email exists", store.ErrEmailExists, "Email already exists"},
		{"internal detail is hidden", errors.New("pq: connection refused"), "An unexpected error occurred"},
		{"inconsistent detail is hidden", fmt.Errorf("%w: bundle 3 empty", store.ErrInconsistent), "An unexpected error occurred"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, GetSafeErrorMessage(tc.err))
		})
	}
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()
	validate := validator.New()

	err := validate.Struct(RegisterRequest{Email: "not-an-email", Password: "password123"})
	assert.Equal(t, "Invalid Email: invalid email format", SanitizeValidationError(err))

	err = validate.Struct(RegisterRequest{Email: "a@example.com", Password: "short"})
	assert.Equal(t, "Invalid Password: too short", SanitizeValidationError(err))

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("not a validator error")))
}
