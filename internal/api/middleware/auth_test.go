package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kotoba-app/kotoba-api/internal/service/auth"
)

// mockJWTService is a func-field mock of auth.JWTService.
type mockJWTService struct {
	ValidateTokenFunc func(ctx context.Context, token string) (*auth.Claims, error)
}

func (m *mockJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	return "token", nil
}

func (m *mockJWTService) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
	if m.ValidateTokenFunc != nil {
		return m.ValidateTokenFunc(ctx, token)
	}
	return nil, auth.ErrInvalidToken
}

func runAuthenticated(t *testing.T, jwtService auth.JWTService, header string) (*httptest.ResponseRecorder, uuid.UUID, bool) {
	t.Helper()

	var capturedID uuid.UUID
	var found bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedID, found = GetUserID(r)
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/quiz/next", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()

	NewAuthMiddleware(jwtService).Authenticate(next).ServeHTTP(rec, req)
	return rec, capturedID, found
}

func TestAuthenticateValidToken(t *testing.T) {
	t.Parallel()
	userID := uuid.New()
	jwtService := &mockJWTService{
		ValidateTokenFunc: func(ctx context.Context, token string) (*auth.Claims, error) {
			assert.Equal(t, "good-token", token)
			return &auth.Claims{UserID: userID}, nil
		},
	}

	rec, capturedID, found := runAuthenticated(t, jwtService, "Bearer good-token")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, found)
	assert.Equal(t, userID, capturedID)
}

func TestAuthenticateMissingHeader(t *testing.T) {
	t.Parallel()
	rec, _, _ := runAuthenticated(t, &mockJWTService{}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateMalformedHeader(t *testing.T) {
	t.Parallel()

	for _, header := range []string{"good-token", "Basic abc", "Bearer a b"} {
		rec, _, _ := runAuthenticated(t, &mockJWTService{}, header)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}

func TestAuthenticateExpiredToken(t *testing.T) {
	t.Parallel()
	jwtService := &mockJWTService{
		ValidateTokenFunc: func(ctx context.Context, token string) (*auth.Claims, error) {
			return nil, auth.ErrExpiredToken
		},
	}

	rec, _, _ := runAuthenticated(t, jwtService, "Bearer stale")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Token expired")
}

func TestAuthenticateUnexpectedValidationError(t *testing.T) {
	t.Parallel()
	jwtService := &mockJWTService{
		ValidateTokenFunc: func(ctx context.Context, token string) (*auth.Claims, error) {
			return nil, assert.AnError
		},
	}

	rec, _, _ := runAuthenticated(t, jwtService, "Bearer whatever")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
