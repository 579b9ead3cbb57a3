package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kotoba-app/kotoba-api/internal/config"
)

const testJWTSecret = "0123456789abcdef0123456789abcdef"

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:          testJWTSecret,
		TokenLifetimeHours: 24,
	}
}

func TestNewJWTServiceRejectsShortSecret(t *testing.T) {
	t.Parallel()
	_, err := NewJWTService(config.AuthConfig{
		JWTSecret:          "short",
		TokenLifetimeHours: 24,
	})
	assert.Error(t, err)
}

func TestGenerateAndValidateToken(t *testing.T) {
	t.Parallel()
	service, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	userID := uuid.New()
	token, err := service.GenerateToken(context.Background(), userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.NotEmpty(t, claims.ID)
	assert.True(t, claims.ExpiresAt.After(claims.IssuedAt))
}

func TestValidateTokenExpired(t *testing.T) {
	t.Parallel()
	service, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	impl, ok := service.(*hmacJWTService)
	require.True(t, ok)

	issuedAt := time.Now().Add(-48 * time.Hour)
	impl.timeFunc = func() time.Time { return issuedAt }

	token, err := service.GenerateToken(context.Background(), uuid.New())
	require.NoError(t, err)

	impl.timeFunc = time.Now
	_, err = service.ValidateToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateTokenToleratesClockSkew(t *testing.T) {
	t.Parallel()
	service, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	impl, ok := service.(*hmacJWTService)
	require.True(t, ok)

	// Issue a token that expired one minute ago; the two-minute leeway must
	// still accept it.
	now := time.Now()
	impl.timeFunc = func() time.Time { return now.Add(-24*time.Hour - time.Minute) }

	token, err := service.GenerateToken(context.Background(), uuid.New())
	require.NoError(t, err)

	impl.timeFunc = func() time.Time { return now }
	_, err = service.ValidateToken(context.Background(), token)
	assert.NoError(t, err)
}

func TestValidateTokenWrongKey(t *testing.T) {
	t.Parallel()
	service, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	other, err := NewJWTService(config.AuthConfig{
		JWTSecret:          "ffffffffffffffffffffffffffffffff",
		TokenLifetimeHours: 24,
	})
	require.NoError(t, err)

	token, err := other.GenerateToken(context.Background(), uuid.New())
	require.NoError(t, err)

	_, err = service.ValidateToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenGarbage(t *testing.T) {
	t.Parallel()
	service, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	_, err = service.ValidateToken(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
