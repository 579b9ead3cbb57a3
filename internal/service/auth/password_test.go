package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasherRoundTrip(t *testing.T) {
	t.Parallel()
	hasher := NewBcryptHasher(bcrypt.MinCost)
	verifier := NewBcryptVerifier()

	hash, err := hasher.Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.NoError(t, verifier.Compare(hash, "correct horse battery staple"))
	assert.Error(t, verifier.Compare(hash, "wrong password"))
}

func TestBcryptHasherDefaultsCost(t *testing.T) {
	t.Parallel()
	hasher := NewBcryptHasher(0)
	assert.Equal(t, bcrypt.DefaultCost, hasher.cost)
}

func TestValidatePassword(t *testing.T) {
	t.Parallel()

	assert.NoError(t, validatePassword("12345678"))
	assert.ErrorIs(t, validatePassword("1234567"), ErrPasswordTooShort)
	assert.ErrorIs(t, validatePassword(strings.Repeat("x", 73)), ErrPasswordTooLong)
	assert.NoError(t, validatePassword(strings.Repeat("x", 72)))
}
