package auth

import (
	"testing"
	"time"

	"rasoi/globals"
	"rasoi/middleware"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setTestSecret(t *testing.T) {
	t.Helper()
	old := globals.JwtSecret
	globals.JwtSecret = []byte("test-secret")
	t.Cleanup(func() { globals.JwtSecret = old })
}

func TestTokenRoundTrip(t *testing.T) {
	setTestSecret(t)

	token, err := GenerateToken("u123")
	require.NoError(t, err)

	claims, err := middleware.ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "u123", claims.UserID)
}

func TestTokenExpiryBoundary(t *testing.T) {
	setTestSecret(t)

	// A token with six days left verifies; one past its window does not.
	valid, err := signToken("u123", time.Now().Add(6*24*time.Hour))
	require.NoError(t, err)
	_, err = middleware.ValidateJWT(valid)
	assert.NoError(t, err)

	expired, err := signToken("u123", time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	_, err = middleware.ValidateJWT(expired)
	assert.Error(t, err)
}

func TestTokenWrongSecret(t *testing.T) {
	globals.JwtSecret = []byte("one-secret")
	token, err := GenerateToken("u123")
	require.NoError(t, err)

	globals.JwtSecret = []byte("another-secret")
	t.Cleanup(func() { globals.JwtSecret = nil })
	_, err = middleware.ValidateJWT(token)
	assert.Error(t, err)
}

func TestTokenGarbage(t *testing.T) {
	setTestSecret(t)

	for _, tok := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := middleware.ValidateJWT(tok)
		assert.Error(t, err, "token %q", tok)
	}
}
