package identity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_GenerateAndParse(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	token, expiresAt, err := tm.GenerateToken("p-1", "jperez@swp.cl")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "p-1", claims.PrincipalID)
	assert.Equal(t, "jperez@swp.cl", claims.Email)
}

func TestTokenManager_WrongSecretRejected(t *testing.T) {
	tm := NewTokenManager("secret-a", time.Hour)
	token, _, err := tm.GenerateToken("p-1", "jperez@swp.cl")
	require.NoError(t, err)

	other := NewTokenManager("secret-b", time.Hour)
	_, err = other.ParseToken(token)
	assert.Error(t, err)
}

func TestTokenManager_ExpiredTokenRejected(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Nanosecond)
	token, _, err := tm.GenerateToken("p-1", "jperez@swp.cl")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	_, err = tm.ParseToken(token)
	assert.Error(t, err)
}

func TestTokenManager_DefaultTTL(t *testing.T) {
	tm := NewTokenManager("test-secret", 0)
	assert.Equal(t, 8*time.Hour, tm.TTL())
}

func TestPassword_HashAndCompare(t *testing.T) {
	hash, err := HashPassword("secreta1", 4)
	require.NoError(t, err)
	assert.NoError(t, ComparePassword(hash, "secreta1"))
	assert.Error(t, ComparePassword(hash, "otra"))
}
