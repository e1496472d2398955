package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestTokenRoundTrip(t *testing.T) {
	userID := uuid.New()

	token, err := GenerateToken(testSecret, userID, "user@example.com", "USER", time.Hour)
	require.NoError(t, err)

	identity, err := ParseToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, userID, identity.UserID)
	assert.Equal(t, "user@example.com", identity.Email)
	assert.Equal(t, "USER", identity.Role)
}

func TestExpiredTokenRejected(t *testing.T) {
	token, err := GenerateToken(testSecret, uuid.New(), "user@example.com", "USER", -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(testSecret, token)
	assert.Error(t, err)
}

func TestWrongSecretRejected(t *testing.T) {
	token, err := GenerateToken(testSecret, uuid.New(), "user@example.com", "USER", time.Hour)
	require.NoError(t, err)

	_, err = ParseToken("other-secret", token)
	assert.Error(t, err)
}

func TestGarbageTokenRejected(t *testing.T) {
	_, err := ParseToken(testSecret, "not.a.token")
	assert.Error(t, err)
}
