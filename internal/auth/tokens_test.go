package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKeyHex = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

func TestNewTokenService_RejectsBadKeys(t *testing.T) {
	_, err := NewTokenService("too-short", 15*time.Minute)
	assert.Error(t, err)

	// Right length, not hex.
	badHex := "zz23456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"
	_, err = NewTokenService(badHex, 15*time.Minute)
	assert.Error(t, err)
}

func TestGenerateAndVerifyAccessToken(t *testing.T) {
	ts, err := NewTokenService(testKeyHex, 15*time.Minute)
	require.NoError(t, err)

	token, err := ts.GenerateAccessToken("user-42")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ts.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", claims.UserID)
	assert.Equal(t, "user-42", claims.Subject)
	assert.NotEmpty(t, claims.TokenID)
}

func TestVerifyAccessToken_Expired(t *testing.T) {
	ts, err := NewTokenService(testKeyHex, -1*time.Minute)
	require.NoError(t, err)

	token, err := ts.GenerateAccessToken("user-42")
	require.NoError(t, err)

	_, err = ts.VerifyAccessToken(token)
	assert.Error(t, err)
}

func TestVerifyAccessToken_WrongKey(t *testing.T) {
	ts, err := NewTokenService(testKeyHex, 15*time.Minute)
	require.NoError(t, err)

	otherKey := "fedcba9876543210fedcba9876543210fedcba9876543210fedcba9876543210"
	other, err := NewTokenService(otherKey, 15*time.Minute)
	require.NoError(t, err)

	token, err := ts.GenerateAccessToken("user-42")
	require.NoError(t, err)

	_, err = other.VerifyAccessToken(token)
	assert.Error(t, err)

	_, err = ts.VerifyAccessToken("v4.local.garbage")
	assert.Error(t, err)
}
