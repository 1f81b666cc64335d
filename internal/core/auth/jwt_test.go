package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret")
	userID := uuid.New()

	token, expiresIn, err := svc.GenerateToken(userID, "owner@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, int64(24*60*60), expiresIn)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "owner@example.com", claims.Email)
}

func TestJWTWrongSecret(t *testing.T) {
	token, _, err := NewJWTService("secret-a").GenerateToken(uuid.New(), "owner@example.com")
	require.NoError(t, err)

	_, err = NewJWTService("secret-b").ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTMalformedToken(t *testing.T) {
	_, err := NewJWTService("secret").ValidateToken("not-a-jwt")
	assert.Error(t, err)
}

func TestPasswordHashAndVerify(t *testing.T) {
	hash, err := HashPassword("s3cure-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cure-pass", hash)

	assert.NoError(t, VerifyPassword(hash, "s3cure-pass"))
	assert.Error(t, VerifyPassword(hash, "wrong-pass"))
}
