package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/suggestion-box/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 5)

	token, exp, err := tm.GenerateToken("u1", domain.RoleAdmin)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, exp.After(time.Now()))

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestParseTokenWrongSecret(t *testing.T) {
	tm := NewTokenManager("test-secret", 5)
	other := NewTokenManager("different-secret", 5)

	token, _, err := tm.GenerateToken("u1", domain.RoleEmployee)
	require.NoError(t, err)

	_, err = other.ParseToken(token)
	require.Error(t, err)
}

func TestParseTokenGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", 5)

	_, err := tm.ParseToken("not-a-jwt")
	require.Error(t, err)
}

func TestParseTokenExpired(t *testing.T) {
	tm := NewTokenManager("test-secret", 5)

	claims := &Claims{
		UserID: "u1",
		Role:   domain.RoleEmployee,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = tm.ParseToken(token)
	require.Error(t, err)
}

func TestPasswordHashAndCompare(t *testing.T) {
	hash, err := HashPassword("password", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "password", hash)

	require.NoError(t, ComparePassword(hash, "password"))
	require.Error(t, ComparePassword(hash, "wrong"))
}
