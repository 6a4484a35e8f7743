package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/suggestion-box/internal/config"
	"github.com/spec-kit/suggestion-box/internal/repository"
	apperrors "github.com/spec-kit/suggestion-box/pkg/util/errorutil"
)

func newTestAuthService(t *testing.T) (*AuthService, *UserService) {
	t.Helper()
	cfg := config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 5,
		BcryptCost:            bcrypt.MinCost,
	}
	users := repository.NewMemoryUserRepository()
	return NewAuthService(cfg, users), NewUserService(users, bcrypt.MinCost)
}

func TestLoginSuccess(t *testing.T) {
	authSvc, userSvc := newTestAuthService(t)

	created, err := userSvc.Create(context.Background(), UserCreateInput{
		Email:    "jane@company.com",
		Name:     "Jane",
		Password: "password",
	})
	require.NoError(t, err)

	user, token, exp, err := authSvc.Login(context.Background(), "jane@company.com", "password")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
	assert.NotEmpty(t, token)
	assert.True(t, exp.After(time.Now()))

	claims, err := authSvc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, claims.UserID)
	assert.Equal(t, created.Role, claims.Role)
}

func TestLoginRefreshesLastLogin(t *testing.T) {
	authSvc, userSvc := newTestAuthService(t)

	created, err := userSvc.Create(context.Background(), UserCreateInput{
		Email:    "jane@company.com",
		Name:     "Jane",
		Password: "password",
	})
	require.NoError(t, err)
	require.NotNil(t, created.LastLogin)

	time.Sleep(2 * time.Millisecond)

	_, _, _, err = authSvc.Login(context.Background(), "jane@company.com", "password")
	require.NoError(t, err)

	fetched, err := userSvc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched.LastLogin)
	assert.True(t, fetched.LastLogin.After(*created.LastLogin))
}

func TestLoginInvalidCredentials(t *testing.T) {
	authSvc, userSvc := newTestAuthService(t)

	_, err := userSvc.Create(context.Background(), UserCreateInput{
		Email:    "jane@company.com",
		Name:     "Jane",
		Password: "password",
	})
	require.NoError(t, err)

	// unknown email and wrong password are indistinguishable to the caller
	for _, tc := range []struct{ email, password string }{
		{"nobody@company.com", "password"},
		{"jane@company.com", "wrong"},
	} {
		_, _, _, err := authSvc.Login(context.Background(), tc.email, tc.password)
		require.Error(t, err)
		domainErr := apperrors.ToDomainError(err)
		assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
		assert.Equal(t, "invalid credentials", domainErr.Message)
	}
}

func TestLoginEmailCaseInsensitive(t *testing.T) {
	authSvc, userSvc := newTestAuthService(t)

	_, err := userSvc.Create(context.Background(), UserCreateInput{
		Email:    "jane@company.com",
		Name:     "Jane",
		Password: "password",
	})
	require.NoError(t, err)

	_, token, _, err := authSvc.Login(context.Background(), "Jane@Company.COM", "password")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestChangePassword(t *testing.T) {
	authSvc, userSvc := newTestAuthService(t)

	created, err := userSvc.Create(context.Background(), UserCreateInput{
		Email:    "jane@company.com",
		Name:     "Jane",
		Password: "password",
	})
	require.NoError(t, err)

	err = authSvc.ChangePassword(context.Background(), created.ID, "wrong", "newpass")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(err).Code)

	require.NoError(t, authSvc.ChangePassword(context.Background(), created.ID, "password", "newpass"))

	_, _, _, err = authSvc.Login(context.Background(), "jane@company.com", "password")
	require.Error(t, err)
	_, _, _, err = authSvc.Login(context.Background(), "jane@company.com", "newpass")
	require.NoError(t, err)
}
