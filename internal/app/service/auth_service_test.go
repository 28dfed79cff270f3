package service

import (
	"context"
	"testing"
	"time"

	"github.com/mohdchalhoub/hamoudiWebsite-sub001/config"
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authTestConfig(t *testing.T) *config.Config {
	t.Helper()
	hash, err := util.HashPassword("correct horse")
	require.NoError(t, err)

	return &config.Config{
		JWT: config.JWTConfig{
			Secret:      "test-secret",
			TokenExpiry: time.Hour,
		},
		Admin: config.AdminConfig{
			Username:     "admin",
			PasswordHash: hash,
		},
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc := NewAuthService(authTestConfig(t), nil)

	token, expiresAt, err := svc.Login(context.Background(), "admin", "correct horse")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := util.ValidateToken(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "admin", claims.Role)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc := NewAuthService(authTestConfig(t), nil)

	token, _, err := svc.Login(context.Background(), "admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Empty(t, token)
}

func TestAuthService_Login_WrongUsername(t *testing.T) {
	svc := NewAuthService(authTestConfig(t), nil)

	_, _, err := svc.Login(context.Background(), "root", "correct horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
