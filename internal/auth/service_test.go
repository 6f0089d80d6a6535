package auth

import (
	"context"
	"testing"
	"time"

	"roomhub/internal/config"
	"roomhub/internal/database"
	"roomhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestService(t *testing.T) *Service {
	t.Helper()

	store, err := database.Open("sqlite", ":memory:")
	require.NoError(t, err, "failed to open test database")
	t.Cleanup(func() { store.Close() })

	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:    []byte("test-secret-key"),
			ExpiresIn: time.Hour,
		},
	}
	return NewService(store, cfg)
}

func registerTestUser(t *testing.T, svc *Service, username, email, password string) *models.Session {
	t.Helper()

	session, err := svc.Register(context.Background(), &models.RegisterRequest{
		Name:     username,
		Username: username,
		Email:    email,
		Password: password,
	})
	require.NoError(t, err)
	return session
}

func TestRegister(t *testing.T) {
	svc := setupTestService(t)

	session, err := svc.Register(context.Background(), &models.RegisterRequest{
		Name:     "Dennis",
		Username: "  MixedCase  ",
		Email:    "dennis@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, session.Token)
	assert.Equal(t, "mixedcase", session.User.Username, "usernames are stored lower-case")
	assert.Equal(t, models.DefaultAvatar, session.User.Avatar)
	assert.NotEqual(t, "password123", session.User.PasswordHash, "password must not be stored in clear")
}

func TestRegisterValidation(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  models.RegisterRequest
	}{
		{"missing fields", models.RegisterRequest{Username: "abc"}},
		{"bad email", models.RegisterRequest{Username: "abc", Email: "not-an-email", Password: "password123"}},
		{"short password", models.RegisterRequest{Username: "abc", Email: "a@example.com", Password: "short"}},
		{"short username", models.RegisterRequest{Username: "ab", Email: "a@example.com", Password: "password123"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, &tt.req)
			assert.Error(t, err)
		})
	}
}

func TestLogin(t *testing.T) {
	svc := setupTestService(t)
	registerTestUser(t, svc, "alice", "alice@example.com", "password123")

	session, err := svc.Login(context.Background(), &models.LoginRequest{
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, "alice", session.User.Username)
	assert.Empty(t, session.User.PasswordHash)
}

func TestLoginBadCredentials(t *testing.T) {
	svc := setupTestService(t)
	registerTestUser(t, svc, "alice", "alice@example.com", "password123")

	// Wrong password and unknown email answer the same error.
	_, err := svc.Login(context.Background(), &models.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), &models.LoginRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestTokenRoundTrip(t *testing.T) {
	svc := setupTestService(t)
	session := registerTestUser(t, svc, "alice", "alice@example.com", "password123")

	user, err := svc.GetUserFromToken(context.Background(), session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, user.ID)
	assert.Equal(t, "alice", user.Username)
}

func TestGetUserFromTokenRejectsGarbage(t *testing.T) {
	svc := setupTestService(t)

	_, err := svc.GetUserFromToken(context.Background(), "not.a.token")
	assert.Error(t, err)
}
