package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	appErrors "github.com/aaravmahajanofficial/storefront-console/internal/errors"
	"github.com/aaravmahajanofficial/storefront-console/internal/models"
	repository "github.com/aaravmahajanofficial/storefront-console/internal/repositories"
	service "github.com/aaravmahajanofficial/storefront-console/internal/services"
	"github.com/aaravmahajanofficial/storefront-console/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLimiter struct {
	limit  *repository.LoginLimit
	err    error
	resets int
}

func (l *stubLimiter) CheckLoginRateLimit(ctx context.Context, username string) (*repository.LoginLimit, error) {
	return l.limit, l.err
}

func (l *stubLimiter) ResetLoginRateLimit(ctx context.Context, username string) error {
	l.resets++
	return nil
}

func TestLoginLogout(t *testing.T) {
	t.Run("Success - Login then logout", func(t *testing.T) {
		// Arrange
		fake := testutils.NewFakeBackend(t)
		fake.AddUser("ada", "correct-horse", false, models.RoleCustomer)
		client, ctx := fake.Client(t)
		auth := service.NewSessionService(client, nil)

		// Act
		resp := auth.Login(ctx, &models.LoginRequest{Username: "ada", Password: "correct-horse"})

		// Assert
		require.True(t, resp.Success)
		assert.True(t, auth.IsAuthenticated())
		assert.Equal(t, "ada", auth.User().Username)

		// Act
		err := auth.Logout(ctx)

		// Assert
		require.NoError(t, err)
		assert.False(t, auth.IsAuthenticated())
		assert.Nil(t, auth.User())
		assert.Nil(t, auth.Snapshot().User)
	})

	t.Run("Failure - Wrong password is a false, not an error", func(t *testing.T) {
		// Arrange
		fake := testutils.NewFakeBackend(t)
		fake.AddUser("ada", "correct-horse", false, models.RoleCustomer)
		client, ctx := fake.Client(t)
		auth := service.NewSessionService(client, nil)

		// Act
		resp := auth.Login(ctx, &models.LoginRequest{Username: "ada", Password: "nope"})

		// Assert
		assert.False(t, resp.Success)
		assert.Equal(t, "Invalid credentials", resp.Message)
		assert.False(t, auth.IsAuthenticated())
	})

	t.Run("Failure - Throttled login never reaches the backend", func(t *testing.T) {
		// Arrange
		fake := testutils.NewFakeBackend(t)
		client, ctx := fake.Client(t)
		auth := service.NewSessionService(client, &stubLimiter{limit: &repository.LoginLimit{RetryAfter: 30}})

		// Act
		resp := auth.Login(ctx, &models.LoginRequest{Username: "ada", Password: "x"})

		// Assert
		assert.False(t, resp.Success)
		assert.Equal(t, 30, resp.RetryAfter)
		assert.Zero(t, fake.Calls("POST /auth/login/"))
	})

	t.Run("Success - Limiter outage does not block login", func(t *testing.T) {
		// Arrange
		fake := testutils.NewFakeBackend(t)
		fake.AddUser("ada", "correct-horse", false, models.RoleCustomer)
		client, ctx := fake.Client(t)
		limiter := &stubLimiter{err: errors.New("redis down")}
		auth := service.NewSessionService(client, limiter)

		// Act
		resp := auth.Login(ctx, &models.LoginRequest{Username: "ada", Password: "correct-horse"})

		// Assert
		assert.True(t, resp.Success)
		assert.Equal(t, 1, limiter.resets)
	})

	t.Run("Success - Logout clears the user even when the backend fails", func(t *testing.T) {
		// Arrange
		s := newShopper(t)
		s.fake.Server.Close()

		// Act
		err := s.auth.Logout(s.ctx)

		// Assert
		assert.Error(t, err)
		assert.False(t, s.auth.IsAuthenticated())
	})
}

func TestSessionRefresh(t *testing.T) {
	t.Run("Success - Active session loads the profile", func(t *testing.T) {
		// Arrange
		s := newShopper(t)
		s.auth.Restore(nil)

		// Act
		err := s.auth.Refresh(s.ctx)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "ada", s.auth.User().Username)
	})

	t.Run("Success - Anonymous session clears the mirror", func(t *testing.T) {
		// Arrange
		fake := testutils.NewFakeBackend(t)
		client, ctx := fake.Client(t)
		auth := service.NewSessionService(client, nil)
		auth.Restore(&models.User{ID: 1, Username: "stale"})

		// Act
		err := auth.Refresh(ctx)

		// Assert
		require.NoError(t, err)
		assert.False(t, auth.IsAuthenticated())
		assert.Zero(t, fake.Calls("GET /auth/user/"))
	})

	t.Run("Failure - Backend down", func(t *testing.T) {
		// Arrange
		fake := testutils.NewFakeBackend(t)
		client, ctx := fake.Client(t)
		auth := service.NewSessionService(client, nil)
		fake.Server.Close()

		// Act
		err := auth.Refresh(ctx)

		// Assert
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadGateway, appErr.StatusCode)
		assert.Equal(t, "Failed to check session", appErr.Message)
	})
}

func TestRegister(t *testing.T) {
	// Arrange
	fake := testutils.NewFakeBackend(t)
	fake.AddUser("ada", "correct-horse", false, models.RoleCustomer)
	client, ctx := fake.Client(t)
	auth := service.NewSessionService(client, nil)

	// Act
	user, err := auth.Register(ctx, &models.RegisterRequest{Username: "grace", Email: "grace@example.com", Password: "hopper-1906"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "grace", user.Username)
	assert.False(t, auth.IsAuthenticated(), "registering does not log in")

	// Act
	_, err = auth.Register(ctx, &models.RegisterRequest{Username: "ada", Email: "ada@example.com", Password: "whatever-1"})

	// Assert
	appErr, ok := appErrors.IsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, appErr.StatusCode)
	assert.Equal(t, "Username already taken", appErr.Message)
}
