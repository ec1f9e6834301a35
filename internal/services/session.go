package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/aaravmahajanofficial/storefront-console/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-console/internal/backend"
	"github.com/aaravmahajanofficial/storefront-console/internal/errors"
	"github.com/aaravmahajanofficial/storefront-console/internal/models"
	repository "github.com/aaravmahajanofficial/storefront-console/internal/repositories"
)

// SessionService mirrors the backend's view of who is logged in for one browser session.
type SessionService struct {
	api     backend.AuthAPI
	limiter repository.RateLimitRepository

	mu      sync.RWMutex
	user    *models.User
	loading bool
}

// NewSessionService builds the mirror. limiter may be nil, which disables login throttling.
func NewSessionService(api backend.AuthAPI, limiter repository.RateLimitRepository) *SessionService {
	return &SessionService{api: api, limiter: limiter}
}

// Refresh asks the backend whether the session is active and reloads the profile.
func (s *SessionService) Refresh(ctx context.Context) error {
	s.setLoading(true)
	defer s.setLoading(false)

	active, err := s.api.CheckSession(ctx)
	if err != nil {
		return errors.FromUpstream(err, "check session")
	}

	if !active {
		s.setUser(nil)
		return nil
	}

	user, err := s.api.CurrentUser(ctx)
	if err != nil {
		return errors.FromUpstream(err, "load user profile")
	}

	s.setUser(user)
	return nil
}

// Login never returns an error: every failure is reported as Success=false.
func (s *SessionService) Login(ctx context.Context, req *models.LoginRequest) *models.LoginResponse {
	logger := middleware.LoggerFromContext(ctx)

	s.setLoading(true)
	defer s.setLoading(false)

	remaining := 0
	if s.limiter != nil {
		limit, err := s.limiter.CheckLoginRateLimit(ctx, req.Username)
		switch {
		case err != nil:
			logger.Warn("Login throttle unavailable, continuing", slog.Any("error", err))
		case !limit.Allowed:
			return &models.LoginResponse{
				Success:    false,
				Message:    "Too many login attempts. Please try again later.",
				RetryAfter: limit.RetryAfter,
			}
		default:
			remaining = limit.Remaining
		}
	}

	if err := s.api.EnsureCSRF(ctx); err != nil {
		logger.Warn("Failed to obtain csrf token", slog.Any("error", err))
		return &models.LoginResponse{Success: false, Message: errors.FromUpstream(err, "log in").Message}
	}

	user, err := s.api.Login(ctx, req)
	if err != nil {
		logger.Info("Login rejected", slog.String("username", req.Username), slog.Any("error", err))
		return &models.LoginResponse{
			Success:        false,
			Message:        errors.FromUpstream(err, "log in").Message,
			RemainingTries: remaining,
		}
	}

	s.setUser(user)

	if s.limiter != nil {
		if err := s.limiter.ResetLoginRateLimit(ctx, req.Username); err != nil {
			logger.Warn("Failed to reset login throttle", slog.Any("error", err))
		}
	}

	return &models.LoginResponse{Success: true, User: user}
}

// Logout clears the mirror whatever the backend answers. The error is informational.
func (s *SessionService) Logout(ctx context.Context) error {
	err := s.api.Logout(ctx)
	s.setUser(nil)

	if err != nil {
		return errors.FromUpstream(err, "log out")
	}

	return nil
}

// Register creates an account. It does not log the new user in.
func (s *SessionService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	if err := s.api.EnsureCSRF(ctx); err != nil {
		return nil, errors.FromUpstream(err, "register")
	}

	user, err := s.api.Register(ctx, req)
	if err != nil {
		return nil, errors.FromUpstream(err, "register")
	}

	return user, nil
}

func (s *SessionService) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.user != nil
}

// User returns a copy of the mirrored profile, nil when logged out.
func (s *SessionService) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return nil
	}

	user := *s.user
	return &user
}

func (s *SessionService) Snapshot() models.SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := models.SessionState{IsAuthenticated: s.user != nil, Loading: s.loading}
	if s.user != nil {
		user := *s.user
		state.User = &user
	}

	return state
}

// Restore reinstates a persisted profile without asking the backend.
func (s *SessionService) Restore(user *models.User) {
	s.setUser(user)
}

func (s *SessionService) setUser(user *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = user
}

func (s *SessionService) setLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loading = loading
}
