package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aaravmahajanofficial/storefront-console/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-console/internal/errors"
	"github.com/aaravmahajanofficial/storefront-console/internal/models"
	"github.com/aaravmahajanofficial/storefront-console/internal/sessions"
	"github.com/aaravmahajanofficial/storefront-console/internal/utils"
	"github.com/aaravmahajanofficial/storefront-console/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// currentSession fetches the browser session bound by the session middleware.
func currentSession(w http.ResponseWriter, r *http.Request) (*sessions.Session, bool) {
	s := sessions.FromContext(r.Context())
	if s == nil {
		middleware.LoggerFromContext(r.Context()).Error("Handler reached without a session")
		response.Error(w, errors.InternalError("Session unavailable"))
		return nil, false
	}

	return s, true
}

type AuthHandler struct {
	validator *validator.Validate
	registry  *sessions.Registry
	codec     *middleware.SessionCodec
}

func NewAuthHandler(validate *validator.Validate, registry *sessions.Registry, codec *middleware.SessionCodec) *AuthHandler {
	return &AuthHandler{validator: validate, registry: registry, codec: codec}
}

// Session godoc
//	@Summary		Current session
//	@Description	Asks the backend whether the browser's session is still active and returns the signed in user, if any.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	models.SessionState		"Session state"
//	@Failure		502	{object}	response.ErrorResponse	"Backend unreachable"
//	@Router			/auth/session [get]
func (h *AuthHandler) Session() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		s, ok := currentSession(w, r)
		if !ok {
			return
		}

		if err := s.Auth.Refresh(r.Context()); err != nil {
			logger.Warn("Failed to refresh session", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, s.Auth.Snapshot())
	}
}

// Login godoc
//	@Summary		Log in
//	@Description	Logs in against the backend. Repeated failures for one username are throttled.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			credentials	body		models.LoginRequest		true	"Credentials"
//	@Success		200			{object}	models.LoginResponse	"Logged in"
//	@Failure		400			{object}	response.ErrorResponse	"Invalid input"
//	@Failure		401			{object}	response.ErrorResponse	"Invalid credentials"
//	@Failure		429			{object}	response.ErrorResponse	"Too many attempts"
//	@Router			/auth/login [post]
func (h *AuthHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		s, ok := currentSession(w, r)
		if !ok {
			return
		}

		var req models.LoginRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid login input")
			return
		}

		logger = logger.With(slog.String("username", req.Username))

		resp := s.Auth.Login(r.Context(), &req)
		if !resp.Success {
			if resp.RetryAfter > 0 {
				logger.Warn("Login throttled", slog.Int("retryAfter", resp.RetryAfter))
				w.Header().Set("Retry-After", strconv.Itoa(resp.RetryAfter))
				response.Error(w, errors.TooManyRequestsError(resp.Message))
				return
			}

			logger.Info("Login failed", slog.Int("remainingTries", resp.RemainingTries))
			response.Error(w, errors.UnauthorizedError(resp.Message))
			return
		}

		// the previous user's mirrors must not leak into this one
		s.Checkout.Reset()
		if err := s.Cart.Refresh(r.Context()); err != nil {
			logger.Warn("Failed to load cart after login", slog.Any("error", err))
		}

		logger.Info("User logged in")
		response.Success(w, http.StatusOK, resp)
	}
}

// Logout godoc
//	@Summary		Log out
//	@Description	Ends the backend session and replaces the browser session with a fresh one. The local session is dropped even when the backend call fails.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	models.SessionState	"Logged out"
//	@Router			/auth/logout [post]
func (h *AuthHandler) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		s, ok := currentSession(w, r)
		if !ok {
			return
		}

		if err := s.Logout(r.Context()); err != nil {
			logger.Warn("Backend logout failed, session cleared anyway", slog.Any("error", err))
		}

		fresh := h.registry.Renew(r.Context(), w, h.codec, s)

		logger.Info("User logged out", slog.String("newSessionId", fresh.ID))
		response.Success(w, http.StatusOK, fresh.Auth.Snapshot())
	}
}

// Register godoc
//	@Summary		Register
//	@Description	Creates a customer account. The new user still has to log in.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			account	body		models.RegisterRequest	true	"Account"
//	@Success		201		{object}	models.User				"Account created"
//	@Failure		400		{object}	response.ErrorResponse	"Invalid input or username taken"
//	@Router			/auth/register [post]
func (h *AuthHandler) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		s, ok := currentSession(w, r)
		if !ok {
			return
		}

		var req models.RegisterRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid registration input")
			return
		}

		user, err := s.Auth.Register(r.Context(), &req)
		if err != nil {
			logger.Warn("Registration failed", slog.String("username", req.Username), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("User registered", slog.Int64("userId", user.ID))
		response.Success(w, http.StatusCreated, user)
	}
}
