package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	appErrors "github.com/aaravmahajanofficial/storefront-console/internal/errors"
	"github.com/aaravmahajanofficial/storefront-console/internal/models"
	"github.com/aaravmahajanofficial/storefront-console/internal/utils/response"
	"github.com/golang-jwt/jwt/v5"
)

type userContextKey struct{}

var UserContextKey = userContextKey{}

const sessionIssuer = "storefront-console"

// SessionCodec signs and verifies the browser session cookie. The token's ID is the session id.
type SessionCodec struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

func NewSessionCodec(secret string, ttl time.Duration) *SessionCodec {
	return &SessionCodec{key: []byte(secret), ttl: ttl, now: time.Now}
}

func (c *SessionCodec) Issue(sessionID string) (string, time.Time, error) {
	now := c.now()
	expiresAt := now.Add(c.ttl)

	claims := &models.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			Issuer:    sessionIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing session cookie: %w", err)
	}

	return signed, expiresAt, nil
}

// Parse returns the session id of a valid, unexpired token.
func (c *SessionCodec) Parse(token string) (string, error) {
	claims := &models.SessionClaims{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		// check the signing method
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return c.key, nil
	}, jwt.WithIssuer(sessionIssuer), jwt.WithTimeFunc(c.now), jwt.WithExpirationRequired())
	if err != nil {
		return "", fmt.Errorf("parsing session cookie: %w", err)
	}

	if !parsed.Valid || claims.ID == "" {
		return "", errors.New("invalid session cookie")
	}

	return claims.ID, nil
}

// WithUser records the mirrored user of the current session for the gates below.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, UserContextKey, user)
}

func UserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(UserContextKey).(*models.User)
	return user
}

// RequireAuth rejects requests whose session mirror holds no user.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserFromContext(r.Context()) == nil {
			LoggerFromContext(r.Context()).Warn("Unauthenticated request to protected route")
			response.Error(w, appErrors.UnauthorizedError("Authentication required"))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireStaff admits staff accounts only.
func RequireStaff(next http.Handler) http.Handler {
	return RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := UserFromContext(r.Context())
		if !user.IsStaff {
			LoggerFromContext(r.Context()).Warn("Non-staff user on admin route", slog.Int64("userId", user.ID))
			response.Error(w, appErrors.ForbiddenError("Admin access required"))
			return
		}

		next.ServeHTTP(w, r)
	}))
}

// RequireRole admits staff holding one of roles. Admins pass every role check.
func RequireRole(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return RequireStaff(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := UserFromContext(r.Context())
			if !user.HasRole(roles...) {
				LoggerFromContext(r.Context()).Warn("Missing role for admin action",
					slog.Int64("userId", user.ID), slog.String("role", string(user.Role)))
				response.Error(w, appErrors.ForbiddenError("Your role does not allow this action"))
				return
			}

			next.ServeHTTP(w, r)
		}))
	}
}
