package sessions

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront-console/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-console/internal/backend"
)

type sessionContextKey struct{}

func WithSession(ctx context.Context, s *Session) context.Context {
	ctx = context.WithValue(ctx, sessionContextKey{}, s)
	ctx = backend.WithJar(ctx, s.Jar)

	return middleware.WithUser(ctx, s.Auth.User())
}

func FromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(sessionContextKey{}).(*Session)
	return s
}

// Middleware binds the browser's session to the request: its cookie jar rides in the
// context for backend calls and its user drives the auth gates. Unknown or invalid
// cookies get a fresh session.
func (r *Registry) Middleware(codec *middleware.SessionCodec) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := req.Context()
			logger := middleware.LoggerFromContext(ctx)

			var s *Session
			if cookie, err := req.Cookie(r.cfg.CookieName); err == nil {
				id, err := codec.Parse(cookie.Value)
				if err != nil {
					logger.Debug("Ignoring invalid session cookie", slog.Any("error", err))
				} else {
					s, _ = r.Get(ctx, id)
				}
			}

			if s == nil {
				s = r.Create()
				r.issueCookie(ctx, w, codec, s)
			}

			logger = logger.With(slog.String("sessionId", s.ID))
			ctx = middleware.WithLogger(WithSession(ctx, s), logger)

			next.ServeHTTP(w, req.WithContext(ctx))

			if err := r.Save(context.WithoutCancel(ctx), s); err != nil {
				logger.Warn("Failed to persist session snapshot", slog.Any("error", err))
			}
		})
	}
}

// Renew replaces old with a fresh anonymous session: old and its snapshot are destroyed
// and the browser gets a new cookie. Used on logout so nothing of the previous user
// survives under the old id.
func (r *Registry) Renew(ctx context.Context, w http.ResponseWriter, codec *middleware.SessionCodec, old *Session) *Session {
	r.Destroy(ctx, old.ID)

	s := r.Create()
	r.issueCookie(ctx, w, codec, s)

	return s
}

func (r *Registry) issueCookie(ctx context.Context, w http.ResponseWriter, codec *middleware.SessionCodec, s *Session) {
	token, expiresAt, err := codec.Issue(s.ID)
	if err != nil {
		middleware.LoggerFromContext(ctx).Error("Failed to issue session cookie", slog.Any("error", err))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     r.cfg.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   r.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
