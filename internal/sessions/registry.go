package sessions

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aaravmahajanofficial/storefront-console/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-console/internal/backend"
	"github.com/aaravmahajanofficial/storefront-console/internal/cache"
	"github.com/aaravmahajanofficial/storefront-console/internal/config"
	"github.com/aaravmahajanofficial/storefront-console/internal/metrics"
	"github.com/aaravmahajanofficial/storefront-console/internal/models"
	repository "github.com/aaravmahajanofficial/storefront-console/internal/repositories"
	service "github.com/aaravmahajanofficial/storefront-console/internal/services"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Session is everything the storefront holds for one browser: the backend cookies
// and the session, cart and checkout mirrors built on them.
type Session struct {
	ID       string
	Jar      *backend.Jar
	Auth     *service.SessionService
	Cart     *service.CartService
	Checkout *service.CheckoutService
	Notices  *service.Notifier

	lastSeen  atomic.Int64
	destroyed atomic.Bool
}

func (s *Session) touch(now time.Time) {
	s.lastSeen.Store(now.UnixNano())
}

func (s *Session) idleSince(now time.Time) time.Duration {
	return now.Sub(time.Unix(0, s.lastSeen.Load()))
}

// Logout ends the backend session and drops every mirror.
func (s *Session) Logout(ctx context.Context) error {
	err := s.Auth.Logout(ctx)

	s.Cart.Reset()
	s.Checkout.Reset()
	s.Jar.Clear()

	return err
}

// snapshot is the persisted form of a session. Card data is never part of it.
type snapshot struct {
	Cookies []backend.SavedCookie `json:"cookies"`
	User    *models.User          `json:"user,omitempty"`
	Step    models.CheckoutStep   `json:"step"`
	Address models.AddressForm    `json:"address"`
}

// Registry creates, resolves and expires sessions.
type Registry struct {
	api      backend.API
	limiter  repository.RateLimitRepository
	store    cache.Cache
	validate *validator.Validate
	cfg      config.Session

	mu       sync.RWMutex
	sessions map[string]*Session
	now      func() time.Time
}

// NewRegistry builds the registry. store and limiter may be nil.
func NewRegistry(api backend.API, validate *validator.Validate, store cache.Cache, limiter repository.RateLimitRepository, cfg config.Session) *Registry {
	return &Registry{
		api:      api,
		limiter:  limiter,
		store:    store,
		validate: validate,
		cfg:      cfg,
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

func (r *Registry) build(id string) *Session {
	notices := service.NewNotifier(r.cfg.MaxNotices)
	cart := service.NewCartService(r.api, notices)

	s := &Session{
		ID:       id,
		Jar:      backend.NewJar(),
		Auth:     service.NewSessionService(r.api, r.limiter),
		Cart:     cart,
		Checkout: service.NewCheckoutService(r.api, cart, notices, r.validate),
		Notices:  notices,
	}
	s.touch(r.now())

	return s
}

func (r *Registry) Create() *Session {
	s := r.build(uuid.NewString())

	r.mu.Lock()
	r.sessions[s.ID] = s
	count := len(r.sessions)
	r.mu.Unlock()

	metrics.SetActiveSessions(count)
	return s
}

// Get resolves a live session, falling back to its persisted snapshot.
func (r *Registry) Get(ctx context.Context, id string) (*Session, bool) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()

	if ok {
		s.touch(r.now())
		return s, true
	}

	if r.store == nil {
		return nil, false
	}

	var snap snapshot
	found, err := r.store.Get(ctx, cache.Key(cache.SessionKeyPrefix, id), &snap)
	if err != nil {
		middleware.LoggerFromContext(ctx).Warn("Failed to load session snapshot", slog.String("sessionId", id), slog.Any("error", err))
		return nil, false
	}
	if !found {
		return nil, false
	}

	s = r.build(id)
	s.Jar.Restore(snap.Cookies)
	s.Auth.Restore(snap.User)
	s.Checkout.Restore(snap.Step, snap.Address)

	r.mu.Lock()
	if existing, raced := r.sessions[id]; raced {
		s = existing
	} else {
		r.sessions[id] = s
	}
	count := len(r.sessions)
	r.mu.Unlock()

	metrics.SetActiveSessions(count)
	return s, true
}

// Save persists the session snapshot. Without a store it is a no-op.
func (r *Registry) Save(ctx context.Context, s *Session) error {
	if r.store == nil || s.destroyed.Load() {
		return nil
	}

	state := s.Checkout.State()
	snap := snapshot{
		Cookies: s.Jar.Snapshot(),
		User:    s.Auth.User(),
		Step:    state.Step,
		Address: state.Address,
	}

	return r.store.Set(ctx, cache.Key(cache.SessionKeyPrefix, s.ID), snap, r.cfg.TTL)
}

// Destroy forgets the session and its snapshot. A destroyed session is never saved again.
func (r *Registry) Destroy(ctx context.Context, id string) {
	r.mu.Lock()
	if s, ok := r.sessions[id]; ok {
		s.destroyed.Store(true)
	}
	delete(r.sessions, id)
	count := len(r.sessions)
	r.mu.Unlock()

	metrics.SetActiveSessions(count)

	if r.store != nil {
		if err := r.store.Delete(ctx, cache.Key(cache.SessionKeyPrefix, id)); err != nil {
			middleware.LoggerFromContext(ctx).Warn("Failed to delete session snapshot", slog.String("sessionId", id), slog.Any("error", err))
		}
	}
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sessions)
}

// Evict drops sessions idle for longer than the TTL from memory. Their snapshots
// expire in the store on their own.
func (r *Registry) Evict() int {
	now := r.now()

	r.mu.Lock()
	evicted := 0
	for id, s := range r.sessions {
		if s.idleSince(now) > r.cfg.TTL {
			delete(r.sessions, id)
			evicted++
		}
	}
	count := len(r.sessions)
	r.mu.Unlock()

	metrics.SetActiveSessions(count)
	return evicted
}

// Run evicts idle sessions until ctx is cancelled.
func (r *Registry) Run(ctx context.Context) {
	interval := min(r.cfg.TTL/4, time.Minute)
	if interval <= 0 {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Session janitor stopped")
			return
		case <-ticker.C:
			if n := r.Evict(); n > 0 {
				slog.Debug("Evicted idle sessions", slog.Int("count", n), slog.Int("remaining", r.Len()))
			}
		}
	}
}
