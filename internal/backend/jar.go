package backend

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// Jar holds the backend cookies (session id, csrf token) for one browser session.
// The BFF talks to a single backend host, so cookies are keyed by name only.
type Jar struct {
	mu      sync.RWMutex
	cookies map[string]*http.Cookie
}

// SavedCookie is the persisted form of a jar entry.
type SavedCookie struct {
	Name    string    `json:"name"`
	Value   string    `json:"value"`
	Expires time.Time `json:"expires,omitempty"`
}

func NewJar() *Jar {
	return &Jar{cookies: make(map[string]*http.Cookie)}
}

// SetCookies implements http.CookieJar.
func (j *Jar) SetCookies(_ *url.URL, cookies []*http.Cookie) {
	j.mu.Lock()
	defer j.mu.Unlock()

	now := time.Now()

	for _, c := range cookies {
		if c.MaxAge < 0 || (!c.Expires.IsZero() && c.Expires.Before(now)) || c.Value == "" {
			delete(j.cookies, c.Name)
			continue
		}

		stored := &http.Cookie{Name: c.Name, Value: c.Value, Expires: c.Expires}
		if c.MaxAge > 0 {
			stored.Expires = now.Add(time.Duration(c.MaxAge) * time.Second)
		}

		j.cookies[c.Name] = stored
	}
}

// Cookies implements http.CookieJar.
func (j *Jar) Cookies(_ *url.URL) []*http.Cookie {
	j.mu.RLock()
	defer j.mu.RUnlock()

	now := time.Now()
	out := make([]*http.Cookie, 0, len(j.cookies))

	for _, c := range j.cookies {
		if !c.Expires.IsZero() && c.Expires.Before(now) {
			continue
		}
		out = append(out, &http.Cookie{Name: c.Name, Value: c.Value})
	}

	return out
}

func (j *Jar) Get(name string) (string, bool) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	c, ok := j.cookies[name]
	if !ok || (!c.Expires.IsZero() && c.Expires.Before(time.Now())) {
		return "", false
	}

	return c.Value, true
}

func (j *Jar) Clear() {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.cookies = make(map[string]*http.Cookie)
}

func (j *Jar) Snapshot() []SavedCookie {
	j.mu.RLock()
	defer j.mu.RUnlock()

	saved := make([]SavedCookie, 0, len(j.cookies))
	for _, c := range j.cookies {
		saved = append(saved, SavedCookie{Name: c.Name, Value: c.Value, Expires: c.Expires})
	}

	return saved
}

func (j *Jar) Restore(saved []SavedCookie) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.cookies = make(map[string]*http.Cookie, len(saved))
	for _, s := range saved {
		j.cookies[s.Name] = &http.Cookie{Name: s.Name, Value: s.Value, Expires: s.Expires}
	}
}

type jarContextKey struct{}

// WithJar attaches the session's cookie jar to every backend call made with ctx.
func WithJar(ctx context.Context, jar *Jar) context.Context {
	return context.WithValue(ctx, jarContextKey{}, jar)
}

func JarFromContext(ctx context.Context) *Jar {
	jar, _ := ctx.Value(jarContextKey{}).(*Jar)
	return jar
}
