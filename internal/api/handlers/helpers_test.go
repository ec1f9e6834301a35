package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/storefront-console/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-console/internal/config"
	"github.com/aaravmahajanofficial/storefront-console/internal/models"
	service "github.com/aaravmahajanofficial/storefront-console/internal/services"
	"github.com/aaravmahajanofficial/storefront-console/internal/sessions"
	"github.com/aaravmahajanofficial/storefront-console/internal/testutils"
	"github.com/aaravmahajanofficial/storefront-console/internal/utils/response"
	"github.com/stretchr/testify/require"
)

var testValidator = service.NewValidator(func() time.Time {
	return time.Date(2026, time.March, 14, 10, 0, 0, 0, time.UTC)
})

var testCodec = middleware.NewSessionCodec("0123456789abcdef-secret", time.Hour)

// browser is one storefront session wired to the fake backend.
type browser struct {
	fake     *testutils.FakeBackend
	registry *sessions.Registry
	store    *snapshotStore
	session  *sessions.Session
}

func newBrowser(t *testing.T) *browser {
	t.Helper()

	fake := testutils.NewFakeBackend(t)
	fake.AddUser("ada", "correct-horse", false, models.RoleCustomer)
	client, _ := fake.Client(t)

	store := newSnapshotStore()
	registry := sessions.NewRegistry(client, testValidator, store, nil, config.Session{
		CookieName: "sf_session",
		TTL:        time.Hour,
		MaxNotices: 10,
	})

	return &browser{fake: fake, registry: registry, store: store, session: registry.Create()}
}

// snapshotStore keeps session snapshots in memory.
type snapshotStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newSnapshotStore() *snapshotStore {
	return &snapshotStore{data: make(map[string][]byte)}
}

func (m *snapshotStore) Get(_ context.Context, key string, value any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, value)
}

func (m *snapshotStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = data
	return nil
}

func (m *snapshotStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key)
	return nil
}

func (m *snapshotStore) Close() error { return nil }

func (m *snapshotStore) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.data[key]
	return ok
}

// loggedIn returns a browser whose session is signed in as ada.
func loggedIn(t *testing.T) *browser {
	t.Helper()

	b := newBrowser(t)
	resp := b.session.Auth.Login(b.ctx(t), &models.LoginRequest{Username: "ada", Password: "correct-horse"})
	require.True(t, resp.Success, resp.Message)

	return b
}

func (b *browser) ctx(t *testing.T) context.Context {
	return sessions.WithSession(t.Context(), b.session)
}

// request builds a request carrying the browser's session, as the session middleware would.
func (b *browser) request(method, target string, body any, pathParams map[string]string) *http.Request {
	req := testutils.CreateTestRequestWithoutContext(method, target, jsonBody(body), pathParams)
	return req.WithContext(sessions.WithSession(req.Context(), b.session))
}

func jsonBody(body any) io.Reader {
	switch v := body.(type) {
	case nil:
		return nil
	case string:
		return bytes.NewBufferString(v)
	default:
		data, _ := json.Marshal(v)
		return bytes.NewReader(data)
	}
}

func serve(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

// decodeData unwraps the success envelope into dest.
func decodeData(t *testing.T, rr *httptest.ResponseRecorder, dest any) {
	t.Helper()

	var resp response.APIResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.True(t, resp.Success, rr.Body.String())

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, dest))
}

// decodeError unwraps the error envelope.
func decodeError(t *testing.T, rr *httptest.ResponseRecorder) *response.ErrorResponse {
	t.Helper()

	var resp response.APIResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.False(t, resp.Success)
	require.NotNil(t, resp.Error)

	return resp.Error
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
