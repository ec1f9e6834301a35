package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/storefront-console/internal/api"
	"github.com/aaravmahajanofficial/storefront-console/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-console/internal/config"
	"github.com/aaravmahajanofficial/storefront-console/internal/models"
	service "github.com/aaravmahajanofficial/storefront-console/internal/services"
	"github.com/aaravmahajanofficial/storefront-console/internal/sessions"
	"github.com/aaravmahajanofficial/storefront-console/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type storefront struct {
	fake   *testutils.FakeBackend
	server *httptest.Server
	client *http.Client
}

func newStorefront(t *testing.T) *storefront {
	t.Helper()

	fake := testutils.NewFakeBackend(t)
	fake.AddUser("ada", "correct-horse", false, models.RoleCustomer)
	fake.AddUser("grace", "hopper", true, models.RoleSales)
	client, _ := fake.Client(t)

	validate := service.NewValidator(time.Now)
	sessionCfg := config.Session{CookieName: "sf_session", TTL: time.Hour, MaxNotices: 10}

	handler := api.NewRouter(api.Deps{
		Registry:  sessions.NewRegistry(client, validate, nil, nil, sessionCfg),
		Codec:     middleware.NewSessionCodec("0123456789abcdef-secret", time.Hour),
		Limiter:   middleware.NewIPRateLimiter(1000, 1000),
		Validator: validate,
		Media:     client,
		Catalog:   service.NewCatalogService(client, nil),
		Orders:    service.NewOrderService(client),
		Refunds:   service.NewRefundService(client, client),
		Addresses: service.NewAddressService(client),
		Admin:     service.NewAdminService(client, client, client),
	}, config.CORS{AllowedOrigins: []string{"http://localhost:5173"}}, "storefront-test")

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &storefront{fake: fake, server: server, client: &http.Client{Jar: jar}}
}

func (s *storefront) do(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()

	var payload bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&payload).Encode(body))
	}

	req, err := http.NewRequestWithContext(t.Context(), method, s.server.URL+path, &payload)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	return resp
}

func (s *storefront) login(t *testing.T, username, password string) {
	t.Helper()

	resp := s.do(t, http.MethodPost, "/api/v1/auth/login", models.LoginRequest{Username: username, Password: password})
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter(t *testing.T) {
	t.Run("Success - Catalog is public", func(t *testing.T) {
		// Arrange
		sf := newStorefront(t)
		lamp := sf.fake.AddProduct("Desk lamp", 24.99, 5)

		// Act
		resp := sf.do(t, http.MethodGet, "/api/v1/products/"+strconv.FormatInt(lamp.ID, 10), nil)

		// Assert
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
	})

	t.Run("Failure - Orders need a signed in session", func(t *testing.T) {
		// Arrange
		sf := newStorefront(t)

		// Act
		resp := sf.do(t, http.MethodGet, "/api/v1/orders", nil)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Success - Session cookie carries the login", func(t *testing.T) {
		// Arrange
		sf := newStorefront(t)
		sf.login(t, "ada", "correct-horse")

		// Act
		resp := sf.do(t, http.MethodGet, "/api/v1/cart", nil)

		// Assert
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Failure - Customers are kept out of admin routes", func(t *testing.T) {
		// Arrange
		sf := newStorefront(t)
		sf.login(t, "ada", "correct-horse")

		// Act
		resp := sf.do(t, http.MethodGet, "/api/v1/admin/refunds/pending", nil)

		// Assert
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("Failure - Sales staff cannot touch stock", func(t *testing.T) {
		// Arrange
		sf := newStorefront(t)
		sf.login(t, "grace", "hopper")

		// Act
		resp := sf.do(t, http.MethodPost, "/api/v1/admin/products/100/stock", map[string]int{"stock_quantity": 3})

		// Assert
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("Success - Sales staff see the refund queue", func(t *testing.T) {
		// Arrange
		sf := newStorefront(t)
		sf.login(t, "grace", "hopper")

		// Act
		resp := sf.do(t, http.MethodGet, "/api/v1/admin/refunds/pending", nil)

		// Assert
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Success - Metrics exposed", func(t *testing.T) {
		// Arrange
		sf := newStorefront(t)

		// Act
		resp := sf.do(t, http.MethodGet, "/metrics", nil)

		// Assert
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Success - CORS preflight for the UI origin", func(t *testing.T) {
		// Arrange
		sf := newStorefront(t)
		req, err := http.NewRequestWithContext(t.Context(), http.MethodOptions, sf.server.URL+"/api/v1/cart", nil)
		require.NoError(t, err)
		req.Header.Set("Origin", "http://localhost:5173")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)

		// Act
		resp, err := sf.client.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		// Assert
		assert.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))
	})
}
