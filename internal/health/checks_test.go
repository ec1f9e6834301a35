package health_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aaravmahajanofficial/storefront-console/internal/config"
	"github.com/aaravmahajanofficial/storefront-console/internal/health"
	healthgo "github.com/hellofresh/health-go/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pinger struct {
	err error
}

func (p pinger) Ping(context.Context) error {
	return p.err
}

func TestNewHealthHandler(t *testing.T) {
	cfg := &config.Config{
		Otel:         config.OtelConfig{ServiceName: "storefront-console"},
		RedisConnect: config.RedisConnect{Enabled: false},
	}

	t.Run("Success - Backend reachable", func(t *testing.T) {
		// Arrange
		h, err := health.NewHealthHandler(cfg, &health.Endpoints{Backend: pinger{}})
		require.NoError(t, err)

		// Act
		check := h.Measure(t.Context())

		// Assert
		assert.Equal(t, healthgo.StatusOK, check.Status)
	})

	t.Run("Failure - Backend down", func(t *testing.T) {
		// Arrange
		h, err := health.NewHealthHandler(cfg, &health.Endpoints{Backend: pinger{err: errors.New("connection refused")}})
		require.NoError(t, err)

		// Act
		check := h.Measure(t.Context())

		// Assert
		assert.Equal(t, healthgo.StatusUnavailable, check.Status)
		assert.Contains(t, check.Failures, "backend")
	})

	t.Run("Failure - No backend client", func(t *testing.T) {
		// Arrange
		h, err := health.NewHealthHandler(cfg, &health.Endpoints{})
		require.NoError(t, err)

		// Act
		check := h.Measure(t.Context())

		// Assert
		assert.Equal(t, healthgo.StatusUnavailable, check.Status)
	})
}
