package errors_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/aaravmahajanofficial/storefront-console/internal/backend"
	appErrors "github.com/aaravmahajanofficial/storefront-console/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
		code   string
	}{
		{"Bad request", http.StatusBadRequest, appErrors.ErrCodeBadRequest},
		{"Unauthorized", http.StatusUnauthorized, appErrors.ErrCodeUnauthorized},
		{"Forbidden", http.StatusForbidden, appErrors.ErrCodeForbidden},
		{"Not found", http.StatusNotFound, appErrors.ErrCodeNotFound},
		{"Conflict", http.StatusConflict, appErrors.ErrCodeConflict},
		{"Too many requests", http.StatusTooManyRequests, appErrors.ErrCodeTooManyRequests},
		{"Other client error", http.StatusUnprocessableEntity, appErrors.ErrCodeBadRequest},
		{"Server error", http.StatusServiceUnavailable, appErrors.ErrCodeUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := appErrors.FromStatus(tt.status, "backend said no")

			assert.Equal(t, tt.code, appErr.Code)
			assert.Equal(t, tt.status, appErr.StatusCode)
			assert.Equal(t, "backend said no", appErr.Message)
		})
	}
}

func TestIsAppError(t *testing.T) {
	t.Run("Success - Wrapped AppError", func(t *testing.T) {
		cause := errors.New("dial tcp: connection refused")
		wrapped := fmt.Errorf("cart refresh: %w", appErrors.UpstreamUnavailableError("Failed to load cart").WithError(cause))

		appErr, ok := appErrors.IsAppError(wrapped)

		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeUpstreamUnavailable, appErr.Code)
		assert.Equal(t, http.StatusBadGateway, appErr.StatusCode)
		assert.ErrorIs(t, wrapped, cause)
	})

	t.Run("Failure - Plain error", func(t *testing.T) {
		appErr, ok := appErrors.IsAppError(errors.New("plain"))

		assert.False(t, ok)
		assert.Nil(t, appErr)
	})
}

func TestAddValidationError(t *testing.T) {
	appErr := appErrors.AddValidationError("postal_code", "is required")

	assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)
	assert.Equal(t, "Invalid field 'postal_code': is required", appErr.Message)
	assert.Equal(t, "postal_code", appErr.Detail)
	assert.Equal(t, http.StatusBadRequest, appErr.StatusCode)
}

func TestFromUpstream(t *testing.T) {
	t.Run("Backend response keeps status and message", func(t *testing.T) {
		respErr := &backend.ResponseError{Method: "POST", Path: "/api/carts/", StatusCode: http.StatusBadRequest, Message: "Not enough stock"}

		appErr := appErrors.FromUpstream(fmt.Errorf("wrapped: %w", respErr), "add item")

		assert.Equal(t, http.StatusBadRequest, appErr.StatusCode)
		assert.Equal(t, "Not enough stock", appErr.Message)
		assert.ErrorIs(t, appErr, respErr)
	})

	t.Run("Transport failure", func(t *testing.T) {
		appErr := appErrors.FromUpstream(errors.New("connection refused"), "load cart")

		assert.Equal(t, appErrors.ErrCodeUpstreamUnavailable, appErr.Code)
		assert.Equal(t, http.StatusBadGateway, appErr.StatusCode)
		assert.Equal(t, "Failed to load cart", appErr.Message)
	})

	t.Run("Timeout", func(t *testing.T) {
		appErr := appErrors.FromUpstream(fmt.Errorf("calling backend: %w", context.DeadlineExceeded), "load cart")

		assert.Equal(t, http.StatusGatewayTimeout, appErr.StatusCode)
	})

	t.Run("AppError passes through", func(t *testing.T) {
		original := appErrors.ValidationError("bad")

		assert.Same(t, original, appErrors.FromUpstream(original, "x"))
	})
}
