package handlers_test

import (
	"net/http"
	"testing"

	"github.com/aaravmahajanofficial/storefront-console/internal/api/handlers"
	"github.com/aaravmahajanofficial/storefront-console/internal/api/middleware"
	appErrors "github.com/aaravmahajanofficial/storefront-console/internal/errors"
	"github.com/aaravmahajanofficial/storefront-console/internal/models"
	"github.com/aaravmahajanofficial/storefront-console/internal/services/mocks"
	"github.com/aaravmahajanofficial/storefront-console/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestAdminHandlers(t *testing.T) {
	inventory := &models.User{ID: 3, Username: "linus", IsStaff: true, Role: models.RoleInventory}
	customer := &models.User{ID: 1, Username: "ada", Role: models.RoleCustomer}

	t.Run("Success - Stock may be set to zero", func(t *testing.T) {
		// Arrange
		mockAdmin := new(mocks.AdminService)
		adminHandler := handlers.NewAdminHandler(mockAdmin, testValidator)
		mockAdmin.On("UpdateStock", mock.Anything, int64(5), 0).Return(&models.Product{ID: 5, StockQuantity: 0}, nil).Once()
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/admin/products/5/stock",
			jsonBody(map[string]int{"stock_quantity": 0}), inventory, map[string]string{"id": "5"})

		// Act
		rr := serve(adminHandler.UpdateStock(), req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		mockAdmin.AssertExpectations(t)
	})

	t.Run("Failure - Stock missing", func(t *testing.T) {
		// Arrange
		mockAdmin := new(mocks.AdminService)
		adminHandler := handlers.NewAdminHandler(mockAdmin, testValidator)
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/admin/products/5/stock",
			jsonBody(map[string]int{}), inventory, map[string]string{"id": "5"})

		// Act
		rr := serve(adminHandler.UpdateStock(), req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, []string{"stock_quantity"}, decodeError(t, rr).Details)
	})

	t.Run("Failure - Discount above the cap", func(t *testing.T) {
		// Arrange
		mockAdmin := new(mocks.AdminService)
		adminHandler := handlers.NewAdminHandler(mockAdmin, testValidator)
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/admin/products/5/discount",
			jsonBody(map[string]float64{"discount_percent": 95}), inventory, map[string]string{"id": "5"})

		// Act
		rr := serve(adminHandler.ApplyDiscount(), req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockAdmin.AssertNotCalled(t, "ApplyDiscount", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Success - Hide a product", func(t *testing.T) {
		// Arrange
		mockAdmin := new(mocks.AdminService)
		adminHandler := handlers.NewAdminHandler(mockAdmin, testValidator)
		mockAdmin.On("SetVisibility", mock.Anything, int64(5), false).Return(&models.Product{ID: 5}, nil).Once()
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/admin/products/5/visibility",
			jsonBody(map[string]bool{"is_visible": false}), inventory, map[string]string{"id": "5"})

		// Act
		rr := serve(adminHandler.SetVisibility(), req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		mockAdmin.AssertExpectations(t)
	})

	t.Run("Failure - Skipping a delivery step", func(t *testing.T) {
		// Arrange
		mockAdmin := new(mocks.AdminService)
		adminHandler := handlers.NewAdminHandler(mockAdmin, testValidator)
		mockAdmin.On("AdvanceOrder", mock.Anything, int64(8), models.OrderStatusDelivered).
			Return(nil, appErrors.ConflictError("Order cannot move from PROCESSING to DELIVERED")).Once()
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/admin/orders/8/status",
			jsonBody(models.UpdateOrderStatusRequest{Status: models.OrderStatusDelivered}), inventory, map[string]string{"id": "8"})

		// Act
		rr := serve(adminHandler.AdvanceOrder(), req)

		// Assert
		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("Success - Deliveries", func(t *testing.T) {
		// Arrange
		mockAdmin := new(mocks.AdminService)
		adminHandler := handlers.NewAdminHandler(mockAdmin, testValidator)
		expected := models.NewPage([]models.Order{{ID: 8}}, 1, 1, 12)
		mockAdmin.On("ListDeliveries", mock.Anything, models.OrderQuery{Status: models.OrderStatusInTransit, Page: 1, PageSize: 12}).
			Return(&expected, nil).Once()
		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/admin/deliveries?status=IN_TRANSIT", nil, inventory, nil)

		// Act
		rr := serve(adminHandler.ListDeliveries(), req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		mockAdmin.AssertExpectations(t)
	})

	t.Run("Failure - Customers are kept out by the staff gate", func(t *testing.T) {
		// Arrange
		mockAdmin := new(mocks.AdminService)
		adminHandler := handlers.NewAdminHandler(mockAdmin, testValidator)
		gated := middleware.RequireStaff(adminHandler.ListDeliveries())
		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/admin/deliveries", nil, customer, nil)

		// Act
		rr := serve(gated, req)

		// Assert
		assert.Equal(t, http.StatusForbidden, rr.Code)
		mockAdmin.AssertNotCalled(t, "ListDeliveries", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Pricing needs the sales role", func(t *testing.T) {
		// Arrange
		mockAdmin := new(mocks.AdminService)
		adminHandler := handlers.NewAdminHandler(mockAdmin, testValidator)
		gated := middleware.RequireRole(models.RoleSales)(adminHandler.UpdatePrice())
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/admin/products/5/price",
			jsonBody(map[string]string{"price": "19.99"}), inventory, map[string]string{"id": "5"})

		// Act
		rr := serve(gated, req)

		// Assert
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})
}
