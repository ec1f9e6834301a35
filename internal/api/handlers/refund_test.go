package handlers_test

import (
	"net/http"
	"testing"

	"github.com/aaravmahajanofficial/storefront-console/internal/api/handlers"
	appErrors "github.com/aaravmahajanofficial/storefront-console/internal/errors"
	"github.com/aaravmahajanofficial/storefront-console/internal/models"
	"github.com/aaravmahajanofficial/storefront-console/internal/services/mocks"
	"github.com/aaravmahajanofficial/storefront-console/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestRefundHandlers(t *testing.T) {
	customer := &models.User{ID: 1, Username: "ada", Role: models.RoleCustomer}
	sales := &models.User{ID: 2, Username: "grace", IsStaff: true, Role: models.RoleSales}

	t.Run("Success - Request a refund", func(t *testing.T) {
		// Arrange
		mockRefunds := new(mocks.RefundService)
		refundHandler := handlers.NewRefundHandler(mockRefunds, testValidator)
		body := models.CreateRefundRequest{OrderID: 4, OrderItemID: 40, Reason: "Arrived broken"}
		mockRefunds.On("CreateRefund", mock.Anything, &body).
			Return(&models.RefundRequest{ID: 9, OrderItem: 40, Status: models.RefundStatusPending}, nil).Once()
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/refunds", jsonBody(body), customer, nil)

		// Act
		rr := serve(refundHandler.CreateRefund(), req)

		// Assert
		assert.Equal(t, http.StatusCreated, rr.Code)
		var refund models.RefundRequest
		decodeData(t, rr, &refund)
		assert.Equal(t, models.RefundStatusPending, refund.Status)
		mockRefunds.AssertExpectations(t)
	})

	t.Run("Failure - Missing order item", func(t *testing.T) {
		// Arrange
		mockRefunds := new(mocks.RefundService)
		refundHandler := handlers.NewRefundHandler(mockRefunds, testValidator)
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/refunds",
			jsonBody(map[string]any{"order_id": 4, "reason": "Arrived broken"}), customer, nil)

		// Act
		rr := serve(refundHandler.CreateRefund(), req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, []string{"order_item"}, decodeError(t, rr).Details)
	})

	t.Run("Success - Withdraw", func(t *testing.T) {
		// Arrange
		mockRefunds := new(mocks.RefundService)
		refundHandler := handlers.NewRefundHandler(mockRefunds, testValidator)
		mockRefunds.On("CancelRefund", mock.Anything, int64(9)).Return(nil).Once()
		req := testutils.CreateTestRequestWithContext(http.MethodDelete, "/api/v1/refunds/9", nil, customer, map[string]string{"id": "9"})

		// Act
		rr := serve(refundHandler.CancelRefund(), req)

		// Assert
		assert.Equal(t, http.StatusNoContent, rr.Code)
	})

	t.Run("Success - Approve returns the remaining queue", func(t *testing.T) {
		// Arrange
		mockRefunds := new(mocks.RefundService)
		refundHandler := handlers.NewRefundHandler(mockRefunds, testValidator)
		mockRefunds.On("ApproveRefund", mock.Anything, int64(9)).Return([]models.RefundRequest{}, nil).Once()
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/admin/refunds/9/approve", nil, sales, map[string]string{"id": "9"})

		// Act
		rr := serve(refundHandler.ApproveRefund(), req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		var pending []models.RefundRequest
		decodeData(t, rr, &pending)
		assert.Empty(t, pending)
	})

	t.Run("Failure - Approve twice", func(t *testing.T) {
		// Arrange
		mockRefunds := new(mocks.RefundService)
		refundHandler := handlers.NewRefundHandler(mockRefunds, testValidator)
		mockRefunds.On("ApproveRefund", mock.Anything, int64(9)).Return(nil, appErrors.ConflictError("Refund request is not pending")).Once()
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/admin/refunds/9/approve", nil, sales, map[string]string{"id": "9"})

		// Act
		rr := serve(refundHandler.ApproveRefund(), req)

		// Assert
		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("Failure - Reject without a reason", func(t *testing.T) {
		// Arrange
		mockRefunds := new(mocks.RefundService)
		refundHandler := handlers.NewRefundHandler(mockRefunds, testValidator)
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/admin/refunds/9/reject",
			jsonBody(map[string]string{"reason": ""}), sales, map[string]string{"id": "9"})

		// Act
		rr := serve(refundHandler.RejectRefund(), req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, []string{"reason"}, decodeError(t, rr).Details)
		mockRefunds.AssertNotCalled(t, "RejectRefund", mock.Anything, mock.Anything, mock.Anything)
	})
}
