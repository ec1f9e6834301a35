package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront-console/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-console/internal/models"
	service "github.com/aaravmahajanofficial/storefront-console/internal/services"
	"github.com/aaravmahajanofficial/storefront-console/internal/utils"
	"github.com/aaravmahajanofficial/storefront-console/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type RefundHandler struct {
	refundService service.RefundService
	validator     *validator.Validate
}

func NewRefundHandler(refundService service.RefundService, validate *validator.Validate) *RefundHandler {
	return &RefundHandler{refundService: refundService, validator: validate}
}

// MyRefunds godoc
//	@Summary		List the user's refund requests
//	@Tags			Refunds
//	@Produce		json
//	@Success		200	{array}		models.RefundRequest	"Refund requests"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Router			/refunds [get]
func (h *RefundHandler) MyRefunds() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		refunds, err := h.refundService.MyRefunds(r.Context())
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to list refund requests", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, refunds)
	}
}

// CreateRefund godoc
//	@Summary		Request a refund
//	@Description	Requests a refund for one line of a delivered order.
//	@Tags			Refunds
//	@Accept			json
//	@Produce		json
//	@Param			refund	body		models.CreateRefundRequest	true	"Order, order line and reason"
//	@Success		201		{object}	models.RefundRequest		"Pending refund request"
//	@Failure		400		{object}	response.ErrorResponse		"Order not delivered or item not in order"
//	@Router			/refunds [post]
func (h *RefundHandler) CreateRefund() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateRefundRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid refund request input")
			return
		}

		logger = logger.With(slog.Int64("orderId", req.OrderID), slog.Int64("orderItemId", req.OrderItemID))

		refund, err := h.refundService.CreateRefund(r.Context(), &req)
		if err != nil {
			logger.Warn("Failed to request refund", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Refund requested", slog.Int64("refundId", refund.ID))
		response.Success(w, http.StatusCreated, refund)
	}
}

// CancelRefund godoc
//	@Summary		Withdraw a refund request
//	@Tags			Refunds
//	@Param			id	path	int	true	"Refund request ID"
//	@Success		204	"Withdrawn"
//	@Failure		409	{object}	response.ErrorResponse	"Request already resolved"
//	@Router			/refunds/{id} [delete]
func (h *RefundHandler) CancelRefund() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		if err := h.refundService.CancelRefund(r.Context(), id); err != nil {
			logger.Warn("Failed to withdraw refund request", slog.Int64("refundId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Refund request withdrawn", slog.Int64("refundId", id))
		w.WriteHeader(http.StatusNoContent)
	}
}

// PendingRefunds godoc
//	@Summary		Pending refund requests (sales)
//	@Tags			Admin
//	@Produce		json
//	@Success		200	{array}		models.RefundRequest	"Pending requests"
//	@Failure		403	{object}	response.ErrorResponse	"Admin access required"
//	@Router			/admin/refunds/pending [get]
func (h *RefundHandler) PendingRefunds() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		refunds, err := h.refundService.PendingRefunds(r.Context())
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to list pending refunds", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, refunds)
	}
}

// ApproveRefund godoc
//	@Summary		Approve a refund request (sales)
//	@Tags			Admin
//	@Produce		json
//	@Param			id	path		int						true	"Refund request ID"
//	@Success		200	{array}		models.RefundRequest	"Remaining pending requests"
//	@Failure		409	{object}	response.ErrorResponse	"Request is not pending"
//	@Router			/admin/refunds/{id}/approve [post]
func (h *RefundHandler) ApproveRefund() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		pending, err := h.refundService.ApproveRefund(r.Context(), id)
		if err != nil {
			logger.Warn("Failed to approve refund", slog.Int64("refundId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Refund approved", slog.Int64("refundId", id))
		response.Success(w, http.StatusOK, pending)
	}
}

// RejectRefund godoc
//	@Summary		Reject a refund request (sales)
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int							true	"Refund request ID"
//	@Param			reason	body		models.RejectRefundRequest	true	"Rejection reason"
//	@Success		200		{array}		models.RefundRequest		"Remaining pending requests"
//	@Failure		400		{object}	response.ErrorResponse		"Reason missing"
//	@Failure		409		{object}	response.ErrorResponse		"Request is not pending"
//	@Router			/admin/refunds/{id}/reject [post]
func (h *RefundHandler) RejectRefund() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.RejectRefundRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid refund rejection input")
			return
		}

		pending, err := h.refundService.RejectRefund(r.Context(), id, req.Reason)
		if err != nil {
			logger.Warn("Failed to reject refund", slog.Int64("refundId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Refund rejected", slog.Int64("refundId", id))
		response.Success(w, http.StatusOK, pending)
	}
}
