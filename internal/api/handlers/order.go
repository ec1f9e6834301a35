package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/aaravmahajanofficial/storefront-console/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-console/internal/errors"
	"github.com/aaravmahajanofficial/storefront-console/internal/models"
	service "github.com/aaravmahajanofficial/storefront-console/internal/services"
	"github.com/aaravmahajanofficial/storefront-console/internal/utils"
	"github.com/aaravmahajanofficial/storefront-console/internal/utils/response"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// orderQuery reads ?status=&page=&page_size=. An unknown status is a 400.
func orderQuery(r *http.Request) (models.OrderQuery, error) {
	query := models.OrderQuery{
		Status:   models.OrderStatus(strings.ToUpper(r.URL.Query().Get("status"))),
		Page:     utils.QueryInt(r, "page", 1),
		PageSize: utils.QueryInt(r, "page_size", service.DefaultPageSize),
	}

	if query.Status != "" && !query.Status.Valid() {
		return query, errors.AddValidationError("status", "must be one of [PROCESSING IN_TRANSIT DELIVERED CANCELLED]")
	}

	return query, nil
}

// ListOrders godoc
//	@Summary		List the user's orders
//	@Description	Newest first, optionally of one status.
//	@Tags			Orders
//	@Produce		json
//	@Param			status		query		string						false	"PROCESSING, IN_TRANSIT, DELIVERED or CANCELLED"
//	@Param			page		query		int							false	"Page number (default: 1)"	minimum(1)
//	@Param			page_size	query		int							false	"Items per page"			minimum(1)	maximum(100)
//	@Success		200			{object}	models.Page[models.Order]	"Orders"
//	@Failure		401			{object}	response.ErrorResponse		"Authentication required"
//	@Router			/orders [get]
func (h *OrderHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		query, err := orderQuery(r)
		if err != nil {
			response.Error(w, err)
			return
		}

		page, err := h.orderService.ListOrders(r.Context(), query)
		if err != nil {
			logger.Error("Failed to list orders", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Orders listed", slog.Int("count", len(page.Items)), slog.Int("page", page.Page))
		response.Success(w, http.StatusOK, page)
	}
}

// GetOrder godoc
//	@Summary		Get an order
//	@Tags			Orders
//	@Produce		json
//	@Param			id	path		int						true	"Order ID"
//	@Success		200	{object}	models.Order			"Order"
//	@Failure		404	{object}	response.ErrorResponse	"Order not found"
//	@Router			/orders/{id} [get]
func (h *OrderHandler) GetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid order id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		order, err := h.orderService.GetOrder(r.Context(), id)
		if err != nil {
			logger.Warn("Failed to get order", slog.Int64("orderId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, order)
	}
}

// CancelOrder godoc
//	@Summary		Cancel an order
//	@Description	Only orders that are still processing can be cancelled.
//	@Tags			Orders
//	@Produce		json
//	@Param			id	path		int						true	"Order ID"
//	@Success		200	{object}	models.Order			"Cancelled order"
//	@Failure		409	{object}	response.ErrorResponse	"Order already shipped"
//	@Router			/orders/{id}/cancel [post]
func (h *OrderHandler) CancelOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		logger = logger.With(slog.Int64("orderId", id))

		order, err := h.orderService.CancelOrder(r.Context(), id)
		if err != nil {
			logger.Warn("Failed to cancel order", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Order cancelled")
		response.Success(w, http.StatusOK, order)
	}
}
