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

type AdminHandler struct {
	adminService service.AdminService
	validator    *validator.Validate
}

func NewAdminHandler(adminService service.AdminService, validate *validator.Validate) *AdminHandler {
	return &AdminHandler{adminService: adminService, validator: validate}
}

// productMutation is the shared shape of the four product edits: parse the id and
// body, call the service, answer with the refetched product.
func productMutation[T any](h *AdminHandler, action string, call func(r *http.Request, id int64, req *T) (*models.Product, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		logger = logger.With(slog.Int64("productId", id), slog.String("action", action))

		var req T
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid admin input")
			return
		}

		product, err := call(r, id, &req)
		if err != nil {
			logger.Warn("Admin product update failed", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Product updated by admin")
		response.Success(w, http.StatusOK, product)
	}
}

// UpdatePrice godoc
//	@Summary		Set a product's price (sales)
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int							true	"Product ID"
//	@Param			price	body		models.UpdatePriceRequest	true	"New price"
//	@Success		200		{object}	models.Product				"Product"
//	@Failure		403		{object}	response.ErrorResponse		"Admin access required"
//	@Router			/admin/products/{id}/price [post]
func (h *AdminHandler) UpdatePrice() http.HandlerFunc {
	return productMutation(h, "update_price", func(r *http.Request, id int64, req *models.UpdatePriceRequest) (*models.Product, error) {
		return h.adminService.UpdatePrice(r.Context(), id, req.Price)
	})
}

// ApplyDiscount godoc
//	@Summary		Discount a product (sales)
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			id			path		int							true	"Product ID"
//	@Param			discount	body		models.ApplyDiscountRequest	true	"Discount from 0 to 90 percent"
//	@Success		200			{object}	models.Product				"Product"
//	@Router			/admin/products/{id}/discount [post]
func (h *AdminHandler) ApplyDiscount() http.HandlerFunc {
	return productMutation(h, "apply_discount", func(r *http.Request, id int64, req *models.ApplyDiscountRequest) (*models.Product, error) {
		return h.adminService.ApplyDiscount(r.Context(), id, req.DiscountPercent)
	})
}

// UpdateStock godoc
//	@Summary		Set a product's stock (inventory)
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int							true	"Product ID"
//	@Param			stock	body		models.UpdateStockRequest	true	"Stock quantity"
//	@Success		200		{object}	models.Product				"Product"
//	@Router			/admin/products/{id}/stock [post]
func (h *AdminHandler) UpdateStock() http.HandlerFunc {
	return productMutation(h, "update_stock", func(r *http.Request, id int64, req *models.UpdateStockRequest) (*models.Product, error) {
		return h.adminService.UpdateStock(r.Context(), id, *req.StockQuantity)
	})
}

// SetVisibility godoc
//	@Summary		Show or hide a product
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			id			path		int							true	"Product ID"
//	@Param			visibility	body		models.SetVisibilityRequest	true	"Visibility"
//	@Success		200			{object}	models.Product				"Product"
//	@Router			/admin/products/{id}/visibility [post]
func (h *AdminHandler) SetVisibility() http.HandlerFunc {
	return productMutation(h, "set_visibility", func(r *http.Request, id int64, req *models.SetVisibilityRequest) (*models.Product, error) {
		return h.adminService.SetVisibility(r.Context(), id, *req.IsVisible)
	})
}

// ListDeliveries godoc
//	@Summary		All orders for fulfilment (inventory)
//	@Tags			Admin
//	@Produce		json
//	@Param			status		query		string						false	"Order status"
//	@Param			page		query		int							false	"Page number"
//	@Param			page_size	query		int							false	"Items per page"
//	@Success		200			{object}	models.Page[models.Order]	"Orders"
//	@Router			/admin/deliveries [get]
func (h *AdminHandler) ListDeliveries() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		query, err := orderQuery(r)
		if err != nil {
			response.Error(w, err)
			return
		}

		page, err := h.adminService.ListDeliveries(r.Context(), query)
		if err != nil {
			logger.Error("Failed to list deliveries", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, page)
	}
}

// AdvanceOrder godoc
//	@Summary		Advance an order's status (inventory)
//	@Description	Orders move PROCESSING, IN_TRANSIT, DELIVERED one step at a time.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int								true	"Order ID"
//	@Param			status	body		models.UpdateOrderStatusRequest	true	"Next status"
//	@Success		200		{object}	models.Order					"Order"
//	@Failure		409		{object}	response.ErrorResponse			"Not the next status"
//	@Router			/admin/orders/{id}/status [post]
func (h *AdminHandler) AdvanceOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.UpdateOrderStatusRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid order status input")
			return
		}

		logger = logger.With(slog.Int64("orderId", id), slog.String("status", string(req.Status)))

		order, err := h.adminService.AdvanceOrder(r.Context(), id, req.Status)
		if err != nil {
			logger.Warn("Failed to advance order", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Order status updated")
		response.Success(w, http.StatusOK, order)
	}
}
