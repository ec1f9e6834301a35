package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront-console/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-console/internal/models"
	"github.com/aaravmahajanofficial/storefront-console/internal/utils"
	"github.com/aaravmahajanofficial/storefront-console/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CartHandler struct {
	validator *validator.Validate
}

func NewCartHandler(validate *validator.Validate) *CartHandler {
	return &CartHandler{validator: validate}
}

// GetCart godoc
//	@Summary		Get the cart
//	@Description	Refetches the signed in user's cart from the backend.
//	@Tags			Cart
//	@Produce		json
//	@Success		200	{object}	models.CartState		"Cart"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		502	{object}	response.ErrorResponse	"Backend unreachable"
//	@Router			/cart [get]
func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		s, ok := currentSession(w, r)
		if !ok {
			return
		}

		if err := s.Cart.Refresh(r.Context()); err != nil {
			middleware.LoggerFromContext(r.Context()).Warn("Failed to load cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, s.Cart.State())
	}
}

// AddItem godoc
//	@Summary		Add a product to the cart
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			item	body		models.AddItemRequest	true	"Product and quantity (default 1)"
//	@Success		200		{object}	models.CartState		"Updated cart"
//	@Failure		400		{object}	response.ErrorResponse	"Invalid input or not enough stock"
//	@Failure		401		{object}	response.ErrorResponse	"Authentication required"
//	@Router			/cart/items [post]
func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		s, ok := currentSession(w, r)
		if !ok {
			return
		}

		var req models.AddItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid add to cart input")
			return
		}

		logger = logger.With(slog.Int64("productId", req.ProductID))

		if err := s.Cart.AddItem(r.Context(), req.ProductID, req.Quantity); err != nil {
			logger.Warn("Failed to add item to cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Item added to cart", slog.Int("itemCount", s.Cart.ItemCount()))
		response.Success(w, http.StatusOK, s.Cart.State())
	}
}

// UpdateItem godoc
//	@Summary		Change a cart line's quantity
//	@Description	A quantity of 0 removes the line.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			id			path		int								true	"Cart item ID"
//	@Param			quantity	body		models.UpdateQuantityRequest	true	"New quantity"
//	@Success		200			{object}	models.CartState				"Updated cart"
//	@Failure		400			{object}	response.ErrorResponse			"Invalid input or not enough stock"
//	@Router			/cart/items/{id} [patch]
func (h *CartHandler) UpdateItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		s, ok := currentSession(w, r)
		if !ok {
			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.UpdateQuantityRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid cart quantity input")
			return
		}

		if err := s.Cart.UpdateQuantity(r.Context(), id, req.Quantity); err != nil {
			logger.Warn("Failed to update cart item", slog.Int64("itemId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, s.Cart.State())
	}
}

// RemoveItem godoc
//	@Summary		Remove a cart line
//	@Tags			Cart
//	@Produce		json
//	@Param			id	path		int						true	"Cart item ID"
//	@Success		200	{object}	models.CartState		"Updated cart"
//	@Router			/cart/items/{id} [delete]
func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		s, ok := currentSession(w, r)
		if !ok {
			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		if err := s.Cart.RemoveItem(r.Context(), id); err != nil {
			middleware.LoggerFromContext(r.Context()).Warn("Failed to remove cart item", slog.Int64("itemId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, s.Cart.State())
	}
}

// ClearCart godoc
//	@Summary		Empty the cart
//	@Tags			Cart
//	@Produce		json
//	@Success		200	{object}	models.CartState	"Empty cart"
//	@Router			/cart [delete]
func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		s, ok := currentSession(w, r)
		if !ok {
			return
		}

		if err := s.Cart.Clear(r.Context()); err != nil {
			middleware.LoggerFromContext(r.Context()).Warn("Failed to clear cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, s.Cart.State())
	}
}
