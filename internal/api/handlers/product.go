package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/aaravmahajanofficial/storefront-console/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-console/internal/models"
	service "github.com/aaravmahajanofficial/storefront-console/internal/services"
	"github.com/aaravmahajanofficial/storefront-console/internal/utils"
	"github.com/aaravmahajanofficial/storefront-console/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type ProductHandler struct {
	catalogService service.CatalogService
	validator      *validator.Validate
}

func NewProductHandler(catalogService service.CatalogService, validate *validator.Validate) *ProductHandler {
	return &ProductHandler{catalogService: catalogService, validator: validate}
}

// ListProducts godoc
//	@Summary		Browse the catalog
//	@Description	Lists products with search, category filter and sorting. Staff also see hidden products.
//	@Tags			Products
//	@Produce		json
//	@Param			search		query		string										false	"Search text"
//	@Param			category	query		string										false	"Category"
//	@Param			sort		query		string										false	"price, -price, name, -name, newest, popularity or discount"
//	@Param			page		query		int											false	"Page number (default: 1)"				minimum(1)
//	@Param			page_size	query		int											false	"Items per page (default: 12, max: 100)"	minimum(1)	maximum(100)
//	@Success		200			{object}	models.Page[models.Product]					"Products"
//	@Failure		400			{object}	response.ErrorResponse						"Invalid query"
//	@Failure		502			{object}	response.ErrorResponse						"Backend unreachable"
//	@Router			/products [get]
func (h *ProductHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		q := r.URL.Query()
		query := models.ProductQuery{
			Search:   strings.TrimSpace(q.Get("search")),
			Category: q.Get("category"),
			Sort:     q.Get("sort"),
			Page:     utils.QueryInt(r, "page", 1),
			PageSize: utils.QueryInt(r, "page_size", service.DefaultPageSize),
		}

		if err := utils.ValidateStruct(h.validator, &query); err != nil {
			logger.Warn("Invalid catalog query", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		user := middleware.UserFromContext(r.Context())
		includeHidden := user != nil && user.IsStaff

		page, err := h.catalogService.ListProducts(r.Context(), query, includeHidden)
		if err != nil {
			logger.Error("Failed to list products", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Products listed", slog.Int("count", len(page.Items)), slog.Int("page", page.Page))
		response.Success(w, http.StatusOK, page)
	}
}

// GetProduct godoc
//	@Summary		Get a product
//	@Tags			Products
//	@Produce		json
//	@Param			id	path		int						true	"Product ID"
//	@Success		200	{object}	models.Product			"Product"
//	@Failure		404	{object}	response.ErrorResponse	"Product not found"
//	@Router			/products/{id} [get]
func (h *ProductHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid product id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		product, err := h.catalogService.GetProduct(r.Context(), id)
		if err != nil {
			logger.Warn("Failed to get product", slog.Int64("productId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, product)
	}
}

// ListCategories godoc
//	@Summary		List categories
//	@Tags			Products
//	@Produce		json
//	@Success		200	{array}		models.Category			"Categories"
//	@Failure		502	{object}	response.ErrorResponse	"Backend unreachable"
//	@Router			/categories [get]
func (h *ProductHandler) ListCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		categories, err := h.catalogService.ListCategories(r.Context())
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to list categories", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, categories)
	}
}

// RateProduct godoc
//	@Summary		Rate a product
//	@Tags			Products
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int							true	"Product ID"
//	@Param			rating	body		models.RateProductRequest	true	"Rating from 1 to 5"
//	@Success		200		{object}	models.Product				"Product with the new average"
//	@Failure		400		{object}	response.ErrorResponse		"Invalid rating"
//	@Failure		401		{object}	response.ErrorResponse		"Authentication required"
//	@Router			/products/{id}/rating [post]
func (h *ProductHandler) RateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.RateProductRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid rating input")
			return
		}

		product, err := h.catalogService.RateProduct(r.Context(), id, req.Rating)
		if err != nil {
			logger.Warn("Failed to rate product", slog.Int64("productId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Product rated", slog.Int64("productId", id), slog.Int("rating", req.Rating))
		response.Success(w, http.StatusOK, product)
	}
}

// CommentProduct godoc
//	@Summary		Comment on a product
//	@Tags			Products
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int								true	"Product ID"
//	@Param			comment	body		models.CommentProductRequest	true	"Comment text"
//	@Success		201		{object}	models.Product					"Product with the new comment"
//	@Failure		400		{object}	response.ErrorResponse			"Empty comment"
//	@Failure		401		{object}	response.ErrorResponse			"Authentication required"
//	@Router			/products/{id}/comments [post]
func (h *ProductHandler) CommentProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.CommentProductRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid comment input")
			return
		}

		product, err := h.catalogService.CommentProduct(r.Context(), id, req.Text)
		if err != nil {
			logger.Warn("Failed to post comment", slog.Int64("productId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusCreated, product)
	}
}
