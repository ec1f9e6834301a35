package handlers_test

import (
	"net/http"
	"testing"

	"github.com/aaravmahajanofficial/storefront-console/internal/api/handlers"
	"github.com/aaravmahajanofficial/storefront-console/internal/backend"
	appErrors "github.com/aaravmahajanofficial/storefront-console/internal/errors"
	"github.com/aaravmahajanofficial/storefront-console/internal/models"
	"github.com/aaravmahajanofficial/storefront-console/internal/services/mocks"
	"github.com/aaravmahajanofficial/storefront-console/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestListProducts(t *testing.T) {
	t.Run("Success - Query is parsed and hidden products stay hidden", func(t *testing.T) {
		// Arrange
		mockCatalog := new(mocks.CatalogService)
		productHandler := handlers.NewProductHandler(mockCatalog, testValidator)
		expected := models.NewPage([]models.Product{{ID: 1, Name: "Desk lamp"}}, 13, 2, 12)

		mockCatalog.On("ListProducts", mock.Anything, models.ProductQuery{
			Search: "lamp", Category: "lighting", Sort: "popularity", Page: 2, PageSize: 12,
		}, false).Return(&expected, nil).Once()

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/products?search=+lamp&category=lighting&sort=popularity&page=2", nil, nil)

		// Act
		rr := serve(productHandler.ListProducts(), req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		var page models.Page[models.Product]
		decodeData(t, rr, &page)
		assert.Equal(t, 2, page.TotalPages)
		assert.True(t, page.HasPrevious)
		assert.False(t, page.HasNext)
		mockCatalog.AssertExpectations(t)
	})

	t.Run("Success - Staff see hidden products", func(t *testing.T) {
		// Arrange
		mockCatalog := new(mocks.CatalogService)
		productHandler := handlers.NewProductHandler(mockCatalog, testValidator)
		expected := models.NewPage([]models.Product{}, 0, 1, 12)
		mockCatalog.On("ListProducts", mock.Anything, mock.Anything, true).Return(&expected, nil).Once()

		staff := &models.User{ID: 2, Username: "grace", IsStaff: true, Role: models.RoleInventory}
		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/products", nil, staff, nil)

		// Act
		rr := serve(productHandler.ListProducts(), req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		mockCatalog.AssertExpectations(t)
	})

	t.Run("Failure - Unknown sort", func(t *testing.T) {
		// Arrange
		mockCatalog := new(mocks.CatalogService)
		productHandler := handlers.NewProductHandler(mockCatalog, testValidator)
		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/products?sort=cheapest", nil, nil)

		// Act
		rr := serve(productHandler.ListProducts(), req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, []string{"sort"}, decodeError(t, rr).Details)
		mockCatalog.AssertNotCalled(t, "ListProducts", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Backend down", func(t *testing.T) {
		// Arrange
		mockCatalog := new(mocks.CatalogService)
		productHandler := handlers.NewProductHandler(mockCatalog, testValidator)
		mockCatalog.On("ListProducts", mock.Anything, mock.Anything, false).
			Return(nil, appErrors.UpstreamUnavailableError("Failed to load products")).Once()
		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/products", nil, nil)

		// Act
		rr := serve(productHandler.ListProducts(), req)

		// Assert
		assert.Equal(t, http.StatusBadGateway, rr.Code)
		assert.Equal(t, appErrors.ErrCodeUpstreamUnavailable, decodeError(t, rr).Code)
	})
}

func TestGetProduct(t *testing.T) {
	t.Run("Success - Found", func(t *testing.T) {
		// Arrange
		mockCatalog := new(mocks.CatalogService)
		productHandler := handlers.NewProductHandler(mockCatalog, testValidator)
		mockCatalog.On("GetProduct", mock.Anything, int64(7)).Return(&models.Product{ID: 7, Name: "Desk lamp"}, nil).Once()
		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/products/7", nil, map[string]string{"id": "7"})

		// Act
		rr := serve(productHandler.GetProduct(), req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		var product models.Product
		decodeData(t, rr, &product)
		assert.Equal(t, "Desk lamp", product.Name)
	})

	t.Run("Failure - Backend 404 is kept", func(t *testing.T) {
		// Arrange
		mockCatalog := new(mocks.CatalogService)
		productHandler := handlers.NewProductHandler(mockCatalog, testValidator)
		notFound := appErrors.FromUpstream(&backend.ResponseError{StatusCode: http.StatusNotFound, Message: "Not found."}, "load product")
		mockCatalog.On("GetProduct", mock.Anything, int64(7)).Return(nil, notFound).Once()
		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/products/7", nil, map[string]string{"id": "7"})

		// Act
		rr := serve(productHandler.GetProduct(), req)

		// Assert
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "Not found.", decodeError(t, rr).Message)
	})

	t.Run("Failure - Negative id", func(t *testing.T) {
		// Arrange
		mockCatalog := new(mocks.CatalogService)
		productHandler := handlers.NewProductHandler(mockCatalog, testValidator)
		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/products/-1", nil, map[string]string{"id": "-1"})

		// Act
		rr := serve(productHandler.GetProduct(), req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestRateAndComment(t *testing.T) {
	customer := &models.User{ID: 1, Username: "ada", Role: models.RoleCustomer}

	t.Run("Success - Rating", func(t *testing.T) {
		// Arrange
		mockCatalog := new(mocks.CatalogService)
		productHandler := handlers.NewProductHandler(mockCatalog, testValidator)
		mockCatalog.On("RateProduct", mock.Anything, int64(7), 5).Return(&models.Product{ID: 7, RatingCount: 1, AverageRating: 5}, nil).Once()
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/products/7/rating",
			jsonBody(models.RateProductRequest{Rating: 5}), customer, map[string]string{"id": "7"})

		// Act
		rr := serve(productHandler.RateProduct(), req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		mockCatalog.AssertExpectations(t)
	})

	t.Run("Failure - Rating of six", func(t *testing.T) {
		// Arrange
		mockCatalog := new(mocks.CatalogService)
		productHandler := handlers.NewProductHandler(mockCatalog, testValidator)
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/products/7/rating",
			jsonBody(models.RateProductRequest{Rating: 6}), customer, map[string]string{"id": "7"})

		// Act
		rr := serve(productHandler.RateProduct(), req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, []string{"rating"}, decodeError(t, rr).Details)
	})

	t.Run("Success - Comment", func(t *testing.T) {
		// Arrange
		mockCatalog := new(mocks.CatalogService)
		productHandler := handlers.NewProductHandler(mockCatalog, testValidator)
		mockCatalog.On("CommentProduct", mock.Anything, int64(7), "Bright and sturdy").Return(&models.Product{ID: 7}, nil).Once()
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/products/7/comments",
			jsonBody(models.CommentProductRequest{Text: "Bright and sturdy"}), customer, map[string]string{"id": "7"})

		// Act
		rr := serve(productHandler.CommentProduct(), req)

		// Assert
		assert.Equal(t, http.StatusCreated, rr.Code)
		mockCatalog.AssertExpectations(t)
	})
}

func TestListCategories(t *testing.T) {
	// Arrange
	mockCatalog := new(mocks.CatalogService)
	productHandler := handlers.NewProductHandler(mockCatalog, testValidator)
	mockCatalog.On("ListCategories", mock.Anything).Return([]models.Category{{ID: 1, Name: "Lighting"}}, nil).Once()
	req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/categories", nil, nil)

	// Act
	rr := serve(productHandler.ListCategories(), req)

	// Assert
	assert.Equal(t, http.StatusOK, rr.Code)
	var categories []models.Category
	decodeData(t, rr, &categories)
	assert.Equal(t, []models.Category{{ID: 1, Name: "Lighting"}}, categories)
}
