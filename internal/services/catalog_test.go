package service_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/storefront-console/internal/backend"
	"github.com/aaravmahajanofficial/storefront-console/internal/backend/mocks"
	"github.com/aaravmahajanofficial/storefront-console/internal/cache"
	"github.com/aaravmahajanofficial/storefront-console/internal/config"
	appErrors "github.com/aaravmahajanofficial/storefront-console/internal/errors"
	"github.com/aaravmahajanofficial/storefront-console/internal/models"
	service "github.com/aaravmahajanofficial/storefront-console/internal/services"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func productIDs(products []models.Product) []int64 {
	ids := make([]int64, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestListProducts(t *testing.T) {
	catalog := []models.Product{
		{ID: 1, Name: "Lamp", RatingCount: 3, AverageRating: 4.0, DiscountPercent: 10},
		{ID: 2, Name: "Mug", RatingCount: 9, AverageRating: 3.5, DiscountPercent: 0},
		{ID: 3, Name: "Desk", RatingCount: 3, AverageRating: 4.8, DiscountPercent: 25},
		{ID: 4, Name: "Chair", RatingCount: 0, AverageRating: 0, DiscountPercent: 25},
	}

	listing := func() *backend.List[models.Product] {
		return &backend.List[models.Product]{Items: append([]models.Product(nil), catalog...), Count: 40}
	}

	t.Run("Success - Server side ordering is passed through", func(t *testing.T) {
		// Arrange
		api := new(mocks.ProductAPI)
		catalogService := service.NewCatalogService(api, nil)
		api.On("ListProducts", mock.Anything, backend.ProductFilter{
			Search:   "lamp",
			Category: "lighting",
			Ordering: "-created_at",
			Page:     2,
			PageSize: service.DefaultPageSize,
		}).Return(listing(), nil).Once()

		// Act
		page, err := catalogService.ListProducts(t.Context(), models.ProductQuery{
			Search:   "  lamp ",
			Category: "lighting",
			Sort:     "newest",
			Page:     2,
		}, false)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 2, 3, 4}, productIDs(page.Items))
		assert.Equal(t, 40, page.Count)
		assert.Equal(t, 4, page.TotalPages)
		assert.True(t, page.HasNext)
		assert.True(t, page.HasPrevious)
		api.AssertExpectations(t)
	})

	t.Run("Success - Popularity sorts by rating count then average", func(t *testing.T) {
		// Arrange
		api := new(mocks.ProductAPI)
		catalogService := service.NewCatalogService(api, nil)
		api.On("ListProducts", mock.Anything, mock.MatchedBy(func(f backend.ProductFilter) bool {
			return f.Ordering == ""
		})).Return(listing(), nil).Once()

		// Act
		page, err := catalogService.ListProducts(t.Context(), models.ProductQuery{Sort: "popularity"}, false)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, []int64{2, 3, 1, 4}, productIDs(page.Items))
	})

	t.Run("Success - Discount sort is stable", func(t *testing.T) {
		// Arrange
		api := new(mocks.ProductAPI)
		catalogService := service.NewCatalogService(api, nil)
		api.On("ListProducts", mock.Anything, mock.Anything).Return(listing(), nil).Once()

		// Act
		page, err := catalogService.ListProducts(t.Context(), models.ProductQuery{Sort: "discount"}, false)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, []int64{3, 4, 1, 2}, productIDs(page.Items))
	})

	t.Run("Success - Page size is clamped and hidden products requested for staff", func(t *testing.T) {
		// Arrange
		api := new(mocks.ProductAPI)
		catalogService := service.NewCatalogService(api, nil)
		api.On("ListProducts", mock.Anything, mock.MatchedBy(func(f backend.ProductFilter) bool {
			return f.Page == 1 && f.PageSize == service.MaxPageSize && f.IncludeHidden
		})).Return(&backend.List[models.Product]{Items: []models.Product{}}, nil).Once()

		// Act
		page, err := catalogService.ListProducts(t.Context(), models.ProductQuery{Page: -3, PageSize: 5000}, true)

		// Assert
		require.NoError(t, err)
		assert.Empty(t, page.Items)
		assert.Equal(t, 1, page.TotalPages)
		assert.False(t, page.HasNext)
	})

	t.Run("Failure - Backend unreachable", func(t *testing.T) {
		// Arrange
		api := new(mocks.ProductAPI)
		catalogService := service.NewCatalogService(api, nil)
		api.On("ListProducts", mock.Anything, mock.Anything).Return(nil, errors.New("dial tcp: connection refused")).Once()

		// Act
		page, err := catalogService.ListProducts(t.Context(), models.ProductQuery{}, false)

		// Assert
		assert.Nil(t, page)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, "Failed to load products", appErr.Message)
	})
}

func TestListCategories(t *testing.T) {
	categories := []models.Category{{ID: 1, Name: "Lighting"}, {ID: 2, Name: "Kitchen"}}
	data, err := json.Marshal(categories)
	require.NoError(t, err)
	key := cache.Key(cache.CategoryKeyPrefix, "all")

	setup := func() (service.CatalogService, *mocks.ProductAPI, redismock.ClientMock) {
		client, redisMock := redismock.NewClientMock()
		store := cache.NewRedisCache(client, &config.CacheConfig{DefaultTTL: time.Hour})
		api := new(mocks.ProductAPI)
		return service.NewCatalogService(api, store), api, redisMock
	}

	t.Run("Success - Cache hit skips the backend", func(t *testing.T) {
		// Arrange
		catalogService, api, redisMock := setup()
		redisMock.ExpectGet(key).SetVal(string(data))

		// Act
		got, err := catalogService.ListCategories(t.Context())

		// Assert
		require.NoError(t, err)
		assert.Equal(t, categories, got)
		api.AssertNotCalled(t, "ListCategories", mock.Anything)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("Success - Cache miss fetches and stores", func(t *testing.T) {
		// Arrange
		catalogService, api, redisMock := setup()
		redisMock.ExpectGet(key).SetErr(redis.Nil)
		redisMock.ExpectSet(key, data, 10*time.Minute).SetVal("OK")
		api.On("ListCategories", mock.Anything).Return(categories, nil).Once()

		// Act
		got, err := catalogService.ListCategories(t.Context())

		// Assert
		require.NoError(t, err)
		assert.Equal(t, categories, got)
		api.AssertExpectations(t)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("Success - Cache outage falls back to the backend", func(t *testing.T) {
		// Arrange
		catalogService, api, redisMock := setup()
		redisMock.ExpectGet(key).SetErr(errors.New("redis down"))
		redisMock.ExpectSet(key, data, 10*time.Minute).SetErr(errors.New("redis down"))
		api.On("ListCategories", mock.Anything).Return(categories, nil).Once()

		// Act
		got, err := catalogService.ListCategories(t.Context())

		// Assert
		require.NoError(t, err)
		assert.Equal(t, categories, got)
	})
}

func TestRateProduct(t *testing.T) {
	t.Run("Success - Rating refetches the product", func(t *testing.T) {
		// Arrange
		api := new(mocks.ProductAPI)
		catalogService := service.NewCatalogService(api, nil)
		api.On("RateProduct", mock.Anything, int64(7), 4).Return(nil).Once()
		api.On("GetProduct", mock.Anything, int64(7)).Return(&models.Product{ID: 7, AverageRating: 4.2, RatingCount: 5}, nil).Once()

		// Act
		product, err := catalogService.RateProduct(t.Context(), 7, 4)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 5, product.RatingCount)
		api.AssertExpectations(t)
	})

	for _, rating := range []int{0, 6, -1} {
		t.Run("Failure - Rating out of range "+itoa(int64(rating)), func(t *testing.T) {
			// Arrange
			api := new(mocks.ProductAPI)
			catalogService := service.NewCatalogService(api, nil)

			// Act
			product, err := catalogService.RateProduct(t.Context(), 7, rating)

			// Assert
			assert.Nil(t, product)
			appErr, ok := appErrors.IsAppError(err)
			require.True(t, ok)
			assert.Equal(t, "rating", appErr.Detail)
			api.AssertNotCalled(t, "RateProduct", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestCommentProduct(t *testing.T) {
	t.Run("Success - Markup is stripped before posting", func(t *testing.T) {
		// Arrange
		api := new(mocks.ProductAPI)
		catalogService := service.NewCatalogService(api, nil)
		api.On("CommentProduct", mock.Anything, int64(7), "Great lamp").Return(nil).Once()
		api.On("GetProduct", mock.Anything, int64(7)).Return(&models.Product{ID: 7}, nil).Once()

		// Act
		_, err := catalogService.CommentProduct(t.Context(), 7, `<script>alert(1)</script>Great <b>lamp</b>`)

		// Assert
		require.NoError(t, err)
		api.AssertExpectations(t)
	})

	t.Run("Success - Punctuation arrives unescaped", func(t *testing.T) {
		// Arrange
		api := new(mocks.ProductAPI)
		catalogService := service.NewCatalogService(api, nil)
		api.On("CommentProduct", mock.Anything, int64(7), `It's "great" & cheap`).Return(nil).Once()
		api.On("GetProduct", mock.Anything, int64(7)).Return(&models.Product{ID: 7}, nil).Once()

		// Act
		_, err := catalogService.CommentProduct(t.Context(), 7, `It's "great" & <i>cheap</i>`)

		// Assert
		require.NoError(t, err)
		api.AssertExpectations(t)
	})

	t.Run("Failure - Nothing left after sanitising", func(t *testing.T) {
		// Arrange
		api := new(mocks.ProductAPI)
		catalogService := service.NewCatalogService(api, nil)

		// Act
		_, err := catalogService.CommentProduct(t.Context(), 7, "<img src=x>  ")

		// Assert
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)
		api.AssertNotCalled(t, "CommentProduct", mock.Anything, mock.Anything, mock.Anything)
	})
}
