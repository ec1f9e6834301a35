package service

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/storefront-console/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-console/internal/backend"
	"github.com/aaravmahajanofficial/storefront-console/internal/cache"
	"github.com/aaravmahajanofficial/storefront-console/internal/errors"
	"github.com/aaravmahajanofficial/storefront-console/internal/models"
	"github.com/microcosm-cc/bluemonday"
)

const (
	DefaultPageSize = 12
	MaxPageSize     = 100
	categoriesTTL   = 10 * time.Minute
)

// server side ordering understood by the backend
var serverOrdering = map[string]string{
	"price":  "price",
	"-price": "-price",
	"name":   "name",
	"-name":  "-name",
	"newest": "-created_at",
}

type CatalogService interface {
	ListProducts(ctx context.Context, query models.ProductQuery, includeHidden bool) (*models.Page[models.Product], error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	RateProduct(ctx context.Context, id int64, rating int) (*models.Product, error)
	CommentProduct(ctx context.Context, id int64, text string) (*models.Product, error)
}

type catalogService struct {
	api    backend.ProductAPI
	cache  cache.Cache
	policy *bluemonday.Policy
}

// NewCatalogService builds the catalog. store may be nil, which disables category caching.
func NewCatalogService(api backend.ProductAPI, store cache.Cache) CatalogService {
	return &catalogService{api: api, cache: store, policy: bluemonday.StrictPolicy()}
}

func (s *catalogService) ListProducts(ctx context.Context, query models.ProductQuery, includeHidden bool) (*models.Page[models.Product], error) {
	page, pageSize := normalizePage(query.Page, query.PageSize)

	list, err := s.api.ListProducts(ctx, backend.ProductFilter{
		Search:        strings.TrimSpace(query.Search),
		Category:      query.Category,
		Ordering:      serverOrdering[query.Sort],
		Page:          page,
		PageSize:      pageSize,
		IncludeHidden: includeHidden,
	})
	if err != nil {
		return nil, errors.FromUpstream(err, "load products")
	}

	products := list.Items
	switch query.Sort {
	case "popularity":
		sort.SliceStable(products, func(i, j int) bool {
			if products[i].RatingCount != products[j].RatingCount {
				return products[i].RatingCount > products[j].RatingCount
			}
			return products[i].AverageRating > products[j].AverageRating
		})
	case "discount":
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].DiscountPercent > products[j].DiscountPercent
		})
	}

	result := models.NewPage(products, list.Count, page, pageSize)
	return &result, nil
}

func (s *catalogService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	product, err := s.api.GetProduct(ctx, id)
	if err != nil {
		return nil, errors.FromUpstream(err, "load product")
	}

	return product, nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	logger := middleware.LoggerFromContext(ctx)
	key := cache.Key(cache.CategoryKeyPrefix, "all")

	if s.cache != nil {
		var cached []models.Category
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			logger.Warn("Category cache read failed", slog.Any("error", err))
		}
		if found {
			return cached, nil
		}
	}

	categories, err := s.api.ListCategories(ctx)
	if err != nil {
		return nil, errors.FromUpstream(err, "load categories")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, categories, categoriesTTL); err != nil {
			logger.Warn("Category cache write failed", slog.Any("error", err))
		}
	}

	return categories, nil
}

func (s *catalogService) RateProduct(ctx context.Context, id int64, rating int) (*models.Product, error) {
	if rating < 1 || rating > 5 {
		return nil, errors.AddValidationError("rating", "must be between 1 and 5")
	}

	if err := s.api.RateProduct(ctx, id, rating); err != nil {
		return nil, errors.FromUpstream(err, "rate product")
	}

	return s.GetProduct(ctx, id)
}

func (s *catalogService) CommentProduct(ctx context.Context, id int64, text string) (*models.Product, error) {
	text = plainText(s.policy, text)
	if text == "" {
		return nil, errors.AddValidationError("text", "is required")
	}

	if err := s.api.CommentProduct(ctx, id, text); err != nil {
		return nil, errors.FromUpstream(err, "post comment")
	}

	return s.GetProduct(ctx, id)
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}

	switch {
	case pageSize < 1:
		pageSize = DefaultPageSize
	case pageSize > MaxPageSize:
		pageSize = MaxPageSize
	}

	return page, pageSize
}
