package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront-console/internal/models"
	"github.com/stretchr/testify/mock"
)

type CatalogService struct {
	mock.Mock
}

func (m *CatalogService) ListProducts(ctx context.Context, query models.ProductQuery, includeHidden bool) (*models.Page[models.Product], error) {
	args := m.Called(ctx, query, includeHidden)
	page, _ := args.Get(0).(*models.Page[models.Product])
	return page, args.Error(1)
}

func (m *CatalogService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	args := m.Called(ctx, id)
	product, _ := args.Get(0).(*models.Product)
	return product, args.Error(1)
}

func (m *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	categories, _ := args.Get(0).([]models.Category)
	return categories, args.Error(1)
}

func (m *CatalogService) RateProduct(ctx context.Context, id int64, rating int) (*models.Product, error) {
	args := m.Called(ctx, id, rating)
	product, _ := args.Get(0).(*models.Product)
	return product, args.Error(1)
}

func (m *CatalogService) CommentProduct(ctx context.Context, id int64, text string) (*models.Product, error) {
	args := m.Called(ctx, id, text)
	product, _ := args.Get(0).(*models.Product)
	return product, args.Error(1)
}
