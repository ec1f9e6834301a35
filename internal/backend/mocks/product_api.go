package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront-console/internal/backend"
	"github.com/aaravmahajanofficial/storefront-console/internal/models"
	"github.com/stretchr/testify/mock"
)

type ProductAPI struct {
	mock.Mock
}

func (m *ProductAPI) ListProducts(ctx context.Context, filter backend.ProductFilter) (*backend.List[models.Product], error) {
	args := m.Called(ctx, filter)
	list, _ := args.Get(0).(*backend.List[models.Product])
	return list, args.Error(1)
}

func (m *ProductAPI) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	args := m.Called(ctx, id)
	product, _ := args.Get(0).(*models.Product)
	return product, args.Error(1)
}

func (m *ProductAPI) ListCategories(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	categories, _ := args.Get(0).([]models.Category)
	return categories, args.Error(1)
}

func (m *ProductAPI) RateProduct(ctx context.Context, id int64, rating int) error {
	args := m.Called(ctx, id, rating)
	return args.Error(0)
}

func (m *ProductAPI) CommentProduct(ctx context.Context, id int64, text string) error {
	args := m.Called(ctx, id, text)
	return args.Error(0)
}
