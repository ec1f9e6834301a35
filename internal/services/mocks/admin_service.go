package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront-console/internal/models"
	"github.com/stretchr/testify/mock"
)

type AdminService struct {
	mock.Mock
}

func (m *AdminService) UpdatePrice(ctx context.Context, productID int64, price models.Money) (*models.Product, error) {
	args := m.Called(ctx, productID, price)
	product, _ := args.Get(0).(*models.Product)
	return product, args.Error(1)
}

func (m *AdminService) ApplyDiscount(ctx context.Context, productID int64, percent float64) (*models.Product, error) {
	args := m.Called(ctx, productID, percent)
	product, _ := args.Get(0).(*models.Product)
	return product, args.Error(1)
}

func (m *AdminService) UpdateStock(ctx context.Context, productID int64, quantity int) (*models.Product, error) {
	args := m.Called(ctx, productID, quantity)
	product, _ := args.Get(0).(*models.Product)
	return product, args.Error(1)
}

func (m *AdminService) SetVisibility(ctx context.Context, productID int64, visible bool) (*models.Product, error) {
	args := m.Called(ctx, productID, visible)
	product, _ := args.Get(0).(*models.Product)
	return product, args.Error(1)
}

func (m *AdminService) ListDeliveries(ctx context.Context, query models.OrderQuery) (*models.Page[models.Order], error) {
	args := m.Called(ctx, query)
	page, _ := args.Get(0).(*models.Page[models.Order])
	return page, args.Error(1)
}

func (m *AdminService) AdvanceOrder(ctx context.Context, orderID int64, status models.OrderStatus) (*models.Order, error) {
	args := m.Called(ctx, orderID, status)
	order, _ := args.Get(0).(*models.Order)
	return order, args.Error(1)
}
