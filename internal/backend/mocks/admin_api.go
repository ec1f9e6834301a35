package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront-console/internal/backend"
	"github.com/aaravmahajanofficial/storefront-console/internal/models"
	"github.com/stretchr/testify/mock"
)

type AdminAPI struct {
	mock.Mock
}

func (m *AdminAPI) UpdatePrice(ctx context.Context, productID int64, price models.Money) error {
	args := m.Called(ctx, productID, price)
	return args.Error(0)
}

func (m *AdminAPI) ApplyDiscount(ctx context.Context, productID int64, percent float64) error {
	args := m.Called(ctx, productID, percent)
	return args.Error(0)
}

func (m *AdminAPI) UpdateStock(ctx context.Context, productID int64, quantity int) error {
	args := m.Called(ctx, productID, quantity)
	return args.Error(0)
}

func (m *AdminAPI) SetVisibility(ctx context.Context, productID int64, visible bool) error {
	args := m.Called(ctx, productID, visible)
	return args.Error(0)
}

func (m *AdminAPI) ListAllOrders(ctx context.Context, filter backend.OrderFilter) (*backend.List[models.Order], error) {
	args := m.Called(ctx, filter)
	list, _ := args.Get(0).(*backend.List[models.Order])
	return list, args.Error(1)
}

func (m *AdminAPI) UpdateOrderStatus(ctx context.Context, orderID int64, status models.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}
