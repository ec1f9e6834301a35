package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront-console/internal/backend"
	"github.com/aaravmahajanofficial/storefront-console/internal/models"
	"github.com/stretchr/testify/mock"
)

type OrderAPI struct {
	mock.Mock
}

func (m *OrderAPI) ListOrders(ctx context.Context, filter backend.OrderFilter) (*backend.List[models.Order], error) {
	args := m.Called(ctx, filter)
	list, _ := args.Get(0).(*backend.List[models.Order])
	return list, args.Error(1)
}

func (m *OrderAPI) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	args := m.Called(ctx, id)
	order, _ := args.Get(0).(*models.Order)
	return order, args.Error(1)
}

func (m *OrderAPI) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error) {
	args := m.Called(ctx, req)
	order, _ := args.Get(0).(*models.Order)
	return order, args.Error(1)
}

func (m *OrderAPI) CancelOrder(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
