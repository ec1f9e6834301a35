package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront-console/internal/models"
	"github.com/stretchr/testify/mock"
)

type OrderService struct {
	mock.Mock
}

func (m *OrderService) ListOrders(ctx context.Context, query models.OrderQuery) (*models.Page[models.Order], error) {
	args := m.Called(ctx, query)
	page, _ := args.Get(0).(*models.Page[models.Order])
	return page, args.Error(1)
}

func (m *OrderService) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	args := m.Called(ctx, id)
	order, _ := args.Get(0).(*models.Order)
	return order, args.Error(1)
}

func (m *OrderService) CancelOrder(ctx context.Context, id int64) (*models.Order, error) {
	args := m.Called(ctx, id)
	order, _ := args.Get(0).(*models.Order)
	return order, args.Error(1)
}
