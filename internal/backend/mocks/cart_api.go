package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront-console/internal/models"
	"github.com/stretchr/testify/mock"
)

type CartAPI struct {
	mock.Mock
}

func (m *CartAPI) GetCart(ctx context.Context) (*models.Cart, error) {
	args := m.Called(ctx)
	cart, _ := args.Get(0).(*models.Cart)
	return cart, args.Error(1)
}

func (m *CartAPI) AddCartItem(ctx context.Context, productID int64, quantity int) error {
	args := m.Called(ctx, productID, quantity)
	return args.Error(0)
}

func (m *CartAPI) UpdateCartItem(ctx context.Context, itemID int64, quantity int) error {
	args := m.Called(ctx, itemID, quantity)
	return args.Error(0)
}

func (m *CartAPI) RemoveCartItem(ctx context.Context, itemID int64) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

func (m *CartAPI) ClearCart(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
