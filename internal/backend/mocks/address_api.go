package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront-console/internal/models"
	"github.com/stretchr/testify/mock"
)

type AddressAPI struct {
	mock.Mock
}

func (m *AddressAPI) ListAddresses(ctx context.Context) ([]models.Address, error) {
	args := m.Called(ctx)
	addresses, _ := args.Get(0).([]models.Address)
	return addresses, args.Error(1)
}

func (m *AddressAPI) CreateAddress(ctx context.Context, req *models.AddressRequest) (*models.Address, error) {
	args := m.Called(ctx, req)
	address, _ := args.Get(0).(*models.Address)
	return address, args.Error(1)
}

func (m *AddressAPI) UpdateAddress(ctx context.Context, id int64, req *models.AddressRequest) (*models.Address, error) {
	args := m.Called(ctx, id, req)
	address, _ := args.Get(0).(*models.Address)
	return address, args.Error(1)
}

func (m *AddressAPI) DeleteAddress(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *AddressAPI) SetMainAddress(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
