package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront-console/internal/models"
	"github.com/stretchr/testify/mock"
)

type AddressService struct {
	mock.Mock
}

func (m *AddressService) ListAddresses(ctx context.Context) ([]models.Address, error) {
	args := m.Called(ctx)
	addresses, _ := args.Get(0).([]models.Address)
	return addresses, args.Error(1)
}

func (m *AddressService) CreateAddress(ctx context.Context, req *models.AddressRequest) ([]models.Address, error) {
	args := m.Called(ctx, req)
	addresses, _ := args.Get(0).([]models.Address)
	return addresses, args.Error(1)
}

func (m *AddressService) UpdateAddress(ctx context.Context, id int64, req *models.AddressRequest) ([]models.Address, error) {
	args := m.Called(ctx, id, req)
	addresses, _ := args.Get(0).([]models.Address)
	return addresses, args.Error(1)
}

func (m *AddressService) DeleteAddress(ctx context.Context, id int64) ([]models.Address, error) {
	args := m.Called(ctx, id)
	addresses, _ := args.Get(0).([]models.Address)
	return addresses, args.Error(1)
}

func (m *AddressService) SetMainAddress(ctx context.Context, id int64) ([]models.Address, error) {
	args := m.Called(ctx, id)
	addresses, _ := args.Get(0).([]models.Address)
	return addresses, args.Error(1)
}
