package service

import (
	"context"

	"github.com/aaravmahajanofficial/storefront-console/internal/backend"
	"github.com/aaravmahajanofficial/storefront-console/internal/errors"
	"github.com/aaravmahajanofficial/storefront-console/internal/models"
)

// AddressService manages the saved shipping addresses. Every change returns the refetched list.
type AddressService interface {
	ListAddresses(ctx context.Context) ([]models.Address, error)
	CreateAddress(ctx context.Context, req *models.AddressRequest) ([]models.Address, error)
	UpdateAddress(ctx context.Context, id int64, req *models.AddressRequest) ([]models.Address, error)
	DeleteAddress(ctx context.Context, id int64) ([]models.Address, error)
	SetMainAddress(ctx context.Context, id int64) ([]models.Address, error)
}

type addressService struct {
	api backend.AddressAPI
}

func NewAddressService(api backend.AddressAPI) AddressService {
	return &addressService{api: api}
}

func (s *addressService) ListAddresses(ctx context.Context) ([]models.Address, error) {
	addresses, err := s.api.ListAddresses(ctx)
	if err != nil {
		return nil, errors.FromUpstream(err, "load addresses")
	}

	return addresses, nil
}

func (s *addressService) CreateAddress(ctx context.Context, req *models.AddressRequest) ([]models.Address, error) {
	if _, err := s.api.CreateAddress(ctx, req); err != nil {
		return nil, errors.FromUpstream(err, "save address")
	}

	return s.ListAddresses(ctx)
}

func (s *addressService) UpdateAddress(ctx context.Context, id int64, req *models.AddressRequest) ([]models.Address, error) {
	if _, err := s.api.UpdateAddress(ctx, id, req); err != nil {
		return nil, errors.FromUpstream(err, "update address")
	}

	return s.ListAddresses(ctx)
}

func (s *addressService) DeleteAddress(ctx context.Context, id int64) ([]models.Address, error) {
	if err := s.api.DeleteAddress(ctx, id); err != nil {
		return nil, errors.FromUpstream(err, "delete address")
	}

	return s.ListAddresses(ctx)
}

// SetMainAddress never flips flags locally: the backend decides which address is main.
func (s *addressService) SetMainAddress(ctx context.Context, id int64) ([]models.Address, error) {
	if err := s.api.SetMainAddress(ctx, id); err != nil {
		return nil, errors.FromUpstream(err, "set main address")
	}

	return s.ListAddresses(ctx)
}
