package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront-console/internal/models"
	"github.com/stretchr/testify/mock"
)

type AuthAPI struct {
	mock.Mock
}

func (m *AuthAPI) EnsureCSRF(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *AuthAPI) CheckSession(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *AuthAPI) CurrentUser(ctx context.Context) (*models.User, error) {
	args := m.Called(ctx)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *AuthAPI) Login(ctx context.Context, req *models.LoginRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *AuthAPI) Logout(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *AuthAPI) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}
