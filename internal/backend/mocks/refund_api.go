package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront-console/internal/models"
	"github.com/stretchr/testify/mock"
)

type RefundAPI struct {
	mock.Mock
}

func (m *RefundAPI) MyRefunds(ctx context.Context) ([]models.RefundRequest, error) {
	args := m.Called(ctx)
	refunds, _ := args.Get(0).([]models.RefundRequest)
	return refunds, args.Error(1)
}

func (m *RefundAPI) PendingRefunds(ctx context.Context) ([]models.RefundRequest, error) {
	args := m.Called(ctx)
	refunds, _ := args.Get(0).([]models.RefundRequest)
	return refunds, args.Error(1)
}

func (m *RefundAPI) CreateRefund(ctx context.Context, orderItemID int64, reason string) (*models.RefundRequest, error) {
	args := m.Called(ctx, orderItemID, reason)
	refund, _ := args.Get(0).(*models.RefundRequest)
	return refund, args.Error(1)
}

func (m *RefundAPI) DeleteRefund(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *RefundAPI) ApproveRefund(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *RefundAPI) RejectRefund(ctx context.Context, id int64, reason string) error {
	args := m.Called(ctx, id, reason)
	return args.Error(0)
}
