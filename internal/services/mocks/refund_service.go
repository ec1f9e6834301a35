package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront-console/internal/models"
	"github.com/stretchr/testify/mock"
)

type RefundService struct {
	mock.Mock
}

func (m *RefundService) MyRefunds(ctx context.Context) ([]models.RefundRequest, error) {
	args := m.Called(ctx)
	refunds, _ := args.Get(0).([]models.RefundRequest)
	return refunds, args.Error(1)
}

func (m *RefundService) CreateRefund(ctx context.Context, req *models.CreateRefundRequest) (*models.RefundRequest, error) {
	args := m.Called(ctx, req)
	refund, _ := args.Get(0).(*models.RefundRequest)
	return refund, args.Error(1)
}

func (m *RefundService) CancelRefund(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *RefundService) PendingRefunds(ctx context.Context) ([]models.RefundRequest, error) {
	args := m.Called(ctx)
	refunds, _ := args.Get(0).([]models.RefundRequest)
	return refunds, args.Error(1)
}

func (m *RefundService) ApproveRefund(ctx context.Context, id int64) ([]models.RefundRequest, error) {
	args := m.Called(ctx, id)
	refunds, _ := args.Get(0).([]models.RefundRequest)
	return refunds, args.Error(1)
}

func (m *RefundService) RejectRefund(ctx context.Context, id int64, reason string) ([]models.RefundRequest, error) {
	args := m.Called(ctx, id, reason)
	refunds, _ := args.Get(0).([]models.RefundRequest)
	return refunds, args.Error(1)
}
