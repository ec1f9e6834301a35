package service

import (
	"context"

	"github.com/aaravmahajanofficial/storefront-console/internal/backend"
	"github.com/aaravmahajanofficial/storefront-console/internal/errors"
	"github.com/aaravmahajanofficial/storefront-console/internal/models"
	"github.com/microcosm-cc/bluemonday"
)

type RefundService interface {
	MyRefunds(ctx context.Context) ([]models.RefundRequest, error)
	CreateRefund(ctx context.Context, req *models.CreateRefundRequest) (*models.RefundRequest, error)
	CancelRefund(ctx context.Context, id int64) error
	PendingRefunds(ctx context.Context) ([]models.RefundRequest, error)
	ApproveRefund(ctx context.Context, id int64) ([]models.RefundRequest, error)
	RejectRefund(ctx context.Context, id int64, reason string) ([]models.RefundRequest, error)
}

type refundService struct {
	refunds backend.RefundAPI
	orders  backend.OrderAPI
	policy  *bluemonday.Policy
}

func NewRefundService(refunds backend.RefundAPI, orders backend.OrderAPI) RefundService {
	return &refundService{refunds: refunds, orders: orders, policy: bluemonday.StrictPolicy()}
}

func (s *refundService) MyRefunds(ctx context.Context) ([]models.RefundRequest, error) {
	refunds, err := s.refunds.MyRefunds(ctx)
	if err != nil {
		return nil, errors.FromUpstream(err, "load refund requests")
	}

	return refunds, nil
}

// CreateRefund asks for a refund of one line of a delivered order.
func (s *refundService) CreateRefund(ctx context.Context, req *models.CreateRefundRequest) (*models.RefundRequest, error) {
	reason := plainText(s.policy, req.Reason)
	if reason == "" {
		return nil, errors.AddValidationError("reason", "is required")
	}

	order, err := s.orders.GetOrder(ctx, req.OrderID)
	if err != nil {
		return nil, errors.FromUpstream(err, "load order")
	}

	if order.Status != models.OrderStatusDelivered {
		return nil, errors.BadRequestError("Refunds can only be requested for delivered orders")
	}

	if !order.HasItem(req.OrderItemID) {
		return nil, errors.BadRequestError("The item does not belong to this order")
	}

	refund, err := s.refunds.CreateRefund(ctx, req.OrderItemID, reason)
	if err != nil {
		return nil, errors.FromUpstream(err, "request refund")
	}

	return refund, nil
}

// CancelRefund withdraws one of the user's own requests while it is still pending.
func (s *refundService) CancelRefund(ctx context.Context, id int64) error {
	mine, err := s.MyRefunds(ctx)
	if err != nil {
		return err
	}

	refund := findRefund(mine, id)
	if refund == nil {
		return errors.NotFoundError("Refund request not found")
	}

	if refund.Status != models.RefundStatusPending {
		return errors.ConflictError("Only pending refund requests can be cancelled")
	}

	if err := s.refunds.DeleteRefund(ctx, id); err != nil {
		return errors.FromUpstream(err, "cancel refund request")
	}

	return nil
}

func (s *refundService) PendingRefunds(ctx context.Context) ([]models.RefundRequest, error) {
	refunds, err := s.refunds.PendingRefunds(ctx)
	if err != nil {
		return nil, errors.FromUpstream(err, "load pending refunds")
	}

	return refunds, nil
}

// ApproveRefund resolves a pending request and returns the refetched pending list.
func (s *refundService) ApproveRefund(ctx context.Context, id int64) ([]models.RefundRequest, error) {
	if err := s.ensurePending(ctx, id); err != nil {
		return nil, err
	}

	if err := s.refunds.ApproveRefund(ctx, id); err != nil {
		return nil, errors.FromUpstream(err, "approve refund")
	}

	return s.PendingRefunds(ctx)
}

func (s *refundService) RejectRefund(ctx context.Context, id int64, reason string) ([]models.RefundRequest, error) {
	reason = plainText(s.policy, reason)
	if reason == "" {
		return nil, errors.AddValidationError("reason", "is required")
	}

	if err := s.ensurePending(ctx, id); err != nil {
		return nil, err
	}

	if err := s.refunds.RejectRefund(ctx, id, reason); err != nil {
		return nil, errors.FromUpstream(err, "reject refund")
	}

	return s.PendingRefunds(ctx)
}

// resolved requests drop off the pending list
func (s *refundService) ensurePending(ctx context.Context, id int64) error {
	pending, err := s.PendingRefunds(ctx)
	if err != nil {
		return err
	}

	if refund := findRefund(pending, id); refund == nil || refund.Status.Terminal() {
		return errors.ConflictError("Refund request is not pending")
	}

	return nil
}

func findRefund(refunds []models.RefundRequest, id int64) *models.RefundRequest {
	for i := range refunds {
		if refunds[i].ID == id {
			return &refunds[i]
		}
	}

	return nil
}
