package backend

import (
	"context"
	"net/http"

	"github.com/aaravmahajanofficial/storefront-console/internal/models"
)

func (c *Client) MyRefunds(ctx context.Context) ([]models.RefundRequest, error) {
	return c.listRefunds(ctx, "/api/refunds/my_refunds/")
}

func (c *Client) PendingRefunds(ctx context.Context) ([]models.RefundRequest, error) {
	return c.listRefunds(ctx, "/api/refunds/pending_refunds/")
}

func (c *Client) listRefunds(ctx context.Context, path string) ([]models.RefundRequest, error) {
	body, err := c.get(ctx, path, path, nil)
	if err != nil {
		return nil, err
	}

	list, err := decodeList[models.RefundRequest](body)
	if err != nil {
		return nil, err
	}

	return list.Items, nil
}

func (c *Client) CreateRefund(ctx context.Context, orderItemID int64, reason string) (*models.RefundRequest, error) {
	body, err := c.send(ctx, http.MethodPost, "/api/refunds/", "/api/refunds/", map[string]any{
		"order_item": orderItemID,
		"reason":     reason,
	})
	if err != nil {
		return nil, err
	}

	var refund models.RefundRequest
	if err := decodeInto(body, &refund); err != nil {
		return nil, err
	}

	return &refund, nil
}

func (c *Client) DeleteRefund(ctx context.Context, id int64) error {
	_, err := c.send(ctx, http.MethodDelete, "/api/refunds/{id}/", idPath("/api/refunds/%d/", id), nil)
	return err
}

func (c *Client) ApproveRefund(ctx context.Context, id int64) error {
	_, err := c.send(ctx, http.MethodPost, "/api/refunds/{id}/approve/", idPath("/api/refunds/%d/approve/", id), nil)
	return err
}

func (c *Client) RejectRefund(ctx context.Context, id int64, reason string) error {
	_, err := c.send(ctx, http.MethodPost, "/api/refunds/{id}/reject/", idPath("/api/refunds/%d/reject/", id), map[string]any{
		"rejection_reason": reason,
	})
	return err
}
