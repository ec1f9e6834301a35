package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/aaravmahajanofficial/storefront-console/internal/models"
)

type OrderFilter struct {
	Status   models.OrderStatus
	Page     int
	PageSize int
}

func (f OrderFilter) query() url.Values {
	q := url.Values{}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}

	return pageQuery(q, f.Page, f.PageSize)
}

func (c *Client) ListOrders(ctx context.Context, filter OrderFilter) (*List[models.Order], error) {
	body, err := c.get(ctx, "/api/orders/", "/api/orders/", filter.query())
	if err != nil {
		return nil, err
	}

	return decodeList[models.Order](body)
}

func (c *Client) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	body, err := c.get(ctx, "/api/orders/{id}/", idPath("/api/orders/%d/", id), nil)
	if err != nil {
		return nil, err
	}

	var order models.Order
	if err := decodeInto(body, &order); err != nil {
		return nil, err
	}

	return &order, nil
}

func (c *Client) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error) {
	body, err := c.send(ctx, http.MethodPost, "/api/orders/", "/api/orders/", req)
	if err != nil {
		return nil, err
	}

	var order models.Order
	if err := decodeInto(body, &order); err != nil {
		return nil, err
	}
	if order.ID == 0 {
		return nil, fmt.Errorf("creating order: %w", ErrMissingOrderID)
	}

	return &order, nil
}

func (c *Client) CancelOrder(ctx context.Context, id int64) error {
	_, err := c.send(ctx, http.MethodPost, "/api/orders/{id}/cancel_order/", idPath("/api/orders/%d/cancel_order/", id), nil)
	return err
}
