package backend

import (
	"context"
	"net/http"

	"github.com/aaravmahajanofficial/storefront-console/internal/models"
)

func (c *Client) UpdatePrice(ctx context.Context, productID int64, price models.Money) error {
	_, err := c.send(ctx, http.MethodPost, "/api/products/{id}/update_price/", idPath("/api/products/%d/update_price/", productID), map[string]any{
		"price": price.String(),
	})
	return err
}

func (c *Client) ApplyDiscount(ctx context.Context, productID int64, percent float64) error {
	_, err := c.send(ctx, http.MethodPost, "/api/products/{id}/apply_discount/", idPath("/api/products/%d/apply_discount/", productID), map[string]any{
		"discount_percent": percent,
	})
	return err
}

func (c *Client) UpdateStock(ctx context.Context, productID int64, quantity int) error {
	_, err := c.send(ctx, http.MethodPost, "/api/products/{id}/update_stock/", idPath("/api/products/%d/update_stock/", productID), map[string]any{
		"stock_quantity": quantity,
	})
	return err
}

func (c *Client) SetVisibility(ctx context.Context, productID int64, visible bool) error {
	_, err := c.send(ctx, http.MethodPost, "/api/products/{id}/toggle_visibility/", idPath("/api/products/%d/toggle_visibility/", productID), map[string]any{
		"is_visible": visible,
	})
	return err
}

func (c *Client) ListAllOrders(ctx context.Context, filter OrderFilter) (*List[models.Order], error) {
	body, err := c.get(ctx, "/api/orders/all_orders/", "/api/orders/all_orders/", filter.query())
	if err != nil {
		return nil, err
	}

	return decodeList[models.Order](body)
}

func (c *Client) UpdateOrderStatus(ctx context.Context, orderID int64, status models.OrderStatus) error {
	_, err := c.send(ctx, http.MethodPost, "/api/orders/{id}/update_status/", idPath("/api/orders/%d/update_status/", orderID), map[string]any{
		"status": status,
	})
	return err
}
