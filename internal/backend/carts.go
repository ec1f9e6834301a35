package backend

import (
	"context"
	"net/http"

	"github.com/aaravmahajanofficial/storefront-console/internal/models"
)

// GetCart returns the session's cart. No cart at all is an empty cart.
func (c *Client) GetCart(ctx context.Context) (*models.Cart, error) {
	body, err := c.get(ctx, "/api/carts/", "/api/carts/", nil)
	if err != nil {
		return nil, err
	}

	carts, err := decodeList[models.Cart](body)
	if err != nil {
		return nil, err
	}

	if len(carts.Items) == 0 {
		return &models.Cart{Items: []models.CartItem{}}, nil
	}

	cart := carts.Items[0]
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}

	return &cart, nil
}

func (c *Client) AddCartItem(ctx context.Context, productID int64, quantity int) error {
	_, err := c.send(ctx, http.MethodPost, "/api/carts/", "/api/carts/", map[string]any{
		"product_id": productID,
		"quantity":   quantity,
	})
	return err
}

func (c *Client) UpdateCartItem(ctx context.Context, itemID int64, quantity int) error {
	_, err := c.send(ctx, http.MethodPatch, "/api/carts/{id}/", idPath("/api/carts/%d/", itemID), map[string]any{
		"quantity": quantity,
	})
	return err
}

func (c *Client) RemoveCartItem(ctx context.Context, itemID int64) error {
	_, err := c.send(ctx, http.MethodDelete, "/api/carts/{id}/", idPath("/api/carts/%d/", itemID), nil)
	return err
}

func (c *Client) ClearCart(ctx context.Context) error {
	_, err := c.send(ctx, http.MethodPost, "/api/carts/clear_cart/", "/api/carts/clear_cart/", nil)
	return err
}
