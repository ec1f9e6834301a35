package backend

import (
	"context"
	"net/http"

	"github.com/aaravmahajanofficial/storefront-console/internal/models"
)

func (c *Client) ListAddresses(ctx context.Context) ([]models.Address, error) {
	body, err := c.get(ctx, "/api/addresses/", "/api/addresses/", nil)
	if err != nil {
		return nil, err
	}

	list, err := decodeList[models.Address](body)
	if err != nil {
		return nil, err
	}

	return list.Items, nil
}

func (c *Client) CreateAddress(ctx context.Context, req *models.AddressRequest) (*models.Address, error) {
	body, err := c.send(ctx, http.MethodPost, "/api/addresses/", "/api/addresses/", req)
	if err != nil {
		return nil, err
	}

	var address models.Address
	if err := decodeInto(body, &address); err != nil {
		return nil, err
	}

	return &address, nil
}

func (c *Client) UpdateAddress(ctx context.Context, id int64, req *models.AddressRequest) (*models.Address, error) {
	body, err := c.send(ctx, http.MethodPatch, "/api/addresses/{id}/", idPath("/api/addresses/%d/", id), req)
	if err != nil {
		return nil, err
	}

	var address models.Address
	if err := decodeInto(body, &address); err != nil {
		return nil, err
	}

	return &address, nil
}

func (c *Client) DeleteAddress(ctx context.Context, id int64) error {
	_, err := c.send(ctx, http.MethodDelete, "/api/addresses/{id}/", idPath("/api/addresses/%d/", id), nil)
	return err
}

func (c *Client) SetMainAddress(ctx context.Context, id int64) error {
	_, err := c.send(ctx, http.MethodPost, "/api/addresses/{id}/set_main/", idPath("/api/addresses/%d/set_main/", id), nil)
	return err
}
