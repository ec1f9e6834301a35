package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aaravmahajanofficial/storefront-console/internal/models"
)

// EnsureCSRF primes the csrf cookie when the jar does not hold one yet.
func (c *Client) EnsureCSRF(ctx context.Context) error {
	if jar := JarFromContext(ctx); jar != nil {
		if _, ok := jar.Get(c.csrfCookie); ok {
			return nil
		}
	}

	_, err := c.get(ctx, "/auth/csrf/", "/auth/csrf/", nil)
	return err
}

func (c *Client) CheckSession(ctx context.Context) (bool, error) {
	body, err := c.get(ctx, "/auth/session/", "/auth/session/", nil)
	if err != nil {
		return false, err
	}

	var status struct {
		IsAuthenticated      bool `json:"is_authenticated"`
		IsAuthenticatedCamel bool `json:"isAuthenticated"`
	}
	if err := decodeInto(body, &status); err != nil {
		return false, err
	}

	return status.IsAuthenticated || status.IsAuthenticatedCamel, nil
}

func (c *Client) CurrentUser(ctx context.Context) (*models.User, error) {
	body, err := c.get(ctx, "/auth/user/", "/auth/user/", nil)
	if err != nil {
		return nil, err
	}

	return decodeUser(body)
}

func (c *Client) Login(ctx context.Context, req *models.LoginRequest) (*models.User, error) {
	body, err := c.send(ctx, http.MethodPost, "/auth/login/", "/auth/login/", req)
	if err != nil {
		return nil, err
	}

	return decodeUser(body)
}

func (c *Client) Logout(ctx context.Context) error {
	_, err := c.send(ctx, http.MethodPost, "/auth/logout/", "/auth/logout/", nil)
	return err
}

func (c *Client) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	body, err := c.send(ctx, http.MethodPost, "/auth/register/", "/auth/register/", req)
	if err != nil {
		return nil, err
	}

	return decodeUser(body)
}

// decodeUser accepts both {"user": {...}} and the flat user object.
func decodeUser(body []byte) (*models.User, error) {
	var envelope struct {
		User *models.User `json:"user"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decoding user: %w", err)
	}

	if envelope.User != nil {
		return envelope.User, nil
	}

	var user models.User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("decoding user: %w", err)
	}

	return &user, nil
}
