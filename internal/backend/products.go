package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/aaravmahajanofficial/storefront-console/internal/models"
)

type ProductFilter struct {
	Search        string
	Category      string
	Ordering      string
	Page          int
	PageSize      int
	IncludeHidden bool
}

func (c *Client) ListProducts(ctx context.Context, filter ProductFilter) (*List[models.Product], error) {
	q := url.Values{}
	if filter.Search != "" {
		q.Set("search", filter.Search)
	}
	if filter.Category != "" {
		q.Set("category", filter.Category)
	}
	if filter.Ordering != "" {
		q.Set("ordering", filter.Ordering)
	}
	if filter.IncludeHidden {
		q.Set("include_hidden", "true")
	}

	body, err := c.get(ctx, "/api/products/", "/api/products/", pageQuery(q, filter.Page, filter.PageSize))
	if err != nil {
		return nil, err
	}

	return decodeList[models.Product](body)
}

func (c *Client) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	body, err := c.get(ctx, "/api/products/{id}/", idPath("/api/products/%d/", id), nil)
	if err != nil {
		return nil, err
	}

	var product models.Product
	if err := decodeInto(body, &product); err != nil {
		return nil, err
	}

	return &product, nil
}

func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	body, err := c.get(ctx, "/api/categories/", "/api/categories/", nil)
	if err != nil {
		return nil, err
	}

	list, err := decodeList[models.Category](body)
	if err != nil {
		return nil, err
	}

	return list.Items, nil
}

func (c *Client) RateProduct(ctx context.Context, id int64, rating int) error {
	_, err := c.send(ctx, http.MethodPost, "/api/products/{id}/rate_product/", idPath("/api/products/%d/rate_product/", id), map[string]any{
		"rating": rating,
	})
	return err
}

func (c *Client) CommentProduct(ctx context.Context, id int64, text string) error {
	_, err := c.send(ctx, http.MethodPost, "/api/products/{id}/comment_product/", idPath("/api/products/%d/comment_product/", id), map[string]any{
		"text": text,
	})
	return err
}
