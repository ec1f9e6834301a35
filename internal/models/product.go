package models

import (
	"bytes"
	"encoding/json"
	"time"
)

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// UnmarshalJSON accepts a nested category object, a bare id or a bare name.
func (c *Category) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	switch {
	case bytes.Equal(data, []byte("null")):
		return nil
	case len(data) > 0 && data[0] == '"':
		return json.Unmarshal(data, &c.Name)
	case len(data) > 0 && data[0] != '{':
		return json.Unmarshal(data, &c.ID)
	}

	type category Category
	return json.Unmarshal(data, (*category)(c))
}

type ProductImage struct {
	ID    int64  `json:"id"`
	Image string `json:"image"`
}

type Comment struct {
	ID        int64     `json:"id"`
	User      string    `json:"user"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type Product struct {
	ID              int64          `json:"id"`
	Name            string         `json:"name"`
	Description     string         `json:"description"`
	Price           Money          `json:"price"`
	OriginalPrice   Money          `json:"original_price"`
	DiscountPercent float64        `json:"discount_percent"`
	StockQuantity   int            `json:"stock_quantity"`
	AverageRating   float64        `json:"average_rating"`
	RatingCount     int            `json:"rating_count"`
	Category        *Category      `json:"category,omitempty"`
	Images          []ProductImage `json:"images"`
	Comments        []Comment      `json:"comments"`
	IsVisible       bool           `json:"is_visible"`
	CreatedAt       time.Time      `json:"created_at"`
}

// ProductQuery drives the catalog browse screen.
type ProductQuery struct {
	Search   string `json:"search" validate:"omitempty,max=100"`
	Category string `json:"category" validate:"omitempty,max=100"`
	Sort     string `json:"sort" validate:"omitempty,oneof=price -price name -name newest popularity discount"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
}

type RateProductRequest struct {
	Rating int `json:"rating" validate:"required,min=1,max=5"`
}

type CommentProductRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}

type UpdatePriceRequest struct {
	Price Money `json:"price" validate:"gt=0"`
}

type ApplyDiscountRequest struct {
	DiscountPercent float64 `json:"discount_percent" validate:"gte=0,lte=90"`
}

type UpdateStockRequest struct {
	StockQuantity *int `json:"stock_quantity" validate:"required,gte=0"`
}

type SetVisibilityRequest struct {
	IsVisible *bool `json:"is_visible" validate:"required"`
}
