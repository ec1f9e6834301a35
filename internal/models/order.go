package models

import "time"

// OrderItem is a line frozen at purchase time; later product edits never touch it.
type OrderItem struct {
	ID          int64  `json:"id"`
	ProductID   int64  `json:"product"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	Price       Money  `json:"price"`
}

type Order struct {
	ID              int64       `json:"id"`
	User            string      `json:"user"`
	Status          OrderStatus `json:"status"`
	TotalAmount     Money       `json:"total_amount"`
	CostPrice       Money       `json:"cost_price"`
	ShippingAddress string      `json:"shipping_address"`
	Items           []OrderItem `json:"items"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// HasItem reports whether the order owns the given order line.
func (o *Order) HasItem(itemID int64) bool {
	for _, item := range o.Items {
		if item.ID == itemID {
			return true
		}
	}

	return false
}

type OrderLine struct {
	ProductID int64 `json:"product"`
	Quantity  int   `json:"quantity"`
}

// CreateOrderRequest is the single order-creation call checkout makes.
type CreateOrderRequest struct {
	ShippingAddress string            `json:"shipping_address"`
	Items           []OrderLine       `json:"items"`
	TotalAmount     Money             `json:"total_amount"`
	Payment         PaymentDescriptor `json:"payment"`
}

type OrderQuery struct {
	Status   OrderStatus `json:"status"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required,oneof=PROCESSING IN_TRANSIT DELIVERED CANCELLED"`
}
