package models

type CartItem struct {
	ID       int64   `json:"id"`
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Subtotal is the line price at the product's current price.
func (i CartItem) Subtotal() Money {
	return Money(float64(i.Product.Price) * float64(i.Quantity)).Round()
}

type Cart struct {
	ID    int64      `json:"id"`
	Items []CartItem `json:"items"`
}

// ItemCount is the sum of item quantities. It is derived on every call.
func (c *Cart) ItemCount() int {
	if c == nil {
		return 0
	}

	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}

	return count
}

func (c *Cart) Total() Money {
	if c == nil {
		return 0
	}

	var total Money
	for _, item := range c.Items {
		total += item.Subtotal()
	}

	return total.Round()
}

func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}

type AddItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"omitempty,min=1,max=99"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"gte=0,lte=99"`
}

// CartState is the cart mirror as exposed to the UI.
type CartState struct {
	Cart      *Cart  `json:"cart"`
	ItemCount int    `json:"item_count"`
	Total     Money  `json:"total"`
	Loading   bool   `json:"loading"`
	Error     string `json:"error,omitempty"`
}
