package backend

import (
	"context"
	"net/http"

	"github.com/aaravmahajanofficial/storefront-console/internal/models"
)

type AuthAPI interface {
	EnsureCSRF(ctx context.Context) error
	CheckSession(ctx context.Context) (bool, error)
	CurrentUser(ctx context.Context) (*models.User, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.User, error)
	Logout(ctx context.Context) error
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
}

type CartAPI interface {
	GetCart(ctx context.Context) (*models.Cart, error)
	AddCartItem(ctx context.Context, productID int64, quantity int) error
	UpdateCartItem(ctx context.Context, itemID int64, quantity int) error
	RemoveCartItem(ctx context.Context, itemID int64) error
	ClearCart(ctx context.Context) error
}

type ProductAPI interface {
	ListProducts(ctx context.Context, filter ProductFilter) (*List[models.Product], error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	RateProduct(ctx context.Context, id int64, rating int) error
	CommentProduct(ctx context.Context, id int64, text string) error
}

type OrderAPI interface {
	ListOrders(ctx context.Context, filter OrderFilter) (*List[models.Order], error)
	GetOrder(ctx context.Context, id int64) (*models.Order, error)
	CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error)
	CancelOrder(ctx context.Context, id int64) error
}

type RefundAPI interface {
	MyRefunds(ctx context.Context) ([]models.RefundRequest, error)
	PendingRefunds(ctx context.Context) ([]models.RefundRequest, error)
	CreateRefund(ctx context.Context, orderItemID int64, reason string) (*models.RefundRequest, error)
	DeleteRefund(ctx context.Context, id int64) error
	ApproveRefund(ctx context.Context, id int64) error
	RejectRefund(ctx context.Context, id int64, reason string) error
}

type AddressAPI interface {
	ListAddresses(ctx context.Context) ([]models.Address, error)
	CreateAddress(ctx context.Context, req *models.AddressRequest) (*models.Address, error)
	UpdateAddress(ctx context.Context, id int64, req *models.AddressRequest) (*models.Address, error)
	DeleteAddress(ctx context.Context, id int64) error
	SetMainAddress(ctx context.Context, id int64) error
}

type AdminAPI interface {
	UpdatePrice(ctx context.Context, productID int64, price models.Money) error
	ApplyDiscount(ctx context.Context, productID int64, percent float64) error
	UpdateStock(ctx context.Context, productID int64, quantity int) error
	SetVisibility(ctx context.Context, productID int64, visible bool) error
	ListAllOrders(ctx context.Context, filter OrderFilter) (*List[models.Order], error)
	UpdateOrderStatus(ctx context.Context, orderID int64, status models.OrderStatus) error
}

type MediaAPI interface {
	// FetchMedia returns the raw response; the caller closes the body.
	FetchMedia(ctx context.Context, path string) (*http.Response, error)
}

// API is the full backend surface.
type API interface {
	AuthAPI
	CartAPI
	ProductAPI
	OrderAPI
	RefundAPI
	AddressAPI
	AdminAPI
	MediaAPI
}
