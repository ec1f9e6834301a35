package service

import (
	"context"
	"fmt"

	"github.com/aaravmahajanofficial/storefront-console/internal/backend"
	"github.com/aaravmahajanofficial/storefront-console/internal/errors"
	"github.com/aaravmahajanofficial/storefront-console/internal/models"
)

// AdminService backs the staff console. Each mutation refetches the record it touched.
type AdminService interface {
	UpdatePrice(ctx context.Context, productID int64, price models.Money) (*models.Product, error)
	ApplyDiscount(ctx context.Context, productID int64, percent float64) (*models.Product, error)
	UpdateStock(ctx context.Context, productID int64, quantity int) (*models.Product, error)
	SetVisibility(ctx context.Context, productID int64, visible bool) (*models.Product, error)
	ListDeliveries(ctx context.Context, query models.OrderQuery) (*models.Page[models.Order], error)
	AdvanceOrder(ctx context.Context, orderID int64, status models.OrderStatus) (*models.Order, error)
}

type adminService struct {
	products backend.ProductAPI
	orders   backend.OrderAPI
	admin    backend.AdminAPI
}

func NewAdminService(products backend.ProductAPI, orders backend.OrderAPI, admin backend.AdminAPI) AdminService {
	return &adminService{products: products, orders: orders, admin: admin}
}

func (s *adminService) UpdatePrice(ctx context.Context, productID int64, price models.Money) (*models.Product, error) {
	if price <= 0 {
		return nil, errors.AddValidationError("price", "must be greater than 0")
	}

	return s.mutateProduct(ctx, productID, "update price", func() error {
		return s.admin.UpdatePrice(ctx, productID, price.Round())
	})
}

func (s *adminService) ApplyDiscount(ctx context.Context, productID int64, percent float64) (*models.Product, error) {
	if percent < 0 || percent > 90 {
		return nil, errors.AddValidationError("discount_percent", "must be between 0 and 90")
	}

	return s.mutateProduct(ctx, productID, "apply discount", func() error {
		return s.admin.ApplyDiscount(ctx, productID, percent)
	})
}

func (s *adminService) UpdateStock(ctx context.Context, productID int64, quantity int) (*models.Product, error) {
	if quantity < 0 {
		return nil, errors.AddValidationError("stock_quantity", "must be greater than or equal to 0")
	}

	return s.mutateProduct(ctx, productID, "update stock", func() error {
		return s.admin.UpdateStock(ctx, productID, quantity)
	})
}

func (s *adminService) SetVisibility(ctx context.Context, productID int64, visible bool) (*models.Product, error) {
	return s.mutateProduct(ctx, productID, "change visibility", func() error {
		return s.admin.SetVisibility(ctx, productID, visible)
	})
}

func (s *adminService) mutateProduct(ctx context.Context, productID int64, action string, call func() error) (*models.Product, error) {
	if err := call(); err != nil {
		return nil, errors.FromUpstream(err, action)
	}

	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return nil, errors.FromUpstream(err, "reload product")
	}

	return product, nil
}

// ListDeliveries lists every customer's orders, newest first.
func (s *adminService) ListDeliveries(ctx context.Context, query models.OrderQuery) (*models.Page[models.Order], error) {
	page, pageSize := normalizePage(query.Page, query.PageSize)

	list, err := s.admin.ListAllOrders(ctx, backend.OrderFilter{Status: query.Status, Page: page, PageSize: pageSize})
	if err != nil {
		return nil, errors.FromUpstream(err, "load deliveries")
	}

	result := statusPage(list, query.Status, page, pageSize)
	return &result, nil
}

// AdvanceOrder moves an order one step along PROCESSING, IN_TRANSIT, DELIVERED.
func (s *adminService) AdvanceOrder(ctx context.Context, orderID int64, status models.OrderStatus) (*models.Order, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, errors.FromUpstream(err, "load order")
	}

	next, ok := order.Status.Next()
	if !ok || next != status {
		return nil, errors.ConflictError(fmt.Sprintf("Order cannot move from %s to %s", order.Status, status))
	}

	if err := s.admin.UpdateOrderStatus(ctx, orderID, status); err != nil {
		return nil, errors.FromUpstream(err, "update order status")
	}

	order, err = s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, errors.FromUpstream(err, "reload order")
	}

	return order, nil
}
