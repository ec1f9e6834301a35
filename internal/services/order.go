package service

import (
	"context"
	"sort"

	"github.com/aaravmahajanofficial/storefront-console/internal/backend"
	"github.com/aaravmahajanofficial/storefront-console/internal/errors"
	"github.com/aaravmahajanofficial/storefront-console/internal/models"
)

type OrderService interface {
	ListOrders(ctx context.Context, query models.OrderQuery) (*models.Page[models.Order], error)
	GetOrder(ctx context.Context, id int64) (*models.Order, error)
	CancelOrder(ctx context.Context, id int64) (*models.Order, error)
}

type orderService struct {
	api backend.OrderAPI
}

func NewOrderService(api backend.OrderAPI) OrderService {
	return &orderService{api: api}
}

// ListOrders returns the user's orders newest first, optionally of one status.
func (s *orderService) ListOrders(ctx context.Context, query models.OrderQuery) (*models.Page[models.Order], error) {
	page, pageSize := normalizePage(query.Page, query.PageSize)

	list, err := s.api.ListOrders(ctx, backend.OrderFilter{Status: query.Status, Page: page, PageSize: pageSize})
	if err != nil {
		return nil, errors.FromUpstream(err, "load orders")
	}

	result := statusPage(list, query.Status, page, pageSize)
	return &result, nil
}

func (s *orderService) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	order, err := s.api.GetOrder(ctx, id)
	if err != nil {
		return nil, errors.FromUpstream(err, "load order")
	}

	return order, nil
}

// CancelOrder cancels an order that has not shipped yet and returns it as the backend now sees it.
func (s *orderService) CancelOrder(ctx context.Context, id int64) (*models.Order, error) {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if order.Status != models.OrderStatusProcessing {
		return nil, errors.ConflictError("Only orders that are still processing can be cancelled")
	}

	if err := s.api.CancelOrder(ctx, id); err != nil {
		return nil, errors.FromUpstream(err, "cancel order")
	}

	return s.GetOrder(ctx, id)
}

// filterByStatus applies the status filter locally as well, for backends that ignore it.
// statusPage narrows a backend page to one status, newest first. Rows the backend
// should have filtered out come off the total too.
func statusPage(list *backend.List[models.Order], status models.OrderStatus, page, pageSize int) models.Page[models.Order] {
	orders := filterByStatus(list.Items, status)
	sortNewestFirst(orders)

	count := list.Count - (len(list.Items) - len(orders))
	return models.NewPage(orders, count, page, pageSize)
}

func filterByStatus(orders []models.Order, status models.OrderStatus) []models.Order {
	if status == "" {
		return orders
	}

	out := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if o.Status == status {
			out = append(out, o)
		}
	}

	return out
}

func sortNewestFirst(orders []models.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}
