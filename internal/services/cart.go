package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/aaravmahajanofficial/storefront-console/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-console/internal/backend"
	"github.com/aaravmahajanofficial/storefront-console/internal/errors"
	"github.com/aaravmahajanofficial/storefront-console/internal/models"
)

// CartService mirrors the server cart of one browser session. Every mutation is
// followed by a full refetch; nothing is patched locally.
type CartService struct {
	api      backend.CartAPI
	notifier *Notifier

	mu      sync.RWMutex
	cart    *models.Cart
	loading bool
	lastErr string
}

func NewCartService(api backend.CartAPI, notifier *Notifier) *CartService {
	return &CartService{api: api, notifier: notifier}
}

func (s *CartService) Refresh(ctx context.Context) error {
	s.begin()

	cart, err := s.api.GetCart(ctx)
	if err != nil {
		appErr := errors.FromUpstream(err, "load cart")
		s.fail(appErr)
		return appErr
	}

	s.mu.Lock()
	s.cart = cart
	s.loading = false
	s.lastErr = ""
	s.mu.Unlock()

	return nil
}

// AddItem adds quantity (at least 1) of a product.
func (s *CartService) AddItem(ctx context.Context, productID int64, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}

	return s.mutate(ctx, "add item to cart", "Item added to cart", func(ctx context.Context) error {
		return s.api.AddCartItem(ctx, productID, quantity)
	})
}

// UpdateQuantity sets a line's quantity. Zero or less removes the line.
func (s *CartService) UpdateQuantity(ctx context.Context, itemID int64, quantity int) error {
	if quantity < 1 {
		return s.RemoveItem(ctx, itemID)
	}

	return s.mutate(ctx, "update cart item", "", func(ctx context.Context) error {
		return s.api.UpdateCartItem(ctx, itemID, quantity)
	})
}

func (s *CartService) RemoveItem(ctx context.Context, itemID int64) error {
	return s.mutate(ctx, "remove cart item", "Item removed from cart", func(ctx context.Context) error {
		return s.api.RemoveCartItem(ctx, itemID)
	})
}

func (s *CartService) Clear(ctx context.Context) error {
	return s.mutate(ctx, "clear cart", "Cart cleared", s.api.ClearCart)
}

// ClearAfterOrder empties the cart once an order went through. Failures are logged
// and swallowed: the order already exists and the refetch shows what is left.
func (s *CartService) ClearAfterOrder(ctx context.Context) {
	logger := middleware.LoggerFromContext(ctx)

	if err := s.api.ClearCart(ctx); err != nil {
		logger.Warn("Failed to clear cart after order", slog.Any("error", err))
	}

	if err := s.Refresh(ctx); err != nil {
		logger.Warn("Failed to refresh cart after order", slog.Any("error", err))
	}
}

func (s *CartService) mutate(ctx context.Context, action, success string, call func(context.Context) error) error {
	s.begin()

	if err := call(ctx); err != nil {
		appErr := errors.FromUpstream(err, action)
		s.fail(appErr)
		s.notifier.Error(appErr.Message)
		return appErr
	}

	if err := s.Refresh(ctx); err != nil {
		s.notifier.Error(err.Error())
		return err
	}

	s.notifier.Success(success)
	return nil
}

// Cart returns a copy of the mirrored cart, nil before the first load.
func (s *CartService) Cart() *models.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.cart == nil {
		return nil
	}

	cart := *s.cart
	cart.Items = append([]models.CartItem(nil), s.cart.Items...)
	return &cart
}

// ItemCount is derived from the mirrored items on every call.
func (s *CartService) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.cart.ItemCount()
}

func (s *CartService) State() models.CartState {
	cart := s.Cart()

	s.mu.RLock()
	defer s.mu.RUnlock()

	return models.CartState{
		Cart:      cart,
		ItemCount: cart.ItemCount(),
		Total:     cart.Total(),
		Loading:   s.loading,
		Error:     s.lastErr,
	}
}

// Reset drops the mirror, e.g. on logout.
func (s *CartService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart = nil
	s.loading = false
	s.lastErr = ""
}

func (s *CartService) begin() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loading = true
	s.lastErr = ""
}

func (s *CartService) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loading = false
	s.lastErr = err.Error()
}
