package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/aaravmahajanofficial/storefront-console/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-console/internal/backend"
	"github.com/aaravmahajanofficial/storefront-console/internal/errors"
	"github.com/aaravmahajanofficial/storefront-console/internal/models"
	"github.com/aaravmahajanofficial/storefront-console/internal/utils"
	"github.com/go-playground/validator/v10"
)

// CheckoutService runs the two step checkout (address, then payment) of one session.
// Card number and CVV are never stored.
type CheckoutService struct {
	orders   backend.OrderAPI
	cart     *CartService
	notifier *Notifier
	validate *validator.Validate

	mu         sync.RWMutex
	step       models.CheckoutStep
	address    models.AddressForm
	cardHolder string
	expiry     string
	lastErr    string
}

func NewCheckoutService(orders backend.OrderAPI, cart *CartService, notifier *Notifier, validate *validator.Validate) *CheckoutService {
	return &CheckoutService{
		orders:   orders,
		cart:     cart,
		notifier: notifier,
		validate: validate,
		step:     models.CheckoutStepAddress,
	}
}

// SubmitAddress moves to the payment step when every address field is filled in.
func (s *CheckoutService) SubmitAddress(form models.AddressForm) error {
	form = trimAddress(form)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.address = form

	if err := utils.ValidateStruct(s.validate, &form); err != nil {
		s.lastErr = err.Error()
		return err
	}

	s.step = models.CheckoutStepPayment
	s.lastErr = ""
	return nil
}

// Back returns to the address step. The address and the non-sensitive payment
// fields are kept.
func (s *CheckoutService) Back() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.step = models.CheckoutStepAddress
	s.lastErr = ""
}

// Submit places the order for the current cart.
func (s *CheckoutService) Submit(ctx context.Context, payment models.PaymentForm) (*models.CheckoutResult, error) {
	logger := middleware.LoggerFromContext(ctx)

	s.mu.Lock()
	step, address := s.step, s.address
	payment.CardNumber = NormalizeCardNumber(payment.CardNumber)
	payment.CardHolder = strings.TrimSpace(payment.CardHolder)
	payment.Expiry = strings.TrimSpace(payment.Expiry)
	s.cardHolder, s.expiry = payment.CardHolder, payment.Expiry
	s.mu.Unlock()

	if step != models.CheckoutStepPayment {
		return nil, s.reject(errors.BadRequestError("Enter a shipping address first"))
	}

	cart := s.cart.Cart()
	if cart == nil {
		if err := s.cart.Refresh(ctx); err != nil {
			return nil, s.reject(err)
		}
		cart = s.cart.Cart()
	}

	if cart.IsEmpty() {
		return nil, s.reject(errors.BadRequestError("Your cart is empty"))
	}

	if err := utils.ValidateStruct(s.validate, &payment); err != nil {
		return nil, s.reject(err)
	}

	req := &models.CreateOrderRequest{
		ShippingAddress: FormatAddress(address),
		Items:           make([]models.OrderLine, 0, len(cart.Items)),
		TotalAmount:     cart.Total(),
		Payment: models.PaymentDescriptor{
			CardLast4:  payment.CardNumber[len(payment.CardNumber)-4:],
			CardHolder: payment.CardHolder,
			Expiry:     payment.Expiry,
		},
	}
	for _, item := range cart.Items {
		req.Items = append(req.Items, models.OrderLine{ProductID: item.Product.ID, Quantity: item.Quantity})
	}

	order, err := s.orders.CreateOrder(ctx, req)
	if err != nil {
		logger.Warn("Order creation failed", slog.Any("error", err))
		appErr := errors.FromUpstream(err, "place order")
		s.notifier.Error(appErr.Message)
		return nil, s.reject(appErr)
	}

	logger.Info("Order placed", slog.Int64("orderId", order.ID), slog.Int("lines", len(req.Items)))

	s.cart.ClearAfterOrder(ctx)
	s.Reset()
	s.notifier.Success(fmt.Sprintf("Order #%d placed", order.ID))

	return &models.CheckoutResult{Order: order, Redirect: fmt.Sprintf("/orders/%d", order.ID)}, nil
}

func (s *CheckoutService) reject(err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastErr = err.Error()
	return err
}

func (s *CheckoutService) Step() models.CheckoutStep {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.step
}

func (s *CheckoutService) State() models.CheckoutState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return models.CheckoutState{
		Step:       s.step,
		Address:    s.address,
		CardHolder: s.cardHolder,
		Expiry:     s.expiry,
		Error:      s.lastErr,
	}
}

// Reset starts the workflow over with an empty form.
func (s *CheckoutService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.step = models.CheckoutStepAddress
	s.address = models.AddressForm{}
	s.cardHolder, s.expiry, s.lastErr = "", "", ""
}

// Restore reinstates a persisted draft.
func (s *CheckoutService) Restore(step models.CheckoutStep, address models.AddressForm) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if step != models.CheckoutStepPayment {
		step = models.CheckoutStepAddress
	}

	s.step = step
	s.address = address
}

// FormatAddress renders the single line shipping address sent with an order.
func FormatAddress(a models.AddressForm) string {
	return fmt.Sprintf("%s, %s, %s, %s %s, %s", a.FullName, a.Street, a.City, a.State, a.PostalCode, a.Country)
}

func trimAddress(a models.AddressForm) models.AddressForm {
	return models.AddressForm{
		FullName:   strings.TrimSpace(a.FullName),
		Street:     strings.TrimSpace(a.Street),
		City:       strings.TrimSpace(a.City),
		State:      strings.TrimSpace(a.State),
		PostalCode: strings.TrimSpace(a.PostalCode),
		Country:    strings.TrimSpace(a.Country),
	}
}
