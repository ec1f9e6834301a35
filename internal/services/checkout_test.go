package service_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/aaravmahajanofficial/storefront-console/internal/backend/mocks"
	appErrors "github.com/aaravmahajanofficial/storefront-console/internal/errors"
	"github.com/aaravmahajanofficial/storefront-console/internal/models"
	service "github.com/aaravmahajanofficial/storefront-console/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSubmitAddress(t *testing.T) {
	t.Run("Success - Moves to payment", func(t *testing.T) {
		// Arrange
		s := newShopper(t)

		// Act
		err := s.checkout.SubmitAddress(validAddress())

		// Assert
		require.NoError(t, err)
		assert.Equal(t, models.CheckoutStepPayment, s.checkout.Step())
	})

	blank := func(edit func(*models.AddressForm)) models.AddressForm {
		form := validAddress()
		edit(&form)
		return form
	}

	tests := []struct {
		name  string
		form  models.AddressForm
		field string
	}{
		{"Full name", blank(func(f *models.AddressForm) { f.FullName = "" }), "full_name"},
		{"Street", blank(func(f *models.AddressForm) { f.Street = "   " }), "street"},
		{"City", blank(func(f *models.AddressForm) { f.City = "" }), "city"},
		{"State", blank(func(f *models.AddressForm) { f.State = "" }), "state"},
		{"Postal code", blank(func(f *models.AddressForm) { f.PostalCode = "" }), "postal_code"},
		{"Country", blank(func(f *models.AddressForm) { f.Country = "" }), "country"},
		{"First field in form order wins", blank(func(f *models.AddressForm) { f.Country = ""; f.City = "" }), "city"},
	}

	for _, tt := range tests {
		t.Run("Failure - Empty "+tt.name, func(t *testing.T) {
			// Arrange
			s := newShopper(t)

			// Act
			err := s.checkout.SubmitAddress(tt.form)

			// Assert
			appErr, ok := appErrors.IsAppError(err)
			require.True(t, ok)
			assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)
			assert.Equal(t, tt.field, appErr.Detail)
			assert.Equal(t, models.CheckoutStepAddress, s.checkout.Step())
		})
	}
}

func TestBackKeepsNonSensitiveFields(t *testing.T) {
	// Arrange
	s := newShopper(t)
	require.NoError(t, s.checkout.SubmitAddress(validAddress()))
	payment := validPayment()
	payment.Expiry = "13/27"
	_, err := s.checkout.Submit(s.ctx, payment)
	require.Error(t, err)

	// Act
	s.checkout.Back()

	// Assert
	state := s.checkout.State()
	assert.Equal(t, models.CheckoutStepAddress, state.Step)
	assert.Equal(t, validAddress(), state.Address)
	assert.Equal(t, "Ada Lovelace", state.CardHolder)
	assert.Equal(t, "13/27", state.Expiry)
}

func TestSubmitPaymentValidation(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*models.PaymentForm)
		field string
	}{
		{"Fifteen digits", func(p *models.PaymentForm) { p.CardNumber = "4242 4242 4242 424" }, "card_number"},
		{"Seventeen digits", func(p *models.PaymentForm) { p.CardNumber = "4242-4242-4242-4242-4" }, "card_number"},
		{"Letters", func(p *models.PaymentForm) { p.CardNumber = "4242 4242 4242 42ab" }, "card_number"},
		{"Holder missing", func(p *models.PaymentForm) { p.CardHolder = " " }, "card_holder"},
		{"Month thirteen", func(p *models.PaymentForm) { p.Expiry = "13/27" }, "expiry"},
		{"Month zero", func(p *models.PaymentForm) { p.Expiry = "00/27" }, "expiry"},
		{"Wrong format", func(p *models.PaymentForm) { p.Expiry = "4/2027" }, "expiry"},
		{"Last month", func(p *models.PaymentForm) { p.Expiry = "02/26" }, "expiry"},
		{"CVV too short", func(p *models.PaymentForm) { p.CVV = "12" }, "cvv"},
		{"CVV too long", func(p *models.PaymentForm) { p.CVV = "12345" }, "cvv"},
	}

	for _, tt := range tests {
		t.Run("Failure - "+tt.name, func(t *testing.T) {
			// Arrange
			s := newShopper(t)
			lamp := s.fake.AddProduct("Desk lamp", 24.99, 10)
			require.NoError(t, s.cart.AddItem(s.ctx, lamp.ID, 1))
			require.NoError(t, s.checkout.SubmitAddress(validAddress()))
			payment := validPayment()
			tt.edit(&payment)

			// Act
			result, err := s.checkout.Submit(s.ctx, payment)

			// Assert
			assert.Nil(t, result)
			appErr, ok := appErrors.IsAppError(err)
			require.True(t, ok)
			assert.Equal(t, tt.field, appErr.Detail)
			assert.Zero(t, s.fake.Calls("POST /api/orders/"))
			assert.Equal(t, models.CheckoutStepPayment, s.checkout.Step())
		})
	}

	t.Run("Success - Current month is still valid", func(t *testing.T) {
		// Arrange
		s := newShopper(t)
		lamp := s.fake.AddProduct("Desk lamp", 24.99, 10)
		require.NoError(t, s.cart.AddItem(s.ctx, lamp.ID, 1))
		require.NoError(t, s.checkout.SubmitAddress(validAddress()))
		payment := validPayment()
		payment.Expiry = "03/26"
		payment.CVV = "1234"

		// Act
		_, err := s.checkout.Submit(s.ctx, payment)

		// Assert
		assert.NoError(t, err)
	})
}

func TestSubmitOrder(t *testing.T) {
	t.Run("Success - One order call mirroring the cart", func(t *testing.T) {
		// Arrange
		s := newShopper(t)
		lamp := s.fake.AddProduct("Desk lamp", 24.99, 10)
		mug := s.fake.AddProduct("Mug", 8.50, 10)
		require.NoError(t, s.cart.AddItem(s.ctx, lamp.ID, 2))
		require.NoError(t, s.cart.AddItem(s.ctx, mug.ID, 3))
		require.NoError(t, s.checkout.SubmitAddress(validAddress()))

		// Act
		result, err := s.checkout.Submit(s.ctx, validPayment())

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "/orders/"+itoa(result.Order.ID), result.Redirect)

		created := s.fake.CreatedOrders()
		require.Len(t, created, 1)
		assert.ElementsMatch(t, []models.OrderLine{
			{ProductID: lamp.ID, Quantity: 2},
			{ProductID: mug.ID, Quantity: 3},
		}, created[0].Items)
		assert.Equal(t, models.Money(75.48), created[0].TotalAmount)
		assert.Equal(t, "4242", created[0].Payment.CardLast4)
		assert.Equal(t, "Ada Lovelace, 12 St James's Square, London, Greater London SW1Y 4JH, UK", created[0].ShippingAddress)

		assert.True(t, s.cart.Cart().IsEmpty(), "cart is cleared and refetched")
		assert.Equal(t, models.CheckoutStepAddress, s.checkout.Step())
		assert.Empty(t, s.checkout.State().Address.FullName)
	})

	t.Run("Success - Failed cart clear does not fail the order", func(t *testing.T) {
		// Arrange
		s := newShopper(t)
		lamp := s.fake.AddProduct("Desk lamp", 24.99, 10)
		require.NoError(t, s.cart.AddItem(s.ctx, lamp.ID, 1))
		require.NoError(t, s.checkout.SubmitAddress(validAddress()))
		s.fake.FailClearCart(true)

		// Act
		result, err := s.checkout.Submit(s.ctx, validPayment())

		// Assert
		require.NoError(t, err)
		assert.NotNil(t, result.Order)
		assert.Equal(t, 1, s.cart.ItemCount(), "the stale cart stays visible")
	})

	t.Run("Failure - Empty cart makes no order call", func(t *testing.T) {
		// Arrange
		s := newShopper(t)
		require.NoError(t, s.checkout.SubmitAddress(validAddress()))

		// Act
		result, err := s.checkout.Submit(s.ctx, validPayment())
		_, again := s.checkout.Submit(s.ctx, validPayment())

		// Assert
		assert.Nil(t, result)
		assert.Error(t, err)
		assert.Error(t, again)
		assert.Zero(t, s.fake.Calls("POST /api/orders/"))
	})

	t.Run("Failure - Submit from the address step", func(t *testing.T) {
		// Arrange
		s := newShopper(t)

		// Act
		_, err := s.checkout.Submit(s.ctx, validPayment())

		// Assert
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, appErr.StatusCode)
		assert.Zero(t, s.fake.Calls("POST /api/orders/"))
	})

	t.Run("Failure - Backend rejects the order", func(t *testing.T) {
		// Arrange
		s := newShopper(t)
		lamp := s.fake.AddProduct("Desk lamp", 24.99, 10)
		require.NoError(t, s.cart.AddItem(s.ctx, lamp.ID, 1))
		require.NoError(t, s.checkout.SubmitAddress(validAddress()))
		s.fake.FailOrders(true)

		// Act
		result, err := s.checkout.Submit(s.ctx, validPayment())

		// Assert
		assert.Nil(t, result)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, "Payment declined", appErr.Message)
		assert.Equal(t, models.CheckoutStepPayment, s.checkout.Step())
		assert.Equal(t, 1, s.cart.ItemCount())
		assert.Equal(t, "Payment declined", s.checkout.State().Error)
	})
}

func TestSubmitNeverSendsFullCardNumber(t *testing.T) {
	// Arrange
	orders := new(mocks.OrderAPI)
	carts := new(mocks.CartAPI)
	cart := service.NewCartService(carts, nil)
	checkout := service.NewCheckoutService(orders, cart, nil, service.NewValidator(testNow))

	carts.On("GetCart", mock.Anything).Return(&models.Cart{ID: 1, Items: []models.CartItem{
		{ID: 5, Product: models.Product{ID: 77, Price: 10}, Quantity: 1},
	}}, nil)
	carts.On("ClearCart", mock.Anything).Return(errors.New("boom")).Once()

	orders.On("CreateOrder", mock.Anything, mock.MatchedBy(func(req *models.CreateOrderRequest) bool {
		return req.Payment.CardLast4 == "1881"
	})).Return(&models.Order{ID: 9, Status: models.OrderStatusProcessing}, nil).Once()

	require.NoError(t, checkout.SubmitAddress(validAddress()))

	// Act
	result, err := checkout.Submit(t.Context(), models.PaymentForm{
		CardNumber: "4012-8888-8888-1881",
		CardHolder: "Ada Lovelace",
		Expiry:     "12/30",
		CVV:        "999",
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "/orders/9", result.Redirect)
	orders.AssertExpectations(t)
	carts.AssertExpectations(t)
}
