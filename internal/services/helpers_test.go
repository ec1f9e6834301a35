package service_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/storefront-console/internal/backend"
	"github.com/aaravmahajanofficial/storefront-console/internal/models"
	service "github.com/aaravmahajanofficial/storefront-console/internal/services"
	"github.com/aaravmahajanofficial/storefront-console/internal/testutils"
	"github.com/stretchr/testify/require"
)

// fixed clock for expiry checks: March 2026
var testNow = func() time.Time { return time.Date(2026, time.March, 14, 10, 0, 0, 0, time.UTC) }

type shopper struct {
	fake     *testutils.FakeBackend
	client   *backend.Client
	ctx      context.Context
	auth     *service.SessionService
	cart     *service.CartService
	checkout *service.CheckoutService
	notices  *service.Notifier
}

// newShopper wires the per-session mirrors against the fake backend and logs in as ada.
func newShopper(t *testing.T) *shopper {
	t.Helper()

	fake := testutils.NewFakeBackend(t)
	fake.AddUser("ada", "correct-horse", false, models.RoleCustomer)

	client, ctx := fake.Client(t)
	notices := service.NewNotifier(10)
	cart := service.NewCartService(client, notices)

	s := &shopper{
		fake:     fake,
		client:   client,
		ctx:      ctx,
		auth:     service.NewSessionService(client, nil),
		cart:     cart,
		checkout: service.NewCheckoutService(client, cart, notices, service.NewValidator(testNow)),
		notices:  notices,
	}

	resp := s.auth.Login(ctx, &models.LoginRequest{Username: "ada", Password: "correct-horse"})
	require.True(t, resp.Success, resp.Message)

	return s
}

func validAddress() models.AddressForm {
	return models.AddressForm{
		FullName:   "Ada Lovelace",
		Street:     "12 St James's Square",
		City:       "London",
		State:      "Greater London",
		PostalCode: "SW1Y 4JH",
		Country:    "UK",
	}
}

func validPayment() models.PaymentForm {
	return models.PaymentForm{
		CardNumber: "4242 4242 4242 4242",
		CardHolder: "Ada Lovelace",
		Expiry:     "04/27",
		CVV:        "123",
	}
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
