package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront-console/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-console/internal/errors"
	"github.com/aaravmahajanofficial/storefront-console/internal/models"
	"github.com/aaravmahajanofficial/storefront-console/internal/utils"
	"github.com/aaravmahajanofficial/storefront-console/internal/utils/response"
)

// CheckoutHandler drives the session's two step checkout. Field validation happens
// in the workflow itself so the first failing field is reported in form order.
type CheckoutHandler struct{}

func NewCheckoutHandler() *CheckoutHandler {
	return &CheckoutHandler{}
}

// GetState godoc
//	@Summary		Checkout state
//	@Tags			Checkout
//	@Produce		json
//	@Success		200	{object}	models.CheckoutState	"Current step and address draft"
//	@Router			/checkout [get]
func (h *CheckoutHandler) GetState() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		s, ok := currentSession(w, r)
		if !ok {
			return
		}

		response.Success(w, http.StatusOK, s.Checkout.State())
	}
}

// SubmitAddress godoc
//	@Summary		Submit the shipping address
//	@Description	Moves checkout to the payment step once every field is filled in.
//	@Tags			Checkout
//	@Accept			json
//	@Produce		json
//	@Param			address	body		models.AddressForm		true	"Shipping address"
//	@Success		200		{object}	models.CheckoutState	"Now on the payment step"
//	@Failure		400		{object}	response.ErrorResponse	"First empty field"
//	@Router			/checkout/address [post]
func (h *CheckoutHandler) SubmitAddress() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		s, ok := currentSession(w, r)
		if !ok {
			return
		}

		var form models.AddressForm
		if err := utils.DecodeJSONBody(r, &form); err != nil {
			response.Error(w, errors.BadRequestError("Invalid request body").WithDetail(err.Error()))
			return
		}

		if err := s.Checkout.SubmitAddress(form); err != nil {
			logger.Info("Shipping address rejected", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, s.Checkout.State())
	}
}

// Back godoc
//	@Summary		Back to the address step
//	@Tags			Checkout
//	@Produce		json
//	@Success		200	{object}	models.CheckoutState	"Address step with the draft kept"
//	@Router			/checkout/back [post]
func (h *CheckoutHandler) Back() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		s, ok := currentSession(w, r)
		if !ok {
			return
		}

		s.Checkout.Back()
		response.Success(w, http.StatusOK, s.Checkout.State())
	}
}

// Submit godoc
//	@Summary		Place the order
//	@Description	Validates the card and places one order for the current cart. Only the last four digits of the card reach the backend.
//	@Tags			Checkout
//	@Accept			json
//	@Produce		json
//	@Param			payment	body		models.PaymentForm		true	"Card details"
//	@Success		201		{object}	models.CheckoutResult	"Order placed"
//	@Failure		400		{object}	response.ErrorResponse	"Invalid card, empty cart or wrong step"
//	@Failure		502		{object}	response.ErrorResponse	"Backend unreachable"
//	@Router			/checkout/submit [post]
func (h *CheckoutHandler) Submit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		s, ok := currentSession(w, r)
		if !ok {
			return
		}

		var payment models.PaymentForm
		if err := utils.DecodeJSONBody(r, &payment); err != nil {
			response.Error(w, errors.BadRequestError("Invalid request body"))
			return
		}

		result, err := s.Checkout.Submit(r.Context(), payment)
		if err != nil {
			logger.Warn("Checkout failed", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Checkout completed", slog.Int64("orderId", result.Order.ID))
		response.Success(w, http.StatusCreated, result)
	}
}
