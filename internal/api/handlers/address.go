package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront-console/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-console/internal/models"
	service "github.com/aaravmahajanofficial/storefront-console/internal/services"
	"github.com/aaravmahajanofficial/storefront-console/internal/utils"
	"github.com/aaravmahajanofficial/storefront-console/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// AddressHandler manages the address book. Every mutation answers with the refetched list.
type AddressHandler struct {
	addressService service.AddressService
	validator      *validator.Validate
}

func NewAddressHandler(addressService service.AddressService, validate *validator.Validate) *AddressHandler {
	return &AddressHandler{addressService: addressService, validator: validate}
}

// ListAddresses godoc
//	@Summary		List saved addresses
//	@Tags			Addresses
//	@Produce		json
//	@Success		200	{array}	models.Address	"Addresses"
//	@Router			/addresses [get]
func (h *AddressHandler) ListAddresses() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		addresses, err := h.addressService.ListAddresses(r.Context())
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to list addresses", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, addresses)
	}
}

// CreateAddress godoc
//	@Summary		Save an address
//	@Tags			Addresses
//	@Accept			json
//	@Produce		json
//	@Param			address	body		models.AddressRequest	true	"Address"
//	@Success		201		{array}		models.Address			"Addresses"
//	@Failure		400		{object}	response.ErrorResponse	"Invalid input"
//	@Router			/addresses [post]
func (h *AddressHandler) CreateAddress() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.AddressRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid address input")
			return
		}

		addresses, err := h.addressService.CreateAddress(r.Context(), &req)
		if err != nil {
			logger.Warn("Failed to save address", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusCreated, addresses)
	}
}

// UpdateAddress godoc
//	@Summary		Edit an address
//	@Tags			Addresses
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"Address ID"
//	@Param			address	body		models.AddressRequest	true	"Address"
//	@Success		200		{array}		models.Address			"Addresses"
//	@Router			/addresses/{id} [patch]
func (h *AddressHandler) UpdateAddress() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.AddressRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid address input")
			return
		}

		addresses, err := h.addressService.UpdateAddress(r.Context(), id, &req)
		if err != nil {
			logger.Warn("Failed to update address", slog.Int64("addressId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, addresses)
	}
}

// DeleteAddress godoc
//	@Summary		Delete an address
//	@Tags			Addresses
//	@Produce		json
//	@Param			id	path	int				true	"Address ID"
//	@Success		200	{array}	models.Address	"Addresses"
//	@Router			/addresses/{id} [delete]
func (h *AddressHandler) DeleteAddress() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		addresses, err := h.addressService.DeleteAddress(r.Context(), id)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Warn("Failed to delete address", slog.Int64("addressId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, addresses)
	}
}

// SetMainAddress godoc
//	@Summary		Make an address the default
//	@Tags			Addresses
//	@Produce		json
//	@Param			id	path	int				true	"Address ID"
//	@Success		200	{array}	models.Address	"Addresses as the backend now has them"
//	@Router			/addresses/{id}/main [post]
func (h *AddressHandler) SetMainAddress() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		addresses, err := h.addressService.SetMainAddress(r.Context(), id)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Warn("Failed to set main address", slog.Int64("addressId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, addresses)
	}
}
