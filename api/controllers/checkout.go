package controllers

import (
	"net/http"

	"github.com/sustainsports/storefront-backend/api/middleware"
	"github.com/sustainsports/storefront-backend/api/responses"
	"github.com/sustainsports/storefront-backend/api/validators"
	"github.com/sustainsports/storefront-backend/internal/checkout"
	pkgerrors "github.com/sustainsports/storefront-backend/pkg/errors"
	"github.com/sustainsports/storefront-backend/pkg/logger"
	"github.com/sustainsports/storefront-backend/pkg/types"
)

type addressPayload struct {
	Name    string `json:"name" validate:"required,max=120"`
	Address string `json:"address" validate:"required,max=300"`
	Country string `json:"country" validate:"required,max=80"`
	Phone   string `json:"phone" validate:"omitempty,max=40"`
}

type checkoutRequest struct {
	ShippingAddress addressPayload `json:"shippingAddress" validate:"required"`
	BillingAddress  addressPayload `json:"billingAddress" validate:"required"`
	CardNumber      string         `json:"cardNumber" validate:"required,min=12,max=23"`
	ShippingMethod  string         `json:"shippingMethod" validate:"omitempty,max=120"`
}

func (a addressPayload) toAddress() types.Address {
	return types.Address{
		Name:    a.Name,
		Address: a.Address,
		Country: a.Country,
		Phone:   a.Phone,
	}
}

func Checkout(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		userID := middleware.UserIDFromContext(r.Context())
		if userID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing user context"))
			return
		}

		var body checkoutRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.PlaceOrder(r.Context(), checkout.Input{
			UserID:          userID,
			ShippingAddress: body.ShippingAddress.toAddress(),
			BillingAddress:  body.BillingAddress.toAddress(),
			CardNumber:      body.CardNumber,
			ShippingMethod:  validators.SanitizeString(body.ShippingMethod, 120),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}
