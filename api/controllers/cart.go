package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/sustainsports/storefront-backend/api/responses"
	"github.com/sustainsports/storefront-backend/api/validators"
	"github.com/sustainsports/storefront-backend/internal/cart"
	"github.com/sustainsports/storefront-backend/internal/products"
	pkgerrors "github.com/sustainsports/storefront-backend/pkg/errors"
	"github.com/sustainsports/storefront-backend/pkg/logger"
)

type addCartItemRequest struct {
	ProductID int `json:"productId" validate:"required,gte=1"`
	Quantity  int `json:"quantity" validate:"omitempty,gte=1,lte=99"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"lte=99"`
}

type cartView struct {
	Items     []cart.Line     `json:"items"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"itemCount"`
}

func viewOf(lines []cart.Line) cartView {
	count := 0
	for _, l := range lines {
		count += l.Quantity
	}
	if lines == nil {
		lines = []cart.Line{}
	}
	return cartView{
		Items:     lines,
		Total:     cart.SumLines(lines),
		ItemCount: count,
	}
}

func CartFetch(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		lines, err := svc.Items(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, viewOf(lines))
	}
}

// CartAddItem resolves the product from the catalog and adds it once per
// requested quantity, so repeated adds and quantity N land in the same place.
func CartAddItem(svc cart.Service, catalog products.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		var body addCartItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := catalog.GetByID(body.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quantity := body.Quantity
		if quantity == 0 {
			quantity = 1
		}

		var lines []cart.Line
		for i := 0; i < quantity; i++ {
			lines, err = svc.Add(r.Context(), product)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}
		responses.WriteSuccess(w, viewOf(lines))
	}
}

// CartUpdateItem maps a non-positive quantity onto removal; the aggregator
// itself keeps zero-quantity lines.
func CartUpdateItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		productID, err := pathInt(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateCartItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var lines []cart.Line
		if body.Quantity <= 0 {
			lines, err = svc.Remove(r.Context(), productID)
		} else {
			lines, err = svc.UpdateQuantity(r.Context(), productID, body.Quantity)
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, viewOf(lines))
	}
}

func CartRemoveItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		productID, err := pathInt(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lines, err := svc.Remove(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, viewOf(lines))
	}
}

func CartClear(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		if err := svc.Clear(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, viewOf(nil))
	}
}
