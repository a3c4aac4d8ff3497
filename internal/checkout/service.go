// Package checkout orchestrates order placement: it resolves the buyer,
// snapshots the cart into the order ledger, and clears the cart.
package checkout

import (
	"context"
	"fmt"

	"github.com/sustainsports/storefront-backend/internal/cart"
	"github.com/sustainsports/storefront-backend/internal/identity"
	"github.com/sustainsports/storefront-backend/internal/orders"
	pkgerrors "github.com/sustainsports/storefront-backend/pkg/errors"
	"github.com/sustainsports/storefront-backend/pkg/types"
)

// Input is the checkout form: who is buying, where it ships, how it is paid.
type Input struct {
	UserID          string
	ShippingAddress types.Address
	BillingAddress  types.Address
	CardNumber      string
	ShippingMethod  string
}

type Service interface {
	PlaceOrder(ctx context.Context, input Input) (orders.Order, error)
}

type service struct {
	identity identity.Service
	cart     cart.Service
	orders   orders.Service
}

func NewService(identitySvc identity.Service, cartSvc cart.Service, ordersSvc orders.Service) (Service, error) {
	if identitySvc == nil || cartSvc == nil || ordersSvc == nil {
		return nil, fmt.Errorf("checkout: identity, cart, and orders services are required")
	}
	return &service{
		identity: identitySvc,
		cart:     cartSvc,
		orders:   ordersSvc,
	}, nil
}

func (s *service) PlaceOrder(ctx context.Context, input Input) (orders.Order, error) {
	user, err := s.identity.GetByID(ctx, input.UserID)
	if err != nil {
		if pkgerrors.HasCode(err, pkgerrors.CodeUserNotFound) {
			return orders.Order{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "an account is required to check out")
		}
		return orders.Order{}, err
	}

	lines, err := s.cart.Items(ctx)
	if err != nil {
		return orders.Order{}, err
	}
	if len(lines) == 0 {
		return orders.Order{}, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	snapshots := make([]orders.LineSnapshot, 0, len(lines))
	for _, l := range lines {
		snapshots = append(snapshots, orders.LineSnapshot{
			ProductID: l.Product.ID,
			Name:      l.Product.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.Product.Price,
		})
	}

	order, err := s.orders.Place(ctx, orders.PlaceInput{
		UserID:          user.ID,
		Lines:           snapshots,
		ShippingAddress: input.ShippingAddress,
		BillingAddress:  input.BillingAddress,
		CardNumber:      input.CardNumber,
		ShippingMethod:  input.ShippingMethod,
	})
	if err != nil {
		return orders.Order{}, err
	}

	// The order is already in the ledger; a cart-clear failure must not
	// unwind it. The stale cart is the lesser problem.
	if err := s.cart.Clear(ctx); err != nil {
		return order, err
	}
	return order, nil
}
