package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/sustainsports/storefront-backend/internal/cart"
	"github.com/sustainsports/storefront-backend/internal/identity"
	"github.com/sustainsports/storefront-backend/internal/orders"
	"github.com/sustainsports/storefront-backend/internal/products"
	"github.com/sustainsports/storefront-backend/pkg/config"
	pkgerrors "github.com/sustainsports/storefront-backend/pkg/errors"
	"github.com/sustainsports/storefront-backend/pkg/kv"
	"github.com/sustainsports/storefront-backend/pkg/types"
)

type fixture struct {
	checkout Service
	identity identity.Service
	cart     cart.Service
	orders   orders.Service
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	store := kv.NewMemory()
	keys := kv.NewKeys("")

	identitySvc, err := identity.NewService(store, keys, config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     8,
		ArgonKeyLen:      16,
		ResetTokenTTL:    time.Hour,
	})
	if err != nil {
		t.Fatalf("identity.NewService: %v", err)
	}
	cartSvc, err := cart.NewService(store, keys)
	if err != nil {
		t.Fatalf("cart.NewService: %v", err)
	}
	ordersSvc, err := orders.NewService(store, keys, config.CheckoutConfig{
		TaxRate:        0.08,
		ShippingMethod: "Standard Eco-Shipping (3-5 days)",
	})
	if err != nil {
		t.Fatalf("orders.NewService: %v", err)
	}
	checkoutSvc, err := NewService(identitySvc, cartSvc, ordersSvc)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return fixture{
		checkout: checkoutSvc,
		identity: identitySvc,
		cart:     cartSvc,
		orders:   ordersSvc,
	}
}

func checkoutInput(userID string) Input {
	return Input{
		UserID:          userID,
		ShippingAddress: types.Address{Name: "Demo User", Address: "1 Green Way", Country: "NL"},
		BillingAddress:  types.Address{Name: "Demo User", Address: "1 Green Way", Country: "NL"},
		CardNumber:      "4111111111119876",
	}
}

func TestPlaceOrderSnapshotsCartAndClearsIt(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)
	ctx := context.Background()

	catalog := products.NewCatalog()
	mat, err := catalog.GetByID(1)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	if _, err := fx.cart.Add(ctx, mat); err != nil {
		t.Fatalf("add to cart: %v", err)
	}
	if _, err := fx.cart.Add(ctx, mat); err != nil {
		t.Fatalf("add to cart: %v", err)
	}

	order, err := fx.checkout.PlaceOrder(ctx, checkoutInput("demo-user"))
	if err != nil {
		t.Fatalf("place order: %v", err)
	}

	if len(order.Items) != 1 || order.Items[0].Quantity != 2 {
		t.Fatalf("unexpected order items: %+v", order.Items)
	}
	if order.Items[0].Name != mat.Name {
		t.Fatalf("snapshot name = %q, want %q", order.Items[0].Name, mat.Name)
	}
	// subtotal 179.98, total 194.3784 -> 194.38
	if order.Total.String() != "194.38" {
		t.Fatalf("total = %s", order.Total)
	}
	if order.PaymentMethod != "Card ending in 9876" {
		t.Fatalf("payment method = %q", order.PaymentMethod)
	}

	lines, err := fx.cart.Items(ctx)
	if err != nil {
		t.Fatalf("cart items: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("cart must be cleared after checkout, got %d lines", len(lines))
	}

	listed, err := fx.orders.ListForUser(ctx, "demo-user")
	if err != nil {
		t.Fatalf("list orders: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != order.ID {
		t.Fatalf("ledger must hold the placed order, got %+v", listed)
	}
}

func TestPlaceOrderRejectsEmptyCart(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)

	_, err := fx.checkout.PlaceOrder(context.Background(), checkoutInput("demo-user"))
	if !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR for empty cart, got %v", err)
	}
}

func TestPlaceOrderRejectsUnknownUser(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)
	ctx := context.Background()

	catalog := products.NewCatalog()
	mat, err := catalog.GetByID(1)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	if _, err := fx.cart.Add(ctx, mat); err != nil {
		t.Fatalf("add to cart: %v", err)
	}

	_, err = fx.checkout.PlaceOrder(ctx, checkoutInput("user-nobody"))
	if !pkgerrors.HasCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected UNAUTHORIZED, got %v", err)
	}

	lines, err := fx.cart.Items(ctx)
	if err != nil {
		t.Fatalf("cart items: %v", err)
	}
	if len(lines) != 1 {
		t.Fatal("failed checkout must leave the cart intact")
	}
}
