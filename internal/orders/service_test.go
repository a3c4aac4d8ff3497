package orders

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sustainsports/storefront-backend/pkg/config"
	pkgerrors "github.com/sustainsports/storefront-backend/pkg/errors"
	"github.com/sustainsports/storefront-backend/pkg/kv"
	"github.com/sustainsports/storefront-backend/pkg/types"
)

func testCheckoutConfig() config.CheckoutConfig {
	return config.CheckoutConfig{
		TaxRate:        0.08,
		ShippingMethod: "Standard Eco-Shipping (3-5 days)",
	}
}

func newTestService(t *testing.T) *service {
	t.Helper()
	svc, err := NewService(kv.NewMemory(), kv.NewKeys(""), testCheckoutConfig())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc.(*service)
}

func line(productID int, name string, qty int, unitPrice string) LineSnapshot {
	return LineSnapshot{
		ProductID: productID,
		Name:      name,
		Quantity:  qty,
		UnitPrice: decimal.RequireFromString(unitPrice),
	}
}

func placeInput(userID string, lines ...LineSnapshot) PlaceInput {
	return PlaceInput{
		UserID:          userID,
		Lines:           lines,
		ShippingAddress: types.Address{Name: "Jamie", Address: "1 Green Way", Country: "NL"},
		BillingAddress:  types.Address{Name: "Jamie", Address: "1 Green Way", Country: "NL"},
		CardNumber:      "4111 1111 1111 1234",
	}
}

func TestPlaceBuildsImmutableSnapshot(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)

	order, err := svc.Place(context.Background(), placeInput("user-1",
		line(1, "Eco Bamboo Yoga Mat", 2, "89.99"),
		line(8, "Eco Tennis Ball Set", 1, "12.99"),
	))
	if err != nil {
		t.Fatalf("place: %v", err)
	}

	if order.Status != StatusProcessing {
		t.Fatalf("new order status = %q, want %q", order.Status, StatusProcessing)
	}
	if order.PaymentMethod != "Card ending in 1234" {
		t.Fatalf("payment method = %q", order.PaymentMethod)
	}
	if order.ShippingMethod != "Standard Eco-Shipping (3-5 days)" {
		t.Fatalf("shipping method = %q", order.ShippingMethod)
	}
	if order.TrackingNumber != nil {
		t.Fatal("new orders carry no tracking number")
	}

	// subtotal 192.97, total 192.97 * 1.08 = 208.4076 -> 208.41
	if order.Subtotal.String() != "192.97" {
		t.Fatalf("subtotal = %s", order.Subtotal)
	}
	if order.Total.String() != "208.41" {
		t.Fatalf("total = %s", order.Total)
	}
}

func TestPlaceRejectsEmptyAndInvalidInput(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Place(ctx, placeInput("user-1")); !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR for empty lines, got %v", err)
	}
	if _, err := svc.Place(ctx, placeInput("", line(1, "Mat", 1, "10.00"))); !pkgerrors.HasCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected UNAUTHORIZED for missing user, got %v", err)
	}
	if _, err := svc.Place(ctx, placeInput("user-1", line(1, "Mat", 0, "10.00"))); !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR for zero quantity, got %v", err)
	}
}

func TestListForUserSortsNewestFirstStably(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	stamps := []time.Time{base, base.Add(time.Hour), base.Add(time.Hour)}
	ids := []string{"first", "tied-a", "tied-b"}

	for i := range stamps {
		ts := stamps[i]
		id := ids[i]
		svc.now = func() time.Time { return ts }
		svc.newID = func() string { return id }
		if _, err := svc.Place(ctx, placeInput("user-1", line(1, "Mat", 1, "10.00"))); err != nil {
			t.Fatalf("place %s: %v", id, err)
		}
	}
	// Another user's order never shows up in the listing.
	if _, err := svc.Place(ctx, placeInput("user-2", line(1, "Mat", 1, "10.00"))); err != nil {
		t.Fatalf("place other user: %v", err)
	}

	got, err := svc.ListForUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 orders, got %d", len(got))
	}

	wantIDs := []string{"SS-ORD-tied-a", "SS-ORD-tied-b", "SS-ORD-first"}
	for i, want := range wantIDs {
		if got[i].ID != want {
			t.Fatalf("position %d: got %s, want %s (ties must keep insertion order)", i, got[i].ID, want)
		}
	}
}

func TestGetScopesByOwner(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	order, err := svc.Place(ctx, placeInput("user-1", line(1, "Mat", 1, "10.00")))
	if err != nil {
		t.Fatalf("place: %v", err)
	}

	if _, err := svc.Get(ctx, order.ID, "user-1"); err != nil {
		t.Fatalf("owner lookup: %v", err)
	}

	_, otherErr := svc.Get(ctx, order.ID, "user-2")
	_, missingErr := svc.Get(ctx, "SS-ORD-missing", "user-2")
	if !pkgerrors.HasCode(otherErr, pkgerrors.CodeNotFound) {
		t.Fatalf("cross-user lookup must be NOT_FOUND, got %v", otherErr)
	}
	if !pkgerrors.HasCode(missingErr, pkgerrors.CodeNotFound) {
		t.Fatalf("missing order must be NOT_FOUND, got %v", missingErr)
	}
	// The two failures must be indistinguishable.
	if pkgerrors.As(otherErr).Code() != pkgerrors.As(missingErr).Code() {
		t.Fatal("cross-user and missing lookups must fail identically")
	}
}
