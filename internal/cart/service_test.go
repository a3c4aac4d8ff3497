package cart

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/sustainsports/storefront-backend/internal/products"
	pkgerrors "github.com/sustainsports/storefront-backend/pkg/errors"
	"github.com/sustainsports/storefront-backend/pkg/kv"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	svc, err := NewService(kv.NewMemory(), kv.NewKeys(""))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func testProduct(id int, price string) products.Product {
	return products.Product{
		ID:    id,
		Name:  "test product",
		Price: decimal.RequireFromString(price),
	}
}

func TestAddIncrementsExistingLine(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()
	mat := testProduct(1, "89.99")

	for i := 0; i < 3; i++ {
		if _, err := svc.Add(ctx, mat); err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
	}

	lines, err := svc.Items(ctx)
	if err != nil {
		t.Fatalf("items: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %d", len(lines))
	}
	if lines[0].Quantity != 3 {
		t.Fatalf("three adds must yield quantity 3, got %d", lines[0].Quantity)
	}
}

func TestRemoveAbsentProductIsNoOp(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Add(ctx, testProduct(1, "10.00")); err != nil {
		t.Fatalf("add: %v", err)
	}

	lines, err := svc.Remove(ctx, 999)
	if err != nil {
		t.Fatalf("remove absent: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("removing an absent product must not touch other lines, got %d lines", len(lines))
	}
}

func TestUpdateQuantityDoesNotAutoRemove(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Add(ctx, testProduct(1, "10.00")); err != nil {
		t.Fatalf("add: %v", err)
	}

	lines, err := svc.UpdateQuantity(ctx, 1, 0)
	if err != nil {
		t.Fatalf("update quantity: %v", err)
	}
	if len(lines) != 1 || lines[0].Quantity != 0 {
		t.Fatalf("quantity 0 must keep the line, got %+v", lines)
	}
}

func TestUpdateQuantityUnknownProduct(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)

	_, err := svc.UpdateQuantity(context.Background(), 42, 2)
	if !pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestTotalIsExactAndOrderIndependent(t *testing.T) {
	t.Parallel()

	// 3 x 0.10 trips float arithmetic; decimal keeps it exact.
	a := testProduct(1, "0.10")
	b := testProduct(2, "19.99")

	ctx := context.Background()

	first := newTestService(t)
	for i := 0; i < 3; i++ {
		if _, err := first.Add(ctx, a); err != nil {
			t.Fatalf("add a: %v", err)
		}
	}
	if _, err := first.Add(ctx, b); err != nil {
		t.Fatalf("add b: %v", err)
	}

	second := newTestService(t)
	if _, err := second.Add(ctx, b); err != nil {
		t.Fatalf("add b: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := second.Add(ctx, a); err != nil {
			t.Fatalf("add a: %v", err)
		}
	}

	want := decimal.RequireFromString("20.29")
	for name, svc := range map[string]Service{"first": first, "second": second} {
		total, err := svc.Total(ctx)
		if err != nil {
			t.Fatalf("%s total: %v", name, err)
		}
		if !total.Equal(want) {
			t.Fatalf("%s total = %s, want %s", name, total, want)
		}
	}
}

func TestItemCountSumsQuantities(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Add(ctx, testProduct(1, "10.00")); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.Add(ctx, testProduct(2, "5.00")); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.UpdateQuantity(ctx, 2, 4); err != nil {
		t.Fatalf("update quantity: %v", err)
	}

	count, err := svc.ItemCount(ctx)
	if err != nil {
		t.Fatalf("item count: %v", err)
	}
	if count != 5 {
		t.Fatalf("expected 5 items, got %d", count)
	}
}

func TestClearEmptiesTheCart(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Add(ctx, testProduct(1, "10.00")); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svc.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}

	lines, err := svc.Items(ctx)
	if err != nil {
		t.Fatalf("items: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("cart must be empty after clear, got %d lines", len(lines))
	}

	total, err := svc.Total(ctx)
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	if !total.IsZero() {
		t.Fatalf("empty cart total must be zero, got %s", total)
	}
}
