package reviews

import (
	"context"
	"testing"

	"github.com/sustainsports/storefront-backend/internal/products"
	pkgerrors "github.com/sustainsports/storefront-backend/pkg/errors"
	"github.com/sustainsports/storefront-backend/pkg/kv"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	svc, err := NewService(kv.NewMemory(), kv.NewKeys(""), products.NewCatalog())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestAddPrependsNewestFirst(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	first, err := svc.Add(ctx, "user-1", 1, 5, "Jamie", "Great grip, zero smell.")
	if err != nil {
		t.Fatalf("add first: %v", err)
	}
	second, err := svc.Add(ctx, "user-2", 1, 4, "Sam", "Solid mat, a little thin.")
	if err != nil {
		t.Fatalf("add second: %v", err)
	}

	list, err := svc.ListForProduct(ctx, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 reviews, got %d", len(list))
	}
	if list[0].ID != second.ID || list[1].ID != first.ID {
		t.Fatal("reviews must be newest first")
	}
	if !list[0].Verified {
		t.Fatal("stored reviews must be flagged verified")
	}
}

func TestAddValidatesRating(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	for _, rating := range []int{0, 6, -1} {
		if _, err := svc.Add(ctx, "user-1", 1, rating, "Jamie", "text"); !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
			t.Fatalf("rating %d: expected VALIDATION_ERROR, got %v", rating, err)
		}
	}
}

func TestAddRequiresAuthenticatedUser(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)

	_, err := svc.Add(context.Background(), "", 1, 5, "Anon", "text")
	if !pkgerrors.HasCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected UNAUTHORIZED, got %v", err)
	}
}

func TestAddUnknownProduct(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)

	_, err := svc.Add(context.Background(), "user-1", 999, 5, "Jamie", "text")
	if !pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestReviewsAreScopedPerProduct(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Add(ctx, "user-1", 1, 5, "Jamie", "Mat review"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.Add(ctx, "user-1", 2, 3, "Jamie", "Ball review"); err != nil {
		t.Fatalf("add: %v", err)
	}

	matReviews, err := svc.ListForProduct(ctx, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(matReviews) != 1 || matReviews[0].Comment != "Mat review" {
		t.Fatalf("unexpected reviews for product 1: %+v", matReviews)
	}
}
