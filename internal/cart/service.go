// Package cart maintains the anonymous shopping cart: one line per product,
// whole line set persisted on every mutation.
package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/sustainsports/storefront-backend/internal/products"
	pkgerrors "github.com/sustainsports/storefront-backend/pkg/errors"
	"github.com/sustainsports/storefront-backend/pkg/kv"
)

// Line is one cart entry: a product snapshot and its quantity.
type Line struct {
	Product  products.Product `json:"product"`
	Quantity int              `json:"quantity"`
}

// Service is the cart aggregator. The cart is anonymous and never transfers
// to a user account.
type Service interface {
	Items(ctx context.Context) ([]Line, error)
	Add(ctx context.Context, product products.Product) ([]Line, error)
	Remove(ctx context.Context, productID int) ([]Line, error)
	UpdateQuantity(ctx context.Context, productID, quantity int) ([]Line, error)
	Clear(ctx context.Context) error
	Total(ctx context.Context) (decimal.Decimal, error)
	ItemCount(ctx context.Context) (int, error)
}

type service struct {
	store kv.Store
	keys  kv.Keys

	mu sync.Mutex
}

func NewService(store kv.Store, keys kv.Keys) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart: store is required")
	}
	return &service{store: store, keys: keys}, nil
}

func (s *service) Items(ctx context.Context) ([]Line, error) {
	return s.load(ctx)
}

// Add appends a new line at quantity 1, or bumps the existing line's
// quantity by 1. N successive adds of the same product yield quantity N.
func (s *service) Add(ctx context.Context, product products.Product) ([]Line, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range lines {
		if lines[i].Product.ID == product.ID {
			lines[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		lines = append(lines, Line{Product: product, Quantity: 1})
	}

	if err := s.save(ctx, lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// Remove drops the line for the product. Removing an absent product is a
// no-op.
func (s *service) Remove(ctx context.Context, productID int) ([]Line, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	kept := lines[:0]
	for _, l := range lines {
		if l.Product.ID != productID {
			kept = append(kept, l)
		}
	}
	if err := s.save(ctx, kept); err != nil {
		return nil, err
	}
	return kept, nil
}

// UpdateQuantity sets the line's quantity directly. The aggregator does not
// remove lines on non-positive quantities; callers that want remove-on-zero
// map it themselves.
func (s *service) UpdateQuantity(ctx context.Context, productID, quantity int) ([]Line, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range lines {
		if lines[i].Product.ID != productID {
			continue
		}
		lines[i].Quantity = quantity
		if err := s.save(ctx, lines); err != nil {
			return nil, err
		}
		return lines, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product %d is not in the cart", productID))
}

func (s *service) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, []Line{})
}

// Total is the exact decimal sum of unit price times quantity. No rounding
// happens here; order presentation owns rounding.
func (s *service) Total(ctx context.Context) (decimal.Decimal, error) {
	lines, err := s.load(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return SumLines(lines), nil
}

func (s *service) ItemCount(ctx context.Context) (int, error) {
	lines, err := s.load(ctx)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, l := range lines {
		count += l.Quantity
	}
	return count, nil
}

// SumLines totals price x quantity across lines without rounding.
func SumLines(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}

func (s *service) load(ctx context.Context) ([]Line, error) {
	var lines []Line
	if err := s.store.Get(ctx, s.keys.Cart(), &lines); err != nil {
		if errors.Is(err, kv.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorageUnavailable, err, "reading cart")
	}
	return lines, nil
}

func (s *service) save(ctx context.Context, lines []Line) error {
	if err := s.store.Put(ctx, s.keys.Cart(), lines); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorageUnavailable, err, "writing cart")
	}
	return nil
}
