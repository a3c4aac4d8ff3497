// Package reviews stores per-product customer reviews, newest first.
package reviews

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sustainsports/storefront-backend/internal/products"
	pkgerrors "github.com/sustainsports/storefront-backend/pkg/errors"
	"github.com/sustainsports/storefront-backend/pkg/kv"
)

type Review struct {
	ID       string    `json:"id"`
	UserID   string    `json:"userId"`
	Name     string    `json:"name"`
	Rating   int       `json:"rating"`
	Comment  string    `json:"comment"`
	Date     time.Time `json:"date"`
	Verified bool      `json:"verified"`
}

type Service interface {
	ListForProduct(ctx context.Context, productID int) ([]Review, error)
	Add(ctx context.Context, userID string, productID, rating int, name, comment string) (Review, error)
}

type service struct {
	store   kv.Store
	keys    kv.Keys
	catalog products.Catalog

	mu sync.Mutex

	now   func() time.Time
	newID func() string
}

func NewService(store kv.Store, keys kv.Keys, catalog products.Catalog) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("reviews: store is required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("reviews: catalog is required")
	}
	return &service{
		store:   store,
		keys:    keys,
		catalog: catalog,
		now:     time.Now,
		newID:   uuid.NewString,
	}, nil
}

func (s *service) ListForProduct(ctx context.Context, productID int) ([]Review, error) {
	if _, err := s.catalog.GetByID(productID); err != nil {
		return nil, err
	}
	return s.load(ctx, productID)
}

// Add prepends the new review so the list stays newest first. Every stored
// review is flagged as a verified purchase.
func (s *service) Add(ctx context.Context, userID string, productID, rating int, name, comment string) (Review, error) {
	if userID == "" {
		return Review{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to leave a review")
	}
	if rating < 1 || rating > 5 {
		return Review{}, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}
	name = strings.TrimSpace(name)
	comment = strings.TrimSpace(comment)
	if name == "" || comment == "" {
		return Review{}, pkgerrors.New(pkgerrors.CodeValidation, "name and comment are required")
	}
	if _, err := s.catalog.GetByID(productID); err != nil {
		return Review{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.load(ctx, productID)
	if err != nil {
		return Review{}, err
	}

	review := Review{
		ID:       s.newID(),
		UserID:   userID,
		Name:     name,
		Rating:   rating,
		Comment:  comment,
		Date:     s.now().UTC(),
		Verified: true,
	}
	list = append([]Review{review}, list...)

	if err := s.store.Put(ctx, s.keys.ProductReviews(productID), list); err != nil {
		return Review{}, pkgerrors.Wrap(pkgerrors.CodeStorageUnavailable, err, "writing reviews")
	}
	return review, nil
}

func (s *service) load(ctx context.Context, productID int) ([]Review, error) {
	var list []Review
	if err := s.store.Get(ctx, s.keys.ProductReviews(productID), &list); err != nil {
		if errors.Is(err, kv.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorageUnavailable, err, "reading reviews")
	}
	return list, nil
}
