// Package orders keeps the append-only order ledger created at checkout.
// Orders are immutable snapshots; the ledger is one flat list across all
// users, so every read path must scope by owner.
package orders

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sustainsports/storefront-backend/pkg/config"
	pkgerrors "github.com/sustainsports/storefront-backend/pkg/errors"
	"github.com/sustainsports/storefront-backend/pkg/kv"
	"github.com/sustainsports/storefront-backend/pkg/types"
)

// StatusProcessing is the status every order carries at creation.
const StatusProcessing = "Processing"

// LineSnapshot is an immutable copy of one purchased line. Later catalog
// edits never reach back into placed orders.
type LineSnapshot struct {
	ProductID int             `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

type Order struct {
	ID              string          `json:"id"`
	UserID          string          `json:"userId"`
	Date            time.Time       `json:"date"`
	Items           []LineSnapshot  `json:"items"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Total           decimal.Decimal `json:"total"`
	Status          string          `json:"status"`
	ShippingAddress types.Address   `json:"shippingAddress"`
	BillingAddress  types.Address   `json:"billingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
	ShippingMethod  string          `json:"shippingMethod"`
	TrackingNumber  *string         `json:"trackingNumber"`
}

// PlaceInput carries everything checkout hands the ledger. CardNumber is
// reduced to its last four digits; the full number is never persisted.
type PlaceInput struct {
	UserID          string
	Lines           []LineSnapshot
	ShippingAddress types.Address
	BillingAddress  types.Address
	CardNumber      string
	ShippingMethod  string
}

type Service interface {
	Place(ctx context.Context, input PlaceInput) (Order, error)
	ListForUser(ctx context.Context, userID string) ([]Order, error)
	Get(ctx context.Context, orderID, userID string) (Order, error)
}

type service struct {
	store    kv.Store
	keys     kv.Keys
	checkout config.CheckoutConfig

	mu sync.Mutex

	now   func() time.Time
	newID func() string
}

func NewService(store kv.Store, keys kv.Keys, checkout config.CheckoutConfig) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("orders: store is required")
	}
	return &service{
		store:    store,
		keys:     keys,
		checkout: checkout,
		now:      time.Now,
		newID:    uuid.NewString,
	}, nil
}

func (s *service) Place(ctx context.Context, input PlaceInput) (Order, error) {
	if input.UserID == "" {
		return Order{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "an authenticated user is required to place an order")
	}
	if len(input.Lines) == 0 {
		return Order{}, pkgerrors.New(pkgerrors.CodeValidation, "cannot place an order with no items")
	}
	for _, line := range input.Lines {
		if line.Quantity <= 0 {
			return Order{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid quantity %d for product %d", line.Quantity, line.ProductID))
		}
	}

	subtotal := decimal.Zero
	for _, line := range input.Lines {
		subtotal = subtotal.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	taxRate := s.checkout.TaxRateDecimal()
	total := subtotal.Mul(decimal.NewFromInt(1).Add(taxRate)).Round(2)

	shippingMethod := input.ShippingMethod
	if shippingMethod == "" {
		shippingMethod = s.checkout.ShippingMethod
	}

	order := Order{
		ID:              "SS-ORD-" + s.newID(),
		UserID:          input.UserID,
		Date:            s.now().UTC(),
		Items:           append([]LineSnapshot(nil), input.Lines...),
		Subtotal:        subtotal,
		Total:           total,
		Status:          StatusProcessing,
		ShippingAddress: input.ShippingAddress,
		BillingAddress:  input.BillingAddress,
		PaymentMethod:   renderPaymentMethod(input.CardNumber),
		ShippingMethod:  shippingMethod,
		TrackingNumber:  nil,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ledger, err := s.load(ctx)
	if err != nil {
		return Order{}, err
	}
	ledger = append(ledger, order)
	if err := s.save(ctx, ledger); err != nil {
		return Order{}, err
	}
	return order, nil
}

// ListForUser returns the caller's orders newest first. The sort is stable so
// orders placed at the same instant keep their insertion order.
func (s *service) ListForUser(ctx context.Context, userID string) ([]Order, error) {
	ledger, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	var mine []Order
	for _, o := range ledger {
		if o.UserID == userID {
			mine = append(mine, o)
		}
	}
	sort.SliceStable(mine, func(i, j int) bool {
		return mine[i].Date.After(mine[j].Date)
	})
	return mine, nil
}

// Get scopes the lookup to the owner. A missing order and another user's
// order are indistinguishable to the caller.
func (s *service) Get(ctx context.Context, orderID, userID string) (Order, error) {
	ledger, err := s.load(ctx)
	if err != nil {
		return Order{}, err
	}
	for _, o := range ledger {
		if o.ID == orderID && o.UserID == userID {
			return o, nil
		}
	}
	return Order{}, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
}

func renderPaymentMethod(cardNumber string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, cardNumber)
	if len(digits) > 4 {
		digits = digits[len(digits)-4:]
	}
	return "Card ending in " + digits
}

func (s *service) load(ctx context.Context) ([]Order, error) {
	var ledger []Order
	if err := s.store.Get(ctx, s.keys.Orders(), &ledger); err != nil {
		if errors.Is(err, kv.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorageUnavailable, err, "reading orders")
	}
	return ledger, nil
}

func (s *service) save(ctx context.Context, ledger []Order) error {
	if err := s.store.Put(ctx, s.keys.Orders(), ledger); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorageUnavailable, err, "writing orders")
	}
	return nil
}
