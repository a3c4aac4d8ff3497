package kv

import "fmt"

// DefaultPrefix namespaces every substrate key for this storefront.
const DefaultPrefix = "sustainsports:"

// Keys renders the fixed namespace keys of the persisted state layout.
type Keys struct {
	prefix string
}

func NewKeys(prefix string) Keys {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return Keys{prefix: prefix}
}

// RegisteredUsers holds the list of registered user records.
func (k Keys) RegisteredUsers() string { return k.prefix + "registered_users" }

// Session holds the single current-session record, absent when logged out.
func (k Keys) Session() string { return k.prefix + "session" }

// Cart holds the anonymous cart line set.
func (k Keys) Cart() string { return k.prefix + "cart" }

// Orders holds the flat list of orders across all users.
func (k Keys) Orders() string { return k.prefix + "orders" }

// PasswordResets holds pending password reset tokens.
func (k Keys) PasswordResets() string { return k.prefix + "password_resets" }

// ProductReviews holds the review list for one product.
func (k Keys) ProductReviews(productID int) string {
	return fmt.Sprintf("%sreviews:%d", k.prefix, productID)
}
