package kv

import "testing"

func TestKeysLayout(t *testing.T) {
	t.Parallel()

	keys := NewKeys("")
	if keys.RegisteredUsers() != "sustainsports:registered_users" {
		t.Fatalf("unexpected users key %q", keys.RegisteredUsers())
	}
	if keys.Session() != "sustainsports:session" {
		t.Fatalf("unexpected session key %q", keys.Session())
	}
	if keys.Cart() != "sustainsports:cart" {
		t.Fatalf("unexpected cart key %q", keys.Cart())
	}
	if keys.Orders() != "sustainsports:orders" {
		t.Fatalf("unexpected orders key %q", keys.Orders())
	}
	if keys.ProductReviews(7) != "sustainsports:reviews:7" {
		t.Fatalf("unexpected reviews key %q", keys.ProductReviews(7))
	}
}

func TestKeysCustomPrefix(t *testing.T) {
	t.Parallel()

	keys := NewKeys("test:")
	if keys.Cart() != "test:cart" {
		t.Fatalf("unexpected cart key %q", keys.Cart())
	}
}
