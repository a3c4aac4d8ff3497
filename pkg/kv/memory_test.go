package kv

import (
	"context"
	"errors"
	"testing"
)

type testDoc struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	t.Parallel()

	store := NewMemory()
	ctx := context.Background()

	if err := store.Put(ctx, "doc", testDoc{Name: "cart", Count: 3}); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}

	var got testDoc
	if err := store.Get(ctx, "doc", &got); err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.Name != "cart" || got.Count != 3 {
		t.Fatalf("unexpected document: %+v", got)
	}
}

func TestMemoryStoreGetMissingKey(t *testing.T) {
	t.Parallel()

	store := NewMemory()
	var got testDoc
	if err := store.Get(context.Background(), "missing", &got); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}
}

func TestMemoryStoreDeleteIsIdempotent(t *testing.T) {
	t.Parallel()

	store := NewMemory()
	ctx := context.Background()

	if err := store.Put(ctx, "doc", testDoc{Name: "x"}); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}
	if err := store.Delete(ctx, "doc"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := store.Delete(ctx, "doc"); err != nil {
		t.Fatalf("second Delete returned error: %v", err)
	}

	var got testDoc
	if err := store.Get(ctx, "doc", &got); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound after delete, got %v", err)
	}
}

func TestMemoryStoreOverwrite(t *testing.T) {
	t.Parallel()

	store := NewMemory()
	ctx := context.Background()

	if err := store.Put(ctx, "doc", testDoc{Count: 1}); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}
	if err := store.Put(ctx, "doc", testDoc{Count: 2}); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}

	var got testDoc
	if err := store.Get(ctx, "doc", &got); err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.Count != 2 {
		t.Fatalf("expected last write to win, got %+v", got)
	}
}
