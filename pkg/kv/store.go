// Package kv provides the durable key-value substrate backing all domain
// state. Records are whole JSON documents written synchronously under fixed
// namespace keys; there are no transactions and no conflict detection. When
// several processes share the sqlite, postgres, or redis backend, the last
// writer wins. That is an accepted limitation of the substrate, not a
// guarantee the domain layer can rely on.
package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/sustainsports/storefront-backend/pkg/config"
)

// ErrKeyNotFound is returned by Get when no record exists under the key.
var ErrKeyNotFound = errors.New("kv: key not found")

// Store is the synchronous key-value persistence substrate.
type Store interface {
	// Get unmarshals the JSON document stored under key into dest.
	Get(ctx context.Context, key string, dest any) error
	// Put marshals value to JSON and overwrites the document under key.
	Put(ctx context.Context, key string, value any) error
	// Delete removes the document under key; absent keys are a no-op.
	Delete(ctx context.Context, key string) error
	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error
	Close() error
}

// Open builds the store selected by the storage configuration.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		return NewMemory(), nil
	case config.StorageDriverSQLite, config.StorageDriverPostgres:
		return NewSQL(ctx, cfg.Storage)
	case config.StorageDriverRedis:
		return NewRedis(ctx, cfg.Redis)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
