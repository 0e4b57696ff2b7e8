package keyvalue

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get when no value exists under the key.
var ErrNotFound = errors.New("keyvalue: key not found")

// Store is the durable string key-value area the ride and chat stores write
// to. Values are opaque strings (the stores keep JSON documents in them),
// keys are enumerable by pattern, and there is no built-in expiry; all
// lifecycle logic lives in the callers.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
	Keys(ctx context.Context, pattern string) ([]string, error)

	// SetTTL exists for short-lived cache entries (event search results);
	// the persistent stores never pass a non-zero expiration.
	SetTTL(ctx context.Context, key, value string, expiration time.Duration) error

	Ping(ctx context.Context) error
}
