package domain

import (
	"context"
	"time"
)

// CacheError represents an error originating from the cache.
type CacheError string

func (e CacheError) Error() string {
	return string(e)
}

// ErrCacheMiss is returned when a key is not found in the cache.
const ErrCacheMiss = CacheError("cache: key not found")

// Cache is the port for the shared cache backend (Redis in production).
type Cache interface {
	// Get retrieves an item. Returns ErrCacheMiss if the key is not found.
	Get(ctx context.Context, key string) (string, error)

	// Set stores an item, overwriting any existing value. A zero expiration
	// caches indefinitely where the backend supports it.
	Set(ctx context.Context, key string, value string, expiration time.Duration) error

	// Delete removes an item. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Ping checks the health of the cache backend.
	Ping(ctx context.Context) error
}
