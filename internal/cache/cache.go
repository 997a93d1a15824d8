package cache

import (
	"context"
)

// Cache stores JSON-serialisable values under string keys.
type Cache[T any] interface {
	// Get returns the cached value, or nil without error on a miss.
	Get(ctx context.Context, key string) (*T, error)

	// Set stores value under key using the cache's TTL.
	Set(ctx context.Context, key string, value *T) error

	// Generation returns the current write generation. Callers put it in
	// their keys so an entry computed before a Flush is never read after it.
	Generation(ctx context.Context) (int64, error)

	// Flush advances the generation and removes every entry this cache owns.
	Flush(ctx context.Context) error
}

// noopCache never stores anything. It is used when caching is disabled.
type noopCache[T any] struct{}

// NewNoop returns a cache that always misses.
func NewNoop[T any]() Cache[T] {
	return noopCache[T]{}
}

func (noopCache[T]) Get(context.Context, string) (*T, error) { return nil, nil }

func (noopCache[T]) Set(context.Context, string, *T) error { return nil }

func (noopCache[T]) Generation(context.Context) (int64, error) { return 0, nil }

func (noopCache[T]) Flush(context.Context) error { return nil }
