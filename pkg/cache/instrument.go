package cache

import (
	"context"
	"time"

	"github.com/graphtint/graphtint/pkg/observability"
)

// instrumented wraps a Cache and reports hits, misses, and writes to the
// registered observability hooks.
type instrumented struct {
	inner Cache
}

// Instrumented wraps a cache backend with observability reporting.
// Hook labels use the key-type prefix ("graph", "style", "render").
func Instrumented(inner Cache) Cache {
	if inner == nil {
		return nil
	}
	return &instrumented{inner: inner}
}

// Get retrieves a value and records the hit or miss.
func (c *instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, hit, err := c.inner.Get(ctx, key)
	if err == nil {
		if hit {
			observability.Cache().OnCacheHit(ctx, KeyType(key))
		} else {
			observability.Cache().OnCacheMiss(ctx, KeyType(key))
		}
	}
	return data, hit, err
}

// Set stores a value and records the write.
func (c *instrumented) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	err := c.inner.Set(ctx, key, data, ttl)
	if err == nil {
		observability.Cache().OnCacheSet(ctx, KeyType(key), len(data))
	}
	return err
}

// Delete removes a value.
func (c *instrumented) Delete(ctx context.Context, key string) error {
	return c.inner.Delete(ctx, key)
}

// Close closes the wrapped backend.
func (c *instrumented) Close() error {
	return c.inner.Close()
}

// Ensure instrumented implements Cache.
var _ Cache = (*instrumented)(nil)
