// Package cache provides content-addressed caching for styled graphs and
// rendered artifacts.
//
// Styling is deterministic: the same graph plus the same query always
// produces the same styled graph, and the same styled graph always renders
// to the same artifact. That makes every stage safe to cache by content
// hash. The package offers three backends:
//
//   - FileCache: directory-based cache for CLI usage
//   - RedisCache: shared cache for the HTTP API
//   - NullCache: disables caching
//
// # Key Structure
//
// Keys are generated by a Keyer so that all backends agree on naming:
//
//	graph:<sha256>          scanned vault graphs, keyed by vault fingerprint
//	style:<sha256>          styled graphs, keyed by graph hash + query hash
//	render:<sha256>         rendered artifacts, keyed by styled hash + options
//
// ScopedKeyer prepends a tenant prefix for shared backends.
package cache

import (
	"context"
	"strings"
	"time"
)

// Cache is the interface implemented by all cache backends.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with an optional TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// KeyType extracts the key-type prefix from a cache key ("graph", "style",
// "render"). Used for observability labels.
func KeyType(key string) string {
	if i := strings.IndexByte(key, ':'); i >= 0 {
		return key[:i]
	}
	return key
}
