package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey builds a content-addressed cache key: prefix:hash(parts...).
// The prefix is one of the styling key types (graph, style, render) and the
// parts are the inputs that determine the artifact, e.g. the vault
// fingerprint for graph keys or the (graph hash, query hash) pair for style
// keys. Equal inputs always map to the same key.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	// Full SHA-256 (64 hex chars) to prevent collisions
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data and returns the full
// 64-character hex string. Callers use it to fingerprint graph JSON and
// query text before deriving keys with a Keyer.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
