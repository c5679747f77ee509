package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// Useful when several vaults or users share one Redis backend and need
// separate cache namespaces.
//
// Example usage:
//
//	// Per-vault keys on a shared backend
//	vaultKeyer := NewScopedKeyer(NewDefaultKeyer(), "vault:abc123:")
//
//	// Global keys
//	globalKeyer := NewDefaultKeyer()
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// GraphKey generates a prefixed key for a scanned vault graph.
func (k *ScopedKeyer) GraphKey(fingerprint string) string {
	return k.prefix + k.inner.GraphKey(fingerprint)
}

// StyleKey generates a prefixed key for a styled graph.
func (k *ScopedKeyer) StyleKey(graphHash, queryHash string) string {
	return k.prefix + k.inner.StyleKey(graphHash, queryHash)
}

// RenderKey generates a prefixed key for a rendered artifact.
func (k *ScopedKeyer) RenderKey(styledHash string, opts RenderKeyOpts) string {
	return k.prefix + k.inner.RenderKey(styledHash, opts)
}
