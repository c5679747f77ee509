package cache

// RenderKeyOpts captures the rendering options that affect artifact output.
type RenderKeyOpts struct {
	Format string // "svg", "dot"
	Layout string // graphviz layout engine, e.g. "dot", "neato"
}

// Keyer generates cache keys for the styling pipeline stages.
type Keyer interface {
	// GraphKey generates a key for a scanned vault graph.
	// The fingerprint identifies the vault contents (see vault.Fingerprint).
	GraphKey(fingerprint string) string

	// StyleKey generates a key for a styled graph.
	StyleKey(graphHash, queryHash string) string

	// RenderKey generates a key for a rendered artifact.
	RenderKey(styledHash string, opts RenderKeyOpts) string
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// GraphKey generates a key for a scanned vault graph.
func (k *DefaultKeyer) GraphKey(fingerprint string) string {
	return hashKey("graph", fingerprint)
}

// StyleKey generates a key for a styled graph.
func (k *DefaultKeyer) StyleKey(graphHash, queryHash string) string {
	return hashKey("style", graphHash, queryHash)
}

// RenderKey generates a key for a rendered artifact.
func (k *DefaultKeyer) RenderKey(styledHash string, opts RenderKeyOpts) string {
	return hashKey("render", styledHash, opts)
}
