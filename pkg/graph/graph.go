// Package graph defines the node/edge model that the rule engine styles.
//
// A Graph is a flat list of nodes and edges extracted from a knowledge base
// (see pkg/vault) or supplied directly as JSON. Style attributes (color,
// shape, material, size, width, opacity) are optional and mutated in place
// by pkg/rules; everything else is read-only during styling.
//
// # Serialization
//
// The JSON format is the canonical interchange format for the CLI and the
// HTTP API. Round-trip fidelity is guaranteed: import → style → export →
// re-import produces identical structure.
//
//	g, err := graph.ReadFile("vault.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ctx := graph.NewContext(g)
package graph

import (
	"path"
	"strings"
)

// =============================================================================
// Constants
// =============================================================================

// Edge kinds.
const (
	// EdgeKindDefault marks an untyped wiki-link edge. An empty Kind is
	// treated the same way.
	EdgeKindDefault = "default"

	// EdgeKindProperty marks an edge derived from a named front-matter
	// property. Property edges carry the property name in Edge.Property.
	EdgeKindProperty = "property"
)

// TagNodePrefix prefixes the ID of tag pseudo-nodes ("tag:project").
const TagNodePrefix = "tag:"

// =============================================================================
// Node
// =============================================================================

// Node is a single graph node with optional style attributes.
// Style fields start unset; pointer fields distinguish "unset" from zero.
type Node struct {
	ID    string   `json:"id" bson:"id"`
	Label string   `json:"label,omitempty" bson:"label,omitempty"` // Display label (defaults to ID)
	Tags  []string `json:"tags,omitempty" bson:"tags,omitempty"`   // Inline and front-matter tags, merged

	// Style attributes, set by rule application.
	Color    string   `json:"color,omitempty" bson:"color,omitempty"`
	Shape    string   `json:"shape,omitempty" bson:"shape,omitempty"`
	Material string   `json:"material,omitempty" bson:"material,omitempty"`
	Size     *float64 `json:"size,omitempty" bson:"size,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// IsTagNode returns true if this node is a tag pseudo-node ("tag:<name>").
func (n *Node) IsTagNode() bool {
	return len(n.ID) >= len(TagNodePrefix) &&
		strings.EqualFold(n.ID[:len(TagNodePrefix)], TagNodePrefix)
}

// TagName returns the tag name for tag pseudo-nodes, or "" otherwise.
func (n *Node) TagName() string {
	if !n.IsTagNode() {
		return ""
	}
	return n.ID[len(TagNodePrefix):]
}

// InFolder returns true if the node ID sits under the given folder prefix.
func (n *Node) InFolder(folder string) bool {
	return strings.HasPrefix(n.ID, folder+"/")
}

// =============================================================================
// Edge
// =============================================================================

// Edge is a directed edge with optional style attributes.
type Edge struct {
	ID       string `json:"id,omitempty" bson:"id,omitempty"`
	From     string `json:"from" bson:"from"`
	To       string `json:"to" bson:"to"`
	Kind     string `json:"kind,omitempty" bson:"kind,omitempty"`         // "default" (or empty) or "property"
	Property string `json:"property,omitempty" bson:"property,omitempty"` // Set when Kind == "property"

	// Style attributes, set by rule application.
	Color   string   `json:"color,omitempty" bson:"color,omitempty"`
	Width   *float64 `json:"width,omitempty" bson:"width,omitempty"`
	Opacity *float64 `json:"opacity,omitempty" bson:"opacity,omitempty"`
}

// IsProperty returns true if this edge carries a property classification.
func (e *Edge) IsProperty() bool {
	return e.Kind == EdgeKindProperty && e.Property != ""
}

// =============================================================================
// Graph
// =============================================================================

// Graph is the canonical serialization format for extracted graphs.
type Graph struct {
	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges" bson:"edges"`
}

// Node returns a pointer to the node with the given ID, or nil.
func (g *Graph) Node(id string) *Node {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i]
		}
	}
	return nil
}

// =============================================================================
// Name Matching
// =============================================================================

// NameMatches reports whether a node ID matches a link target name.
//
// Matching is deliberately forgiving, mirroring how wiki links resolve:
// comparison is case-insensitive, a trailing extension suffix on either side
// is ignored, and the name may match only the final path segment of the ID
// ("Project" matches "work/Project.md").
func NameMatches(id, name string) bool {
	if id == "" || name == "" {
		return false
	}
	id = strings.ToLower(id)
	name = strings.ToLower(name)
	name = trimExt(name)

	if id == name || trimExt(id) == name {
		return true
	}
	base := id
	if i := strings.LastIndex(id, "/"); i >= 0 {
		base = id[i+1:]
	}
	return base == name || trimExt(base) == name
}

// trimExt strips a trailing file extension, if any.
func trimExt(s string) string {
	return strings.TrimSuffix(s, path.Ext(s))
}
