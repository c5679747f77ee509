package graph

import "strings"

// =============================================================================
// Context - Link Topology and Tag Lookup
// =============================================================================

// Context provides the per-graph lookups that condition evaluation needs:
// incoming/outgoing link existence, link target matching, and tag membership.
//
// A Context is built once per graph and is read-only afterwards, so a single
// instance can serve any number of rule applications.
type Context struct {
	outgoing map[string][]int // node ID → indices into edges
	incoming map[string][]int
	tags     map[string][]string // node ID → normalized tags
	edges    []Edge
}

// NewContext indexes a graph for condition evaluation.
// The graph's edge list is copied; later mutation of edge style attributes
// does not invalidate the context, but topology changes do.
func NewContext(g *Graph) *Context {
	c := &Context{
		outgoing: make(map[string][]int, len(g.Nodes)),
		incoming: make(map[string][]int, len(g.Nodes)),
		tags:     make(map[string][]string, len(g.Nodes)),
		edges:    make([]Edge, len(g.Edges)),
	}
	copy(c.edges, g.Edges)

	for i, e := range c.edges {
		c.outgoing[e.From] = append(c.outgoing[e.From], i)
		c.incoming[e.To] = append(c.incoming[e.To], i)
	}
	for i := range g.Nodes {
		n := &g.Nodes[i]
		if len(n.Tags) > 0 {
			c.tags[n.ID] = normalizeTags(n.Tags)
		}
	}
	return c
}

// HasOutgoing returns true if the node has at least one outgoing edge.
func (c *Context) HasOutgoing(nodeID string) bool {
	return len(c.outgoing[nodeID]) > 0
}

// HasIncoming returns true if the node has at least one incoming edge.
func (c *Context) HasIncoming(nodeID string) bool {
	return len(c.incoming[nodeID]) > 0
}

// IsOrphan returns true if the node has neither incoming nor outgoing edges.
func (c *Context) IsOrphan(nodeID string) bool {
	return !c.HasIncoming(nodeID) && !c.HasOutgoing(nodeID)
}

// LinksTo returns true if an edge leads from the node to a target matching name.
func (c *Context) LinksTo(nodeID, name string) bool {
	for _, i := range c.outgoing[nodeID] {
		if NameMatches(c.edges[i].To, name) {
			return true
		}
	}
	return false
}

// LinksFrom returns true if an edge leads to the node from a source matching name.
func (c *Context) LinksFrom(nodeID, name string) bool {
	for _, i := range c.incoming[nodeID] {
		if NameMatches(c.edges[i].From, name) {
			return true
		}
	}
	return false
}

// Linked returns true if the node links to or from a node matching name.
func (c *Context) Linked(nodeID, name string) bool {
	return c.LinksTo(nodeID, name) || c.LinksFrom(nodeID, name)
}

// Tagged returns true if the node carries the given tag.
// The comparison ignores case and a leading '#' on either side.
func (c *Context) Tagged(nodeID, tag string) bool {
	want := normalizeTag(tag)
	if want == "" {
		return false
	}
	for _, t := range c.tags[nodeID] {
		if t == want {
			return true
		}
	}
	return false
}

// Tags returns the normalized tags recorded for a node.
func (c *Context) Tags(nodeID string) []string {
	return c.tags[nodeID]
}

// =============================================================================
// Internal Helpers
// =============================================================================

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if n := normalizeTag(t); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// normalizeTag lowercases a tag and strips a single leading '#'.
func normalizeTag(t string) string {
	t = strings.TrimPrefix(strings.TrimSpace(t), "#")
	return strings.ToLower(t)
}
