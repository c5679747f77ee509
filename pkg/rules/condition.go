package rules

import (
	"strings"

	"github.com/graphtint/graphtint/pkg/graph"
)

// =============================================================================
// Condition - Closed Variant Set
// =============================================================================

// ConditionKind enumerates every condition the rule language supports.
// The set is closed: evaluation switches over it exhaustively, so adding a
// kind is a compile-visible change rather than a silently ignored default.
type ConditionKind int

const (
	// Node conditions.
	CondDefault     ConditionKind = iota // default / any - always true
	CondOrphan                           // orphan - no links in either direction
	CondTag                              // tag("x") - tag pseudo-node identity
	CondTagged                           // tagged("x") - tag membership
	CondHasIncoming                      // has_incoming_links
	CondHasOutgoing                      // has_outgoing_links
	CondFolder                           // folder("path")
	CondLinkTo                           // link_to("x")
	CondLinkFrom                         // link_from("x")
	CondLink                             // link("x") - either direction
	CondNodeName                         // "Name" - display label selector

	// Edge conditions.
	CondEdgeDefault  // edge(default) - no property classification
	CondEdgeProperty // edge("x") - property name match
	CondEdgeAny      // edge(*) - catch-all
)

var conditionNames = map[ConditionKind]string{
	CondDefault:      "default",
	CondOrphan:       "orphan",
	CondTag:          "tag",
	CondTagged:       "tagged",
	CondHasIncoming:  "has_incoming_links",
	CondHasOutgoing:  "has_outgoing_links",
	CondFolder:       "folder",
	CondLinkTo:       "link_to",
	CondLinkFrom:     "link_from",
	CondLink:         "link",
	CondNodeName:     "name selector",
	CondEdgeDefault:  "edge(default)",
	CondEdgeProperty: "edge",
	CondEdgeAny:      "edge(*)",
}

func (k ConditionKind) String() string {
	if name, ok := conditionNames[k]; ok {
		return name
	}
	return "unknown"
}

// Filter is a chained post-filter on an edge condition
// (.includes("...") / .not_includes("...")). Filters AND with the base
// condition and with each other.
type Filter struct {
	Substr string
	Not    bool
}

// Condition is a single predicate in a rule's comma-separated condition list.
// Arg carries the string argument for parameterized kinds; Filters apply to
// edge conditions only.
type Condition struct {
	Kind    ConditionKind
	Arg     string
	Filters []Filter
}

// IsEdge returns true for edge conditions. A rule is an edge rule iff all of
// its conditions are edge conditions; mixing is rejected at parse time.
func (c Condition) IsEdge() bool {
	switch c.Kind {
	case CondEdgeDefault, CondEdgeProperty, CondEdgeAny:
		return true
	default:
		return false
	}
}

// =============================================================================
// Node Evaluation
// =============================================================================

// MatchesNode evaluates the condition against a node. Edge conditions never
// match nodes. Evaluation is pure: neither the node nor the context changes.
func (c Condition) MatchesNode(n *graph.Node, ctx *graph.Context) bool {
	switch c.Kind {
	case CondDefault:
		return true
	case CondOrphan:
		return ctx.IsOrphan(n.ID)
	case CondTag:
		return n.IsTagNode() && strings.EqualFold(n.TagName(), strings.TrimPrefix(c.Arg, "#"))
	case CondTagged:
		return ctx.Tagged(n.ID, c.Arg)
	case CondHasIncoming:
		return ctx.HasIncoming(n.ID)
	case CondHasOutgoing:
		return ctx.HasOutgoing(n.ID)
	case CondFolder:
		return n.InFolder(c.Arg)
	case CondLinkTo:
		return ctx.LinksTo(n.ID, c.Arg)
	case CondLinkFrom:
		return ctx.LinksFrom(n.ID, c.Arg)
	case CondLink:
		return ctx.Linked(n.ID, c.Arg)
	case CondNodeName:
		return strings.EqualFold(n.DisplayLabel(), c.Arg)
	case CondEdgeDefault, CondEdgeProperty, CondEdgeAny:
		return false
	default:
		return false
	}
}

// =============================================================================
// Edge Evaluation
// =============================================================================

// MatchesEdge evaluates the condition against an edge, including any chained
// filters. Node conditions never match edges.
func (c Condition) MatchesEdge(e *graph.Edge) bool {
	var base bool
	switch c.Kind {
	case CondEdgeDefault:
		base = !e.IsProperty()
	case CondEdgeProperty:
		base = e.IsProperty() && strings.EqualFold(e.Property, c.Arg)
	case CondEdgeAny:
		base = true
	default:
		return false
	}
	if !base {
		return false
	}

	// Filters test the concatenated endpoint IDs, case-insensitively.
	endpoints := strings.ToLower(e.From + e.To)
	for _, f := range c.Filters {
		contains := strings.Contains(endpoints, strings.ToLower(f.Substr))
		if contains == f.Not {
			return false
		}
	}
	return true
}
