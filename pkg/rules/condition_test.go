package rules

import (
	"testing"

	"github.com/graphtint/graphtint/pkg/graph"
)

func condGraph() (*graph.Graph, *graph.Context) {
	g := &graph.Graph{
		Nodes: []graph.Node{
			{ID: "work/Project", Label: "Project", Tags: []string{"#active"}},
			{ID: "Journal"},
			{ID: "lonely"},
			{ID: "tag:active"},
		},
		Edges: []graph.Edge{
			{From: "work/Project", To: "Journal"},
			{From: "Journal", To: "tag:active", Kind: graph.EdgeKindProperty, Property: "tags"},
		},
	}
	return g, graph.NewContext(g)
}

func TestNodeConditions(t *testing.T) {
	g, ctx := condGraph()
	project := g.Node("work/Project")
	journal := g.Node("Journal")
	lonely := g.Node("lonely")
	tagNode := g.Node("tag:active")

	tests := []struct {
		name     string
		cond     Condition
		node     *graph.Node
		expected bool
	}{
		{"default matches anything", Condition{Kind: CondDefault}, lonely, true},
		{"orphan on lonely", Condition{Kind: CondOrphan}, lonely, true},
		{"orphan on linked", Condition{Kind: CondOrphan}, project, false},
		{"tag on pseudo-node", Condition{Kind: CondTag, Arg: "Active"}, tagNode, true},
		{"tag with hash", Condition{Kind: CondTag, Arg: "#active"}, tagNode, true},
		{"tag on regular node", Condition{Kind: CondTag, Arg: "active"}, project, false},
		{"tagged", Condition{Kind: CondTagged, Arg: "active"}, project, true},
		{"tagged wrong", Condition{Kind: CondTagged, Arg: "done"}, project, false},
		{"has incoming", Condition{Kind: CondHasIncoming}, journal, true},
		{"has incoming none", Condition{Kind: CondHasIncoming}, project, false},
		{"has outgoing", Condition{Kind: CondHasOutgoing}, project, true},
		{"folder", Condition{Kind: CondFolder, Arg: "work"}, project, true},
		{"folder non-member", Condition{Kind: CondFolder, Arg: "work"}, journal, false},
		{"link_to", Condition{Kind: CondLinkTo, Arg: "journal"}, project, true},
		{"link_from", Condition{Kind: CondLinkFrom, Arg: "project"}, journal, true},
		{"link either", Condition{Kind: CondLink, Arg: "journal"}, project, true},
		{"link neither", Condition{Kind: CondLink, Arg: "journal"}, lonely, false},
		{"name selector", Condition{Kind: CondNodeName, Arg: "project"}, project, true},
		{"name selector id fallback", Condition{Kind: CondNodeName, Arg: "journal"}, journal, true},
		{"edge condition never matches a node", Condition{Kind: CondEdgeAny}, project, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cond.MatchesNode(tt.node, ctx); got != tt.expected {
				t.Errorf("MatchesNode(%s) = %v, want %v", tt.node.ID, got, tt.expected)
			}
		})
	}
}

func TestEdgeConditions(t *testing.T) {
	g, _ := condGraph()
	plain := &g.Edges[0]
	prop := &g.Edges[1]

	tests := []struct {
		name     string
		cond     Condition
		edge     *graph.Edge
		expected bool
	}{
		{"default on plain", Condition{Kind: CondEdgeDefault}, plain, true},
		{"default on property", Condition{Kind: CondEdgeDefault}, prop, false},
		{"property match", Condition{Kind: CondEdgeProperty, Arg: "TAGS"}, prop, true},
		{"property mismatch", Condition{Kind: CondEdgeProperty, Arg: "other"}, prop, false},
		{"property on plain", Condition{Kind: CondEdgeProperty, Arg: "tags"}, plain, false},
		{"any", Condition{Kind: CondEdgeAny}, prop, true},
		{
			"includes filter passes",
			Condition{Kind: CondEdgeAny, Filters: []Filter{{Substr: "journal"}}},
			plain, true,
		},
		{
			"includes filter fails",
			Condition{Kind: CondEdgeAny, Filters: []Filter{{Substr: "archive"}}},
			plain, false,
		},
		{
			"not_includes filter",
			Condition{Kind: CondEdgeAny, Filters: []Filter{{Substr: "archive", Not: true}}},
			plain, true,
		},
		{
			"filters AND together",
			Condition{Kind: CondEdgeAny, Filters: []Filter{{Substr: "journal"}, {Substr: "journal", Not: true}}},
			plain, false,
		},
		{
			"filter does not rescue failed base",
			Condition{Kind: CondEdgeDefault, Filters: []Filter{{Substr: "journal"}}},
			prop, false,
		},
		{"node condition never matches an edge", Condition{Kind: CondDefault}, plain, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cond.MatchesEdge(tt.edge); got != tt.expected {
				t.Errorf("MatchesEdge(%s→%s) = %v, want %v", tt.edge.From, tt.edge.To, got, tt.expected)
			}
		})
	}
}

func TestConditionIsEdge(t *testing.T) {
	edgeKinds := []ConditionKind{CondEdgeDefault, CondEdgeProperty, CondEdgeAny}
	nodeKinds := []ConditionKind{
		CondDefault, CondOrphan, CondTag, CondTagged, CondHasIncoming,
		CondHasOutgoing, CondFolder, CondLinkTo, CondLinkFrom, CondLink, CondNodeName,
	}

	for _, k := range edgeKinds {
		if !(Condition{Kind: k}).IsEdge() {
			t.Errorf("%v.IsEdge() = false, want true", k)
		}
	}
	for _, k := range nodeKinds {
		if (Condition{Kind: k}).IsEdge() {
			t.Errorf("%v.IsEdge() = true, want false", k)
		}
	}
}
