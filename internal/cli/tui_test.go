package cli

import (
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/graphtint/graphtint/pkg/graph"
	"github.com/graphtint/graphtint/pkg/rules"
)

func TestFormatCondition(t *testing.T) {
	tests := []struct {
		name string
		cond rules.Condition
		want string
	}{
		{
			name: "default",
			cond: rules.Condition{Kind: rules.CondDefault},
			want: "default",
		},
		{
			name: "tagged",
			cond: rules.Condition{Kind: rules.CondTagged, Arg: "project"},
			want: `tagged("project")`,
		},
		{
			name: "name selector",
			cond: rules.Condition{Kind: rules.CondNodeName, Arg: "Roadmap"},
			want: `"Roadmap"`,
		},
		{
			name: "edge default",
			cond: rules.Condition{Kind: rules.CondEdgeDefault},
			want: "edge(default)",
		},
		{
			name: "edge any",
			cond: rules.Condition{Kind: rules.CondEdgeAny},
			want: "edge(*)",
		},
		{
			name: "edge property",
			cond: rules.Condition{Kind: rules.CondEdgeProperty, Arg: "tags"},
			want: `edge("tags")`,
		},
		{
			name: "edge with filters",
			cond: rules.Condition{
				Kind: rules.CondEdgeAny,
				Filters: []rules.Filter{
					{Substr: "work"},
					{Substr: "archive", Not: true},
				},
			},
			want: `edge(*).includes("work").not_includes("archive")`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatCondition(tt.cond); got != tt.want {
				t.Errorf("formatCondition() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatActions(t *testing.T) {
	if got := formatActions(nil); got != "—" {
		t.Errorf("formatActions(nil) = %q, want em dash placeholder", got)
	}

	actions := []rules.Action{
		{Kind: rules.ActionColor, Arg: "#ff8800"},
		{Kind: rules.ActionSize, Arg: "2"},
	}
	want := `color("#ff8800"), size("2")`
	if got := formatActions(actions); got != want {
		t.Errorf("formatActions() = %q, want %q", got, want)
	}
}

func TestNewRuleListModel(t *testing.T) {
	g := &graph.Graph{
		Nodes: []graph.Node{
			{ID: "Inbox", Label: "Inbox"},
			{ID: "work/Roadmap", Label: "Roadmap", Tags: []string{"project"}},
		},
		Edges: []graph.Edge{
			{From: "work/Roadmap", To: "Inbox", Kind: graph.EdgeKindDefault},
		},
	}

	engine := rules.NewEngine(log.New(io.Discard))
	engine.ParseQuery("tagged(\"project\") => color(\"#ff8800\")\nedge(*) => width(2)\n")

	m := NewRuleListModel(engine, g)
	if len(m.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(m.Rows))
	}

	node := m.Rows[0]
	if node.kind != "node" || node.matches != 1 || node.total != 2 {
		t.Errorf("node row = %+v, want kind=node matches=1 total=2", node)
	}
	edge := m.Rows[1]
	if edge.kind != "edge" || edge.matches != 1 || edge.total != 1 {
		t.Errorf("edge row = %+v, want kind=edge matches=1 total=1", edge)
	}
}

func TestRuleListModelNavigation(t *testing.T) {
	m := RuleListModel{
		Rows:   []ruleRow{{line: 1}, {line: 2}, {line: 3}},
		Height: 15,
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	m = next.(RuleListModel)
	if m.Cursor != 1 {
		t.Errorf("cursor after j = %d, want 1", m.Cursor)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	m = next.(RuleListModel)
	if m.Cursor != 0 {
		t.Errorf("cursor after k = %d, want 0", m.Cursor)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(RuleListModel)
	if m.Cursor != 0 {
		t.Errorf("cursor should not go below 0, got %d", m.Cursor)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Error("q should quit")
	}
}
