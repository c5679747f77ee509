package cli

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/graphtint/graphtint/pkg/graph"
	"github.com/graphtint/graphtint/pkg/rules"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// tuiCommand creates the "tui" command.
func (c *CLI) tuiCommand() *cobra.Command {
	var (
		graphPath string
		vaultPath string
	)

	cmd := &cobra.Command{
		Use:   "tui <rules-file>",
		Short: "Inspect rules interactively against a graph",
		Long: `Tui parses a rules file, evaluates every rule against a graph, and shows
an interactive list with per-rule match counts. Useful for spotting rules
that match nothing or everything.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read rules file: %w", err)
			}
			g, err := loadGraph(withLogger(cmd.Context(), c.Logger), graphPath, vaultPath)
			if err != nil {
				return err
			}

			engine := rules.NewEngine(c.Logger)
			engine.ParseQuery(string(query))
			reportQueryIssues(engine.ParseErrors(), engine.Warnings())

			model := NewRuleListModel(engine, g)
			_, err = tea.NewProgram(model).Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&graphPath, "graph", "g", "", "graph JSON file")
	cmd.Flags().StringVar(&vaultPath, "vault", "", "Markdown vault directory to scan")

	return cmd
}

// =============================================================================
// RuleListModel - Interactive rule inspection
// =============================================================================

// ruleRow is one rule with its evaluation stats against the loaded graph.
type ruleRow struct {
	line       int
	kind       string // "node" or "edge"
	conditions string
	actions    string
	matches    int
	total      int
}

// RuleListModel is the bubbletea model for the rule inspector.
type RuleListModel struct {
	Rows   []ruleRow
	Cursor int
	Height int
	Offset int
}

// NewRuleListModel evaluates every rule against the graph and builds the
// inspector model.
func NewRuleListModel(engine *rules.Engine, g *graph.Graph) RuleListModel {
	ctx := graph.NewContext(g)
	var rows []ruleRow

	for _, r := range engine.NodeRules() {
		matches := 0
		for i := range g.Nodes {
			if r.MatchesNode(&g.Nodes[i], ctx) {
				matches++
			}
		}
		rows = append(rows, ruleRow{
			line:       r.Line,
			kind:       "node",
			conditions: formatConditions(r.Conditions),
			actions:    formatActions(r.Actions),
			matches:    matches,
			total:      len(g.Nodes),
		})
	}
	for _, r := range engine.EdgeRules() {
		matches := 0
		for i := range g.Edges {
			if r.MatchesEdge(&g.Edges[i]) {
				matches++
			}
		}
		rows = append(rows, ruleRow{
			line:       r.Line,
			kind:       "edge",
			conditions: formatConditions(r.Conditions),
			actions:    formatActions(r.Actions),
			matches:    matches,
			total:      len(g.Edges),
		})
	}

	return RuleListModel{Rows: rows, Height: 15}
}

func (m RuleListModel) Init() tea.Cmd {
	return nil
}

func (m RuleListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m RuleListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Rules"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	if len(m.Rows) == 0 {
		b.WriteString(listDimStyle.Render("  no rules parsed"))
		return b.String()
	}

	end := m.Offset + m.Height
	if end > len(m.Rows) {
		end = len(m.Rows)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := m.Rows[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor,
			fmt.Sprintf("%d", r.line),
			r.kind,
			r.conditions,
			r.actions,
			fmt.Sprintf("%d/%d", r.matches, r.total),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Line", "Kind", "Conditions", "Actions", "Matches").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			actualIdx := m.Offset + row
			if actualIdx >= len(m.Rows) {
				return lipgloss.NewStyle()
			}
			r := m.Rows[actualIdx]

			base := lipgloss.NewStyle()
			if actualIdx == m.Cursor {
				return listSelectedStyle
			}
			if r.matches == 0 {
				return base.Foreground(colorDim)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))))

	return b.String()
}

// =============================================================================
// Rule Formatting
// =============================================================================

// formatConditions renders a rule's condition list back into query syntax.
func formatConditions(conds []rules.Condition) string {
	parts := make([]string, len(conds))
	for i, c := range conds {
		parts[i] = formatCondition(c)
	}
	return strings.Join(parts, ", ")
}

func formatCondition(c rules.Condition) string {
	var s string
	switch c.Kind {
	case rules.CondDefault:
		s = "default"
	case rules.CondOrphan:
		s = "orphan"
	case rules.CondHasIncoming:
		s = "has_incoming_links"
	case rules.CondHasOutgoing:
		s = "has_outgoing_links"
	case rules.CondNodeName:
		s = fmt.Sprintf("%q", c.Arg)
	case rules.CondEdgeDefault:
		s = "edge(default)"
	case rules.CondEdgeAny:
		s = "edge(*)"
	case rules.CondEdgeProperty:
		s = fmt.Sprintf("edge(%q)", c.Arg)
	default:
		s = fmt.Sprintf("%s(%q)", c.Kind, c.Arg)
	}
	for _, f := range c.Filters {
		name := "includes"
		if f.Not {
			name = "not_includes"
		}
		s += fmt.Sprintf(".%s(%q)", name, f.Substr)
	}
	return s
}

// formatActions renders a rule's action list back into query syntax.
func formatActions(actions []rules.Action) string {
	if len(actions) == 0 {
		return "—"
	}
	parts := make([]string, len(actions))
	for i, a := range actions {
		parts[i] = fmt.Sprintf("%s(%q)", a.Kind, a.Arg)
	}
	return strings.Join(parts, ", ")
}
