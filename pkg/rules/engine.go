// Package rules implements the declarative styling language for graphs.
//
// A query is a newline-delimited list of rules of the form
// `condition(s) => action(s)` plus optional named-parameter definitions
// (`:name = action(s)`). Rules are evaluated against every node and edge of
// a graph to decide color, shape, material, size, width, and opacity.
//
// # Semantics
//
//   - Comma-separated conditions are OR-combined: the rule matches if any
//     condition matches.
//   - Comma-separated actions are all applied, in order.
//   - Rules apply in declaration order and later rules overwrite earlier
//     ones per attribute ("last rule wins"). This is the sole
//     conflict-resolution mechanism.
//   - A rule is an edge rule iff every condition is an edge condition;
//     mixing edge and node conditions in one rule is a parse error.
//
// # Error Handling
//
// Lexing and parsing errors are collected, never thrown: [Engine.ParseQuery]
// always succeeds and leaves the engine with whatever rules could be parsed.
// Unknown named-parameter references degrade to empty action lists with a
// warning. Invalid action values (bad enum, malformed number) are silent
// no-ops at apply time.
//
// # Usage
//
//	engine := rules.NewEngine(logger)
//	engine.ParseQuery(`tagged("project") => color("#f80"), size(2)`)
//	if errs := engine.ParseErrors(); len(errs) > 0 {
//	    // surface to the user; the engine still holds the valid rules
//	}
//	ctx := graph.NewContext(g)
//	engine.Apply(g, ctx)
package rules

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/graphtint/graphtint/pkg/graph"
	"github.com/graphtint/graphtint/pkg/observability"
)

// =============================================================================
// Rule
// =============================================================================

// Rule pairs an OR-combined condition list with an ordered action list.
// Line is the 1-based source line of the rule, kept for diagnostics.
type Rule struct {
	Conditions []Condition
	Actions    []Action
	ParamRef   string // named parameter the action list came from, "" if inline
	Line       int
}

// MatchesNode returns true if any condition matches the node.
func (r Rule) MatchesNode(n *graph.Node, ctx *graph.Context) bool {
	for _, c := range r.Conditions {
		if c.MatchesNode(n, ctx) {
			return true
		}
	}
	return false
}

// MatchesEdge returns true if any condition matches the edge.
func (r Rule) MatchesEdge(e *graph.Edge) bool {
	for _, c := range r.Conditions {
		if c.MatchesEdge(e) {
			return true
		}
	}
	return false
}

// IsEdgeRule returns true if every condition is an edge condition.
func (r Rule) IsEdgeRule() bool {
	for _, c := range r.Conditions {
		if !c.IsEdge() {
			return false
		}
	}
	return len(r.Conditions) > 0
}

// =============================================================================
// Engine
// =============================================================================

// Engine is the rule-language facade: it parses query text into node and
// edge rule lists and applies them to caller-owned graphs in place.
//
// All state is instance-scoped and replaced wholesale by each ParseQuery
// call, so separate engines can parse different query texts concurrently.
// A single engine is not safe for concurrent use.
type Engine struct {
	nodeRules   []Rule
	edgeRules   []Rule
	params      map[string][]Action
	parseErrors []ParseError
	warnings    []string
	logger      *log.Logger
}

// NewEngine creates an engine. A nil logger discards warnings.
func NewEngine(logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Engine{logger: logger}
}

// ParseQuery tokenizes, parses, and extracts the query text, replacing any
// previously held rule set. It never returns an error: malformed input
// leaves a partial (possibly empty) rule set and the collected errors are
// available from [Engine.ParseErrors].
func (e *Engine) ParseQuery(text string) {
	e.parseText(text)

	for _, w := range e.warnings {
		e.logger.Warn(w)
	}
	observability.Engine().OnParse(len(e.nodeRules), len(e.edgeRules), len(e.parseErrors))
}

// parseText runs the lex, parse, and extract passes, replacing the engine's
// rule set. No logging and no observability hooks.
func (e *Engine) parseText(text string) {
	e.nodeRules = nil
	e.edgeRules = nil
	e.params = make(map[string][]Action)
	e.parseErrors = nil
	e.warnings = nil

	tokens, lexErrs := Lex(text)
	e.parseErrors = append(e.parseErrors, lexErrs...)

	stmts, parseErrs := parse(tokens)
	e.parseErrors = append(e.parseErrors, parseErrs...)

	e.extract(stmts)
}

// Check runs tokenizing and parsing on a throwaway engine and returns the
// collected errors. It has no side effects: nothing is logged and no
// observability hooks fire. Named-parameter resolution warnings are not
// errors and do not appear here.
func Check(text string) []ParseError {
	e := &Engine{}
	e.parseText(text)
	return e.parseErrors
}

// ParseErrors returns the lexing and grammar errors from the last parse.
func (e *Engine) ParseErrors() []ParseError {
	return e.parseErrors
}

// Warnings returns the non-fatal warnings from the last parse, such as
// references to undefined named parameters.
func (e *Engine) Warnings() []string {
	return e.warnings
}

// NodeRules returns the node rules in declaration order.
func (e *Engine) NodeRules() []Rule { return e.nodeRules }

// EdgeRules returns the edge rules in declaration order.
func (e *Engine) EdgeRules() []Rule { return e.edgeRules }

// =============================================================================
// Rule Extraction
// =============================================================================

// extract walks the parsed statements in two passes: named-parameter
// definitions first, then rules in source order. Doing definitions first
// means a rule may reference a parameter defined later in the text.
func (e *Engine) extract(stmts []statement) {
	for _, s := range stmts {
		if s.isParamDef() {
			e.params[s.paramName] = s.actions
		}
	}

	for _, s := range stmts {
		if s.isParamDef() {
			continue
		}

		rule := Rule{Conditions: s.conditions, Actions: s.actions, ParamRef: s.paramRef, Line: s.line}
		if s.paramRef != "" {
			actions, ok := e.params[s.paramRef]
			if !ok {
				e.warnings = append(e.warnings, "unknown named parameter :"+s.paramRef)
			}
			// Unknown references resolve to zero actions: the rule still
			// registers but changes nothing.
			rule.Actions = actions
		}

		edge, node := 0, 0
		for _, c := range rule.Conditions {
			if c.IsEdge() {
				edge++
			} else {
				node++
			}
		}
		switch {
		case edge > 0 && node > 0:
			e.parseErrors = append(e.parseErrors,
				errAt(s.line, s.col, "edge conditions cannot be combined with node conditions in one rule"))
		case edge > 0:
			e.edgeRules = append(e.edgeRules, rule)
		default:
			e.nodeRules = append(e.nodeRules, rule)
		}
	}
}

// =============================================================================
// Rule Application
// =============================================================================

// ApplyNodeRules applies the node rules to every node, in declaration order,
// mutating style attributes in place. Applying the same rule set to the same
// starting attributes is idempotent.
func (e *Engine) ApplyNodeRules(nodes []graph.Node, ctx *graph.Context) {
	start := time.Now()
	matched := 0
	for i := range nodes {
		n := &nodes[i]
		for _, r := range e.nodeRules {
			if r.MatchesNode(n, ctx) {
				matched++
				for _, a := range r.Actions {
					a.ApplyToNode(n)
				}
			}
		}
	}
	observability.Engine().OnApply("node", len(nodes), matched, time.Since(start))
}

// ApplyEdgeRules applies the edge rules to every edge, in declaration order,
// mutating style attributes in place.
func (e *Engine) ApplyEdgeRules(edges []graph.Edge) {
	start := time.Now()
	matched := 0
	for i := range edges {
		ed := &edges[i]
		for _, r := range e.edgeRules {
			if r.MatchesEdge(ed) {
				matched++
				for _, a := range r.Actions {
					a.ApplyToEdge(ed)
				}
			}
		}
	}
	observability.Engine().OnApply("edge", len(edges), matched, time.Since(start))
}

// Apply runs both rule passes over a graph using the given context.
func (e *Engine) Apply(g *graph.Graph, ctx *graph.Context) {
	e.ApplyNodeRules(g.Nodes, ctx)
	e.ApplyEdgeRules(g.Edges)
}
