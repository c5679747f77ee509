package rules

import (
	"strconv"
	"strings"

	"github.com/graphtint/graphtint/pkg/graph"
)

// =============================================================================
// Action - Closed Variant Set
// =============================================================================

// ActionKind enumerates the style mutations a rule can apply.
// ActionUnknown is retained through parsing so that unrecognized action
// identifiers become silent no-ops at apply time, never parse errors.
type ActionKind int

const (
	ActionUnknown ActionKind = iota
	ActionColor
	ActionShape
	ActionMaterial
	ActionSize
	ActionWidth
	ActionOpacity
)

var actionKinds = map[string]ActionKind{
	"color":    ActionColor,
	"shape":    ActionShape,
	"material": ActionMaterial,
	"size":     ActionSize,
	"width":    ActionWidth,
	"opacity":  ActionOpacity,
}

// Size values are clamped to this range at apply time.
const (
	MinSize = 0.1
	MaxSize = 10
)

// ValidShapes is the closed set of node shapes. Shape actions with a value
// outside this set leave the attribute untouched.
var ValidShapes = map[string]bool{
	"circle":      true,
	"box":         true,
	"sphere":      true,
	"cube":        true,
	"cone":        true,
	"cylinder":    true,
	"torus":       true,
	"tetrahedron": true,
	"icosahedron": true,
}

// ValidMaterials is the closed set of node materials.
var ValidMaterials = map[string]bool{
	"basic":    true,
	"lambert":  true,
	"phong":    true,
	"standard": true,
	"toon":     true,
}

// Action is a single style mutation. Arg carries the raw argument text;
// numeric interpretation happens at apply time so that malformed values can
// degrade to no-ops instead of parse errors.
type Action struct {
	Kind ActionKind
	Arg  string
}

// actionKind maps an action identifier to its kind, case-insensitively.
// Unrecognized identifiers map to ActionUnknown.
func actionKind(name string) ActionKind {
	return actionKinds[strings.ToLower(name)]
}

func (k ActionKind) String() string {
	for name, kind := range actionKinds {
		if kind == k {
			return name
		}
	}
	return "unknown"
}

// =============================================================================
// Node Application
// =============================================================================

// ApplyToNode applies the action to a node, overwriting the attribute.
// Invalid shape/material values and malformed numbers leave the attribute
// untouched; they represent "unset" rather than "broken".
func (a Action) ApplyToNode(n *graph.Node) {
	switch a.Kind {
	case ActionColor:
		n.Color = a.Arg
	case ActionShape:
		if ValidShapes[strings.ToLower(a.Arg)] {
			n.Shape = strings.ToLower(a.Arg)
		}
	case ActionMaterial:
		if ValidMaterials[strings.ToLower(a.Arg)] {
			n.Material = strings.ToLower(a.Arg)
		}
	case ActionSize:
		if v, ok := parseNumber(a.Arg); ok {
			v = min(max(v, MinSize), MaxSize)
			n.Size = &v
		}
	case ActionWidth, ActionOpacity, ActionUnknown:
		// Edge-only or unrecognized: no-op on nodes.
	}
}

// =============================================================================
// Edge Application
// =============================================================================

// ApplyToEdge applies the action to an edge, overwriting the attribute.
func (a Action) ApplyToEdge(e *graph.Edge) {
	switch a.Kind {
	case ActionColor:
		e.Color = a.Arg
	case ActionWidth:
		if v, ok := parseNumber(a.Arg); ok {
			e.Width = &v
		}
	case ActionOpacity:
		if v, ok := parseNumber(a.Arg); ok {
			e.Opacity = &v
		}
	case ActionShape, ActionMaterial, ActionSize, ActionUnknown:
		// Node-only or unrecognized: no-op on edges.
	}
}

func parseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
