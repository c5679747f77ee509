// Package render turns styled graphs into Graphviz DOT and SVG output.
//
// # Overview
//
// Styling (pkg/rules) annotates nodes and edges with colors, shapes, and
// sizes; this package maps those attributes onto Graphviz:
//
//   - node color    → fillcolor
//   - node shape    → a DOT shape (see [ToDOT])
//   - node size     → width/height
//   - edge color    → color, with opacity folded in as an alpha suffix
//   - edge width    → penwidth
//
// Material has no Graphviz equivalent and is ignored here; it survives in
// the JSON output for 3D front ends.
//
// # Usage
//
//	dot := render.ToDOT(g)
//	svg, err := render.SVG(ctx, g, render.Options{Layout: "dot"})
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/graphtint/graphtint/pkg/graph"
)

// Options configures rendering.
type Options struct {
	// Layout selects the Graphviz layout engine ("dot", "neato", "fdp", ...).
	// Empty means "dot".
	Layout string
}

// dotShapes maps the styling shape vocabulary onto Graphviz node shapes.
// The 3D shapes pick the closest 2D stand-in.
var dotShapes = map[string]string{
	"circle":      "circle",
	"box":         "box",
	"sphere":      "doublecircle",
	"cube":        "box3d",
	"cone":        "triangle",
	"cylinder":    "cylinder",
	"torus":       "doublecircle",
	"tetrahedron": "triangle",
	"icosahedron": "polygon",
}

// ToDOT converts a styled graph to Graphviz DOT format.
// Tag pseudo-nodes are drawn dashed to set them apart from notes.
func ToDOT(g *graph.Graph) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=ellipse, style=filled, fillcolor=white, fontsize=14];\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("\n")

	for i := range g.Nodes {
		n := &g.Nodes[i]
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(nodeAttrs(n), ", "))
	}

	buf.WriteString("\n")
	for i := range g.Edges {
		e := &g.Edges[i]
		attrs := edgeAttrs(e)
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.From, e.To, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n *graph.Node) []string {
	attrs := []string{fmt.Sprintf("label=%q", n.DisplayLabel())}
	if n.Color != "" {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", n.Color))
	}
	if shape, ok := dotShapes[n.Shape]; ok {
		attrs = append(attrs, fmt.Sprintf("shape=%s", shape))
	}
	if n.Size != nil {
		d := *n.Size * 0.5
		attrs = append(attrs, fmt.Sprintf("width=%.2f", d), fmt.Sprintf("height=%.2f", d))
	}
	if n.IsTagNode() {
		attrs = append(attrs, "style=\"filled,dashed\"")
	}
	return attrs
}

func edgeAttrs(e *graph.Edge) []string {
	var attrs []string
	if color := edgeColor(e); color != "" {
		attrs = append(attrs, fmt.Sprintf("color=%q", color))
	}
	if e.Width != nil {
		attrs = append(attrs, fmt.Sprintf("penwidth=%.2f", *e.Width))
	}
	if e.IsProperty() {
		attrs = append(attrs, fmt.Sprintf("label=%q", e.Property), "fontsize=10")
	}
	return attrs
}

// edgeColor combines color and opacity into a single Graphviz color value.
// Opacity becomes an alpha suffix on hex colors ("#rrggbbaa"); an opacity
// without a color falls back to translucent black.
func edgeColor(e *graph.Edge) string {
	color := e.Color
	if e.Opacity == nil {
		return color
	}
	if color == "" {
		color = "#000000"
	}
	if !isHex6(color) {
		return color
	}
	o := *e.Opacity
	if o < 0 {
		o = 0
	}
	if o > 1 {
		o = 1
	}
	return fmt.Sprintf("%s%02x", color, int(o*255+0.5))
}

func isHex6(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, c := range s[1:] {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
