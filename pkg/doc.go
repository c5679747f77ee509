// Package pkg provides the core libraries for Graphtint graph styling.
//
// # Overview
//
// Graphtint applies declarative styling rules to note graphs. A graph is
// extracted from a Markdown vault (or loaded from JSON), a rule query is
// parsed and evaluated against it, and the styled graph is rendered or
// served over HTTP. The pkg directory is organized by concern:
//
//  1. [graph] - Graph model (nodes, edges, serialization, lookup context)
//  2. [rules] - The rule language (lexer, parser, conditions, actions, engine)
//  3. [vault] - Markdown vault scanning (front matter, wiki links, tags)
//  4. [render] - Graphviz DOT and SVG output
//  5. [cache] - Content-addressed caching (file, Redis, null backends)
//  6. [snapshot] - Styled-graph snapshots (memory, MongoDB backends)
//  7. [errors] - Structured errors with codes and HTTP status mapping
//  8. [observability] - Pluggable hooks for engine, cache, and server events
//
// # Quick Start
//
// Scan a vault, style it, and render SVG:
//
//	g, _ := vault.Scan(ctx, "/path/to/vault", vault.Options{})
//
//	engine := rules.NewEngine(logger)
//	engine.ParseQuery(`tagged("project") => color("#ff8800")`)
//	engine.Apply(g, graph.NewContext(g))
//
//	svg, _ := render.SVG(ctx, g, render.Options{})
//
// # The Rule Language
//
// A query is a sequence of rules, one per line, each of the form
// "condition(s) => action(s)". Comma-separated conditions are ORed;
// actions apply in order. Later rules overwrite earlier ones:
//
//	default => color("#888888")
//	tagged("project"), "Roadmap" => color("#ff8800"), shape("box")
//	edge("tags") => color("#33aa33"), opacity(0.4)
//
// Parse errors are collected with positions, never thrown; see [rules].
//
// [graph]: https://pkg.go.dev/github.com/graphtint/graphtint/pkg/graph
// [rules]: https://pkg.go.dev/github.com/graphtint/graphtint/pkg/rules
// [vault]: https://pkg.go.dev/github.com/graphtint/graphtint/pkg/vault
// [render]: https://pkg.go.dev/github.com/graphtint/graphtint/pkg/render
// [cache]: https://pkg.go.dev/github.com/graphtint/graphtint/pkg/cache
// [snapshot]: https://pkg.go.dev/github.com/graphtint/graphtint/pkg/snapshot
// [errors]: https://pkg.go.dev/github.com/graphtint/graphtint/pkg/errors
// [observability]: https://pkg.go.dev/github.com/graphtint/graphtint/pkg/observability
package pkg
