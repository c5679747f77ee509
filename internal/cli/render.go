package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/graphtint/graphtint/pkg/cache"
	"github.com/graphtint/graphtint/pkg/graph"
	"github.com/graphtint/graphtint/pkg/render"
	"github.com/graphtint/graphtint/pkg/rules"
)

// renderCommand creates the "render" command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		graphPath string
		vaultPath string
		rulesPath string
		output    string
		format    string
		layout    string
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Apply a query and render the graph as DOT or SVG",
		Long: `Render styles a graph and emits a visualization. DOT output can be fed
to external Graphviz tooling; SVG is rendered in-process.

SVG results are cached by the styled graph's content hash, so re-rendering
an unchanged graph with the same query is instant.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := c.Logger
			prog := newProgress(logger)
			ctx := withLogger(cmd.Context(), logger)

			if format != "svg" && format != "dot" {
				return fmt.Errorf("unsupported format %q (want svg or dot)", format)
			}

			g, err := loadGraph(ctx, graphPath, vaultPath)
			if err != nil {
				return err
			}

			if rulesPath != "" {
				query, err := os.ReadFile(rulesPath)
				if err != nil {
					return fmt.Errorf("read rules file: %w", err)
				}
				engine := rules.NewEngine(logger)
				engine.ParseQuery(string(query))
				reportQueryIssues(engine.ParseErrors(), engine.Warnings())
				engine.Apply(g, graph.NewContext(g))
			}

			if format == "dot" {
				if err := writeBytes([]byte(render.ToDOT(g)), output); err != nil {
					return fmt.Errorf("write DOT: %w", err)
				}
				prog.done("Rendered DOT")
				return nil
			}

			store, err := newCache(noCache)
			if err != nil {
				return err
			}
			defer store.Close()
			store = cache.Instrumented(store)

			styled, err := graph.Marshal(g)
			if err != nil {
				return err
			}
			key := cache.NewDefaultKeyer().RenderKey(cache.Hash(styled),
				cache.RenderKeyOpts{Format: format, Layout: layout})

			svg, cached, _ := store.Get(ctx, key)
			if !cached {
				spinner := newSpinnerWithContext(ctx, "Rendering SVG...")
				spinner.Start()
				svg, err = render.SVG(ctx, g, render.Options{Layout: layout})
				spinner.Stop()
				if err != nil {
					return err
				}
				_ = store.Set(ctx, key, svg, 0)
			}

			if err := writeBytes(svg, output); err != nil {
				return fmt.Errorf("write SVG: %w", err)
			}
			if output != "" && output != "-" {
				printFile(output)
			}
			printStats(len(g.Nodes), len(g.Edges), cached)
			prog.done("Rendered SVG")
			return nil
		},
	}

	cmd.Flags().StringVarP(&graphPath, "graph", "g", "", "graph JSON file (\"-\" for stdin)")
	cmd.Flags().StringVar(&vaultPath, "vault", "", "Markdown vault directory to scan")
	cmd.Flags().StringVarP(&rulesPath, "rules", "r", "", "rules file to apply before rendering")
	cmd.Flags().StringVarP(&output, "output", "o", "-", "output file (\"-\" for stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "svg", "output format: svg or dot")
	cmd.Flags().StringVar(&layout, "layout", "", "graphviz layout engine (dot, neato, fdp, ...)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the render cache")

	return cmd
}
