package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/graphtint/graphtint/pkg/graph"
	"github.com/graphtint/graphtint/pkg/rules"
)

// applyCommand creates the "apply" command.
func (c *CLI) applyCommand() *cobra.Command {
	var (
		graphPath string
		vaultPath string
		output    string
	)

	cmd := &cobra.Command{
		Use:   "apply <rules-file>",
		Short: "Apply a query to a graph and write the styled result",
		Long: `Apply parses a rules file, applies it to a graph, and writes the styled
graph as JSON. The graph comes from a JSON file (--graph, "-" for stdin) or
from scanning a Markdown vault (--vault).

Parse errors in the rules file are reported but do not abort styling;
well-formed rules are still applied.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := c.Logger
			prog := newProgress(logger)

			query, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read rules file: %w", err)
			}
			g, err := loadGraph(withLogger(cmd.Context(), logger), graphPath, vaultPath)
			if err != nil {
				return err
			}

			engine := rules.NewEngine(logger)
			engine.ParseQuery(string(query))
			reportQueryIssues(engine.ParseErrors(), engine.Warnings())

			engine.Apply(g, graph.NewContext(g))

			if err := writeGraph(g, output); err != nil {
				return fmt.Errorf("write styled graph: %w", err)
			}
			if output != "" && output != "-" {
				printFile(output)
				printNextStep("Render it", fmt.Sprintf("%s render -g %s -o graph.svg", appName, output))
			}
			printStats(len(g.Nodes), len(g.Edges), false)
			prog.done(fmt.Sprintf("Applied %d node rules, %d edge rules",
				len(engine.NodeRules()), len(engine.EdgeRules())))
			return nil
		},
	}

	cmd.Flags().StringVarP(&graphPath, "graph", "g", "", "graph JSON file (\"-\" for stdin)")
	cmd.Flags().StringVar(&vaultPath, "vault", "", "Markdown vault directory to scan")
	cmd.Flags().StringVarP(&output, "output", "o", "-", "output file (\"-\" for stdout)")

	return cmd
}
