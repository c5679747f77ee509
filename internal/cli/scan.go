package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/graphtint/graphtint/pkg/cache"
	"github.com/graphtint/graphtint/pkg/graph"
	"github.com/graphtint/graphtint/pkg/vault"
)

// scanCommand creates the "scan" command.
func (c *CLI) scanCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "scan <vault-dir>",
		Short: "Extract a graph from a Markdown vault",
		Long: `Scan walks a directory of Markdown notes and writes the extracted graph
as JSON: one node per note, edges for wiki links, tag pseudo-nodes, and
front-matter properties.

Results are cached by a fingerprint of the vault's file metadata, so an
unchanged vault scans instantly on repeat runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := c.Logger
			prog := newProgress(logger)
			ctx := cmd.Context()

			store, err := newCache(noCache)
			if err != nil {
				return err
			}
			defer store.Close()
			store = cache.Instrumented(store)
			keyer := cache.NewDefaultKeyer()

			var key string
			if fp, err := vault.Fingerprint(args[0]); err == nil {
				key = keyer.GraphKey(fp)
			}

			var g *graph.Graph
			cached := false
			if key != "" {
				if data, hit, err := store.Get(ctx, key); err == nil && hit {
					if parsed, err := graph.Unmarshal(data); err == nil {
						g = parsed
						cached = true
					}
				}
			}

			if g == nil {
				g, err = vault.Scan(ctx, args[0], vault.Options{Logger: logger})
				if err != nil {
					return err
				}
				if key != "" {
					if data, err := graph.Marshal(g); err == nil {
						_ = store.Set(ctx, key, data, 0)
					}
				}
			}

			if err := writeGraph(g, output); err != nil {
				return fmt.Errorf("write graph: %w", err)
			}
			if output != "" && output != "-" {
				printFile(output)
				printNextStep("Style it", fmt.Sprintf("%s apply styles.txt -g %s", appName, output))
			}
			printStats(len(g.Nodes), len(g.Edges), cached)
			prog.done(fmt.Sprintf("Scanned %s", args[0]))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "-", "output file (\"-\" for stdout)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the scan cache")

	return cmd
}
