package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/graphtint/graphtint/pkg/graph"
	"github.com/graphtint/graphtint/pkg/rules"
	"github.com/graphtint/graphtint/pkg/vault"
)

// loadGraph reads the input graph from a JSON file ("-" for stdin) or by
// scanning a vault directory. Exactly one source must be given. The scan
// logger comes from the context (see withLogger).
func loadGraph(ctx context.Context, graphPath, vaultPath string) (*graph.Graph, error) {
	switch {
	case graphPath != "" && vaultPath != "":
		return nil, fmt.Errorf("--graph and --vault are mutually exclusive")
	case vaultPath != "":
		return vault.Scan(ctx, vaultPath, vault.Options{Logger: loggerFromContext(ctx)})
	case graphPath == "-":
		return graph.Read(os.Stdin)
	case graphPath != "":
		return graph.ReadFile(graphPath)
	default:
		return nil, fmt.Errorf("either --graph or --vault is required")
	}
}

// writeGraph writes a graph as JSON to a file or stdout ("-" or empty).
func writeGraph(g *graph.Graph, output string) error {
	if output == "" || output == "-" {
		return graph.Write(g, os.Stdout)
	}
	return graph.WriteFile(g, output)
}

// writeBytes writes raw output to a file or stdout ("-" or empty).
func writeBytes(data []byte, output string) error {
	if output == "" || output == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(output, data, 0o644)
}

// reportQueryIssues prints parse errors and warnings collected by the
// engine. Returns the number of parse errors.
func reportQueryIssues(parseErrors []rules.ParseError, warnings []string) int {
	for _, e := range parseErrors {
		printParseError(e)
	}
	for _, w := range warnings {
		printWarning("%s", w)
	}
	return len(parseErrors)
}
