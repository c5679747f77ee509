package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/graphtint/graphtint/pkg/rules"
)

// checkCommand creates the "check" command.
func (c *CLI) checkCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <rules-file>",
		Short: "Lint a rules file and report parse errors",
		Long: `Check parses a rules file without applying it and prints every lex and
parse error with its line and column. Undefined named parameters are
reported as warnings. Exits non-zero when parse errors are found.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read rules file: %w", err)
			}

			engine := rules.NewEngine(c.Logger)
			engine.ParseQuery(string(query))
			count := reportQueryIssues(engine.ParseErrors(), engine.Warnings())
			if count > 0 {
				return fmt.Errorf("%d parse error(s) in %s", count, args[0])
			}

			printSuccess("%s: %d node rule(s), %d edge rule(s)",
				args[0], len(engine.NodeRules()), len(engine.EdgeRules()))
			return nil
		},
	}

	return cmd
}
