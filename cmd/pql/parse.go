package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kodegenix/pqlgo/pkg/parser"
	"github.com/kodegenix/pqlgo/pkg/pqlerr"
)

func parseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <query>",
		Short: "Parse a PQL query and print its expression tree",
		Long: `Parse a PQL query expression and print its internal representation,
without evaluating it against any document. Useful for checking grammar
and precedence without a document on hand.

Examples:
  pql parse '$.items[*].name'
  pql parse '1 + 2 * 3'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return runParse(args[0], cobraCmd.OutOrStdout())
		},
	}

	return cmd
}

func runParse(query string, out io.Writer) error {
	e, err := parser.Parse(query)
	if err != nil {
		var diag *pqlerr.Diag
		if errors.As(err, &diag) {
			return fmt.Errorf("parse error: %w", diag)
		}

		return err
	}

	fmt.Fprintln(out, e.String())

	return nil
}
