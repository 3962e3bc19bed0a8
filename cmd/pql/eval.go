package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kodegenix/pqlgo/pkg/eval"
	"github.com/kodegenix/pqlgo/pkg/fileinfo"
	"github.com/kodegenix/pqlgo/pkg/parser"
	"github.com/kodegenix/pqlgo/pkg/tree"
	"github.com/kodegenix/pqlgo/pkg/value"
)

func evalCmd() *cobra.Command {
	var (
		format    string
		pretty    bool
		nocolor   bool
		nodeCount bool
	)

	cmd := &cobra.Command{
		Use:   "eval <query> [file|-]",
		Short: "Evaluate a PQL query against a document",
		Long: `Evaluate a PQL query against a JSON/YAML/TOML document.

Examples:
  pql eval '$.items[*]' doc.json
  pql eval '.name.upper()' doc.yaml
  pql eval '$.items ^= "foo"' - < doc.json`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			file := "-"
			if len(args) == 2 {
				file = args[1]
			}

			return runEval(args[0], file, fileinfo.ParseFileFormat(format), pretty, nocolor, nodeCount, cobraCmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "input format (json, yaml, toml); inferred from extension if omitted")
	cmd.Flags().BoolVar(&pretty, "pretty", true, "pretty-print JSON output")
	cmd.Flags().BoolVar(&nocolor, "no-color", false, "disable colored output")
	cmd.Flags().BoolVarP(&nodeCount, "count", "c", false, "print only the number of matched nodes")

	return cmd
}

func runEval(query, file string, format fileinfo.FileFormat, pretty, nocolor, nodeCount bool, out io.Writer) error {
	if nocolor {
		color.NoColor = true //nolint:reassign // intentional override of library global
	}

	root, err := loadDocument(file, format)
	if err != nil {
		return fmt.Errorf("failed to load document: %w", err)
	}

	expr, err := parser.Parse(query)
	if err != nil {
		return fmt.Errorf("failed to parse query: %w", err)
	}

	set, err := newEvaluator().Apply(expr, eval.New(root), eval.CtxExpr)
	if err != nil {
		return fmt.Errorf("evaluation error: %w", err)
	}

	nodes := set.Slice()

	if nodeCount {
		fmt.Fprintln(out, len(nodes))

		return nil
	}

	for _, n := range nodes {
		if err := printNode(n, pretty, out); err != nil {
			return err
		}
	}

	return nil
}

func printNode(n *tree.Node, pretty bool, out io.Writer) error {
	var data []byte

	var err error

	if pretty {
		data, err = json.MarshalIndent(n, "", "  ")
	} else {
		data, err = json.Marshal(n)
	}

	if err != nil {
		return fmt.Errorf("failed to render result: %w", err)
	}

	fmt.Fprintln(out, colorForKind(n.Kind()).Sprint(string(data)))

	return nil
}

// colorForKind maps a node's value kind to a terminal color, so `pql
// eval` output is easier to scan at a glance when attached to a TTY.
func colorForKind(k value.Kind) *color.Color {
	switch k {
	case value.String:
		return color.New(color.FgGreen)
	case value.Int, value.Float:
		return color.New(color.FgYellow)
	case value.Bool:
		return color.New(color.FgMagenta)
	case value.Null:
		return color.New(color.FgHiBlack)
	default: // Array, Object, Binary
		return color.New(color.Reset)
	}
}
