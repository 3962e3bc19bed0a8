package main

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/kodegenix/pqlgo/pkg/eval"
	"github.com/kodegenix/pqlgo/pkg/fileinfo"
	"github.com/kodegenix/pqlgo/pkg/opath"
	"github.com/kodegenix/pqlgo/pkg/parser"
	"github.com/kodegenix/pqlgo/pkg/tree"
)

// pathCacheEntries bounds the per-invocation canonical-path cache; a CLI
// run evaluates one query over one document, so this only needs to cover
// one result set's worth of distinct nodes.
const pathCacheEntries = 4096

func pathCmd() *cobra.Command {
	var (
		format string
		plain  bool
		stats  bool
	)

	cmd := &cobra.Command{
		Use:   "path <query> [file|-]",
		Short: "List the canonical paths of a query's matched nodes",
		Long: `Evaluate a PQL query and print the canonical "$.foo[0]" path of
every matched node, alongside a preview of its value.

Examples:
  pql path '$.items[*]' doc.json
  pql path '$.**.name' doc.yaml`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			file := "-"
			if len(args) == 2 {
				file = args[1]
			}

			return runPath(args[0], file, fileinfo.ParseFileFormat(format), plain, stats, cobraCmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "input format (json, yaml, toml); inferred from extension if omitted")
	cmd.Flags().BoolVar(&plain, "plain", false, "print one path per line with no table formatting")
	cmd.Flags().BoolVar(&stats, "stats", false, "print document size and path-cache hit rate after the results")

	return cmd
}

func runPath(query, file string, format fileinfo.FileFormat, plain, stats bool, out io.Writer) error {
	root, size, err := loadDocumentWithSize(file, format)
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
	paths := opath.NewCachedPathSet(pathCacheEntries)

	if plain {
		for _, n := range nodes {
			fmt.Fprintln(out, paths.Path(n))
		}
	} else {
		tbl := table.NewWriter()
		tbl.SetOutputMirror(out)
		tbl.SetStyle(table.StyleLight)
		tbl.AppendHeader(table.Row{"path", "kind", "preview"})

		for _, n := range nodes {
			tbl.AppendRow(table.Row{paths.Path(n), n.Kind().String(), preview(n)})
		}

		tbl.AppendFooter(table.Row{"", "", fmt.Sprintf("%d matched", len(nodes))})
		tbl.Render()
	}

	if stats {
		cs := paths.CacheStats()
		fmt.Fprintf(out, "document: %s, path cache: %d entries, %.0f%% hit rate\n",
			humanize.Bytes(uint64(size)), cs.Entries, cs.HitRate()*100) //nolint:gosec // size is a non-negative byte count
	}

	return nil
}

const previewMaxLen = 64

// preview renders a short, single-line approximation of n's value for
// the path table's rightmost column. It truncates rather than failing on
// a marshal error, since the table exists purely for eyeballing results.
func preview(n *tree.Node) string {
	data, err := n.MarshalJSON()
	if err != nil {
		return "<unprintable>"
	}

	s := string(data)
	if len(s) > previewMaxLen {
		return s[:previewMaxLen] + "..."
	}

	return s
}
