package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dlisz/coldrop/internal/output"
	"github.com/dlisz/coldrop/internal/table"
)

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "info <source>",
		Aliases: []string{"i"},
		Short:   "Inspect a table's shape and columns",
		Long: `Load a delimited text table and report its row count, column count,
and per-column statistics (position, name, widest cell, empty cells).

Examples:
  coldrop info prices.csv
  coldrop info prices.csv -o json
  coldrop info prices.csv -o json -q '.column_stats[].name'
  coldrop info prices.csv --fields rows,columns`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			source := args[0]
			comma := DelimiterFromContext(ctx)

			in, closeIn, err := openSource(source)
			if err != nil {
				return err
			}
			tbl, err := table.Read(in, comma)
			cerr := closeIn()
			if err != nil {
				return wrapSourceError(source, err)
			}
			if cerr != nil {
				return cerr
			}

			stats := tbl.Stats()
			format := output.FormatFromContext(ctx)

			// Human formats get a shaped summary; machine formats take the
			// raw stats through the printer.
			human := format == output.FormatText || format == output.FormatTable
			if human && output.QueryFromContext(ctx) == "" && output.FieldsFromContext(ctx) == "" {
				return printStatsText(ctx, source, stats)
			}
			return output.NewPrinter(stdoutFromContext(ctx), format).Print(ctx, stats)
		},
	}

	return cmd
}

func printStatsText(ctx context.Context, source string, stats table.Stats) error {
	w := stdoutFromContext(ctx)

	if _, err := fmt.Fprintf(w, "Source: %s\nRows: %d\nColumns: %d\n\n", source, stats.Rows, stats.Cols); err != nil {
		return err
	}

	tbl := output.Table{Headers: []string{"INDEX", "NAME", "WIDTH", "EMPTY"}}
	for _, c := range stats.ColStat {
		tbl.Rows = append(tbl.Rows, []string{
			strconv.Itoa(c.Index), c.Name, strconv.Itoa(c.MaxWidth), strconv.Itoa(c.Empty),
		})
	}
	return output.NewPrinter(w, output.FormatTable).Print(ctx, tbl)
}
