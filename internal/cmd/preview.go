package cmd

import (
	"github.com/spf13/cobra"

	clierrors "github.com/dlisz/coldrop/internal/errors"
	"github.com/dlisz/coldrop/internal/output"
	"github.com/dlisz/coldrop/internal/table"
)

func newPreviewCmd() *cobra.Command {
	var numRows int

	cmd := &cobra.Command{
		Use:     "preview <source>",
		Aliases: []string{"p", "head"},
		Short:   "Show the first rows of a table",
		Long: `Load a delimited text table and print its first rows as an aligned
table. Machine formats emit one object per row keyed by column name.

Examples:
  coldrop preview prices.csv
  coldrop preview prices.csv -n 3
  coldrop preview prices.csv -o ndjson`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			source := args[0]
			comma := DelimiterFromContext(ctx)

			if numRows < 1 {
				return clierrors.NewValidationError("--rows", "must be at least 1")
			}

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

			rows := tbl.Rows
			if len(rows) > numRows {
				rows = rows[:numRows]
			}

			format := output.FormatFromContext(ctx)
			w := stdoutFromContext(ctx)

			// Human formats render the rows as an aligned table unless a
			// filter or projection asks for structured handling.
			human := format == output.FormatText || format == output.FormatTable
			if human && output.QueryFromContext(ctx) == "" && output.FieldsFromContext(ctx) == "" {
				printer := output.NewPrinter(w, output.FormatTable)
				return printer.Print(ctx, output.Table{Headers: tbl.Header, Rows: rows})
			}
			return output.NewPrinter(w, format).Print(ctx, rowsAsRecords(tbl.Header, rows))
		},
	}

	cmd.Flags().IntVarP(&numRows, "rows", "n", 10, "Number of rows to show")

	return cmd
}

// rowsAsRecords converts positional rows into objects keyed by column name
// for machine-readable preview output.
func rowsAsRecords(header []string, rows [][]string) []map[string]string {
	records := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		rec := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(row) {
				rec[name] = row[i]
			}
		}
		records = append(records, rec)
	}
	return records
}
