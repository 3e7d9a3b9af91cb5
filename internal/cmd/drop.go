package cmd

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	clierrors "github.com/dlisz/coldrop/internal/errors"
	"github.com/dlisz/coldrop/internal/output"
	"github.com/dlisz/coldrop/internal/table"
	"github.com/dlisz/coldrop/internal/ui"
)

// dropReport is the structured result of a drop run.
type dropReport struct {
	Source        string   `json:"source" yaml:"source"`
	Dest          string   `json:"dest" yaml:"dest"`
	Rows          int      `json:"rows" yaml:"rows"`
	ColumnsBefore int      `json:"columns_before,omitempty" yaml:"columns_before,omitempty"`
	ColumnsAfter  int      `json:"columns_after,omitempty" yaml:"columns_after,omitempty"`
	Dropped       []string `json:"dropped,omitempty" yaml:"dropped,omitempty"`
	Streamed      bool     `json:"streamed,omitempty" yaml:"streamed,omitempty"`
}

func newDropCmd() *cobra.Command {
	var (
		index  int
		count  int
		stream bool
	)

	cmd := &cobra.Command{
		Use:     "drop <source> <dest>",
		Aliases: []string{"d"},
		Short:   "Remove columns from a table by position",
		Long: `Read a delimited text table from <source>, remove columns by position,
and write the result to <dest>. With the default flags the first column is
removed: the output keeps the header row, every data row, and all remaining
columns in their original order, with no index column added.

Use "-" as <source> to read from stdin, or as <dest> to write to stdout.

Examples:
  coldrop drop prices.csv prices-trimmed.csv
  coldrop drop prices.csv trimmed.csv --index 2 --count 3
  coldrop drop big.csv out.csv --stream
  cat in.csv | coldrop drop - -`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			source, dest := args[0], args[1]
			comma := DelimiterFromContext(ctx)

			if index < 0 {
				return clierrors.NewValidationError("--index", "must be non-negative")
			}
			if count < 1 {
				return clierrors.NewValidationError("--count", "must be at least 1")
			}

			report := dropReport{Source: source, Dest: dest, Streamed: stream}

			var err error
			if stream {
				err = runStreamDrop(ctx, &report, comma, index, count)
			} else {
				err = runBufferedDrop(ctx, &report, comma, index, count)
			}
			if err != nil {
				return err
			}

			slog.Debug("drop complete",
				"source", source, "dest", dest,
				"rows", report.Rows, "index", index, "count", count,
				"streamed", stream)

			return printDropReport(ctx, report, count)
		},
	}

	cmd.Flags().IntVar(&index, "index", 0, "0-based position of the first column to drop")
	cmd.Flags().IntVar(&count, "count", 1, "Number of consecutive columns to drop")
	cmd.Flags().BoolVar(&stream, "stream", false, "Process row by row without loading the whole table")

	return cmd
}

// runBufferedDrop loads the whole table, drops the selected columns, and
// writes the result.
func runBufferedDrop(ctx context.Context, report *dropReport, comma rune, index, count int) error {
	in, closeIn, err := openSource(report.Source)
	if err != nil {
		return err
	}
	tbl, err := table.Read(in, comma)
	cerr := closeIn()
	if err != nil {
		return wrapSourceError(report.Source, err)
	}
	if cerr != nil {
		return cerr
	}

	dropped, err := tbl.DropColumns(index, count)
	if err != nil {
		return err
	}

	if report.Dest == "-" {
		if err := dropped.Write(stdoutFromContext(ctx), comma); err != nil {
			return err
		}
	} else if err := dropped.WriteFile(report.Dest, comma); err != nil {
		return err
	}

	report.Rows = dropped.NumRows()
	report.ColumnsBefore = tbl.NumCols()
	report.ColumnsAfter = dropped.NumCols()
	report.Dropped = tbl.Header[index : index+count]
	return nil
}

// runStreamDrop wires source and dest into the constant-memory pipeline.
func runStreamDrop(ctx context.Context, report *dropReport, comma rune, index, count int) error {
	in, closeIn, err := openSource(report.Source)
	if err != nil {
		return err
	}
	defer func() { _ = closeIn() }()

	out, closeOut, err := openDest(ctx, report.Dest)
	if err != nil {
		return err
	}

	rows, err := table.StreamDrop(in, out, comma, index, count)
	if err != nil {
		_ = closeOut()
		return wrapSourceError(report.Source, err)
	}
	if err := closeOut(); err != nil {
		return err
	}

	report.Rows = rows
	return nil
}

// printDropReport emits the confirmation. Text format keeps the single
// confirmation line naming the destination; machine formats get the full
// report through the output printer. Writing data to stdout moves the
// confirmation to stderr so the table stays parseable.
func printDropReport(ctx context.Context, report dropReport, count int) error {
	if QuietFromContext(ctx) {
		return nil
	}

	format := output.FormatFromContext(ctx)
	if format == output.FormatText {
		msg := fmt.Sprintf("Dropped %d column(s); wrote %d row(s) to %s", count, report.Rows, report.Dest)
		if report.Dest == "-" {
			ui.FromContext(ctx).Success("%s", msg)
			return nil
		}
		_, err := fmt.Fprintln(stdoutFromContext(ctx), msg)
		return err
	}

	w := stdoutFromContext(ctx)
	if report.Dest == "-" {
		w = stderrFromContext(ctx)
	}
	return output.NewPrinter(w, format).Print(ctx, report)
}

// wrapSourceError attaches the source path to csv parse failures, which
// otherwise lack any location.
func wrapSourceError(source string, err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &clierrors.ParseError{Path: source, Line: pe.Line, Err: pe.Err}
	}
	return err
}
