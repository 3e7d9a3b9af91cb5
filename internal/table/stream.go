package table

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"

	clierrors "github.com/dlisz/coldrop/internal/errors"
)

// streamBufSize is the buffer size for streaming reads and writes.
const streamBufSize = 4 << 20 // 4 MiB

// streamFlushEvery bounds how many rows accumulate in the csv writer before
// an explicit flush.
const streamFlushEvery = 100_000

// StreamDrop copies a delimited-text table from r to w, removing count
// columns starting at index start from every record including the header.
// Unlike DropColumns it never holds the table in memory: rows flow through
// one at a time with buffered I/O, so memory use is constant in the row
// count. Returns the number of data rows written.
func StreamDrop(r io.Reader, w io.Writer, comma rune, start, count int) (int, error) {
	br := bufio.NewReaderSize(r, streamBufSize)
	bw := bufio.NewWriterSize(w, streamBufSize)

	reader := csv.NewReader(br)
	reader.Comma = comma
	reader.ReuseRecord = true

	writer := csv.NewWriter(bw)
	writer.Comma = comma

	header, err := reader.Read()
	if err == io.EOF {
		return 0, clierrors.NewUserError(
			"empty input: expected a header row",
			"The first line of the input must name the columns",
		)
	}
	if err != nil {
		return 0, fmt.Errorf("read header: %w", err)
	}
	if err := validateDropRange(len(header), start, count); err != nil {
		return 0, err
	}
	if err := writer.Write(dropFields(header, start, count)); err != nil {
		return 0, fmt.Errorf("write header: %w", err)
	}

	rows := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return rows, fmt.Errorf("read row %d: %w", rows+1, err)
		}

		if err := writer.Write(dropFields(row, start, count)); err != nil {
			return rows, fmt.Errorf("write row %d: %w", rows+1, err)
		}
		rows++

		if rows%streamFlushEvery == 0 {
			writer.Flush()
			if err := writer.Error(); err != nil {
				return rows, fmt.Errorf("flush: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return rows, err
	}
	return rows, bw.Flush()
}
