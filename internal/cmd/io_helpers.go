package cmd

import (
	"context"
	"io"
	"os"

	"github.com/dlisz/coldrop/internal/iocontext"
)

func stdoutFromContext(ctx context.Context) io.Writer {
	return iocontext.StdoutOrDefault(ctx, os.Stdout)
}

func stderrFromContext(ctx context.Context) io.Writer {
	return iocontext.StderrOrDefault(ctx, os.Stderr)
}

// openSource opens a readable source; "-" means stdin. The returned closer
// is a no-op for stdin.
func openSource(path string) (io.Reader, func() error, error) {
	if path == "-" {
		return os.Stdin, func() error { return nil }, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

// openDest opens a writable destination, creating or truncating it; "-"
// means the context stdout.
func openDest(ctx context.Context, path string) (io.Writer, func() error, error) {
	if path == "-" {
		return stdoutFromContext(ctx), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
