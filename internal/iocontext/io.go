// Package iocontext carries stdout/stderr writers in a context so commands
// can be exercised in tests without touching the process streams.
package iocontext

import (
	"context"
	"io"
)

type (
	stdoutKey struct{}
	stderrKey struct{}
)

// WithIO injects stdout and stderr writers into ctx.
func WithIO(ctx context.Context, stdout, stderr io.Writer) context.Context {
	ctx = context.WithValue(ctx, stdoutKey{}, stdout)
	return context.WithValue(ctx, stderrKey{}, stderr)
}

// Stdout returns the stdout writer from ctx, or nil if not set.
func Stdout(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(stdoutKey{}).(io.Writer); ok {
		return w
	}
	return nil
}

// Stderr returns the stderr writer from ctx, or nil if not set.
func Stderr(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(stderrKey{}).(io.Writer); ok {
		return w
	}
	return nil
}

// StdoutOrDefault returns stdout from ctx, or def when none is set.
func StdoutOrDefault(ctx context.Context, def io.Writer) io.Writer {
	if w := Stdout(ctx); w != nil {
		return w
	}
	return def
}

// StderrOrDefault returns stderr from ctx, or def when none is set.
func StderrOrDefault(ctx context.Context, def io.Writer) io.Writer {
	if w := Stderr(ctx); w != nil {
		return w
	}
	return def
}
