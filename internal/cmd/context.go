package cmd

import (
	"context"

	"github.com/dlisz/coldrop/internal/config"
)

type (
	errorFormatKey struct{}
	configKey      struct{}
	quietKey       struct{}
	delimiterKey   struct{}
)

// WithErrorFormat stores the error format in the context.
func WithErrorFormat(ctx context.Context, format string) context.Context {
	return context.WithValue(ctx, errorFormatKey{}, format)
}

// ErrorFormatFromContext retrieves the error format from context.
func ErrorFormatFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(errorFormatKey{}).(string); ok {
		return v
	}
	return ""
}

// WithConfig stores loaded CLI config in context for downstream helpers.
func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// ConfigFromContext retrieves CLI config from context.
func ConfigFromContext(ctx context.Context) *config.Config {
	if v, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return v
	}
	return nil
}

// WithQuiet stores the quiet flag in context.
func WithQuiet(ctx context.Context, quiet bool) context.Context {
	return context.WithValue(ctx, quietKey{}, quiet)
}

// QuietFromContext reports whether confirmation output is suppressed.
func QuietFromContext(ctx context.Context) bool {
	if v, ok := ctx.Value(quietKey{}).(bool); ok {
		return v
	}
	return false
}

// WithDelimiter stores the resolved field delimiter in context.
func WithDelimiter(ctx context.Context, comma rune) context.Context {
	return context.WithValue(ctx, delimiterKey{}, comma)
}

// DelimiterFromContext retrieves the field delimiter from context,
// defaulting to a comma.
func DelimiterFromContext(ctx context.Context) rune {
	if v, ok := ctx.Value(delimiterKey{}).(rune); ok {
		return v
	}
	return ','
}
