package output

import "context"

type (
	formatKey struct{}
	queryKey  struct{}
	fieldsKey struct{}
)

// WithFormat stores the output format in ctx.
func WithFormat(ctx context.Context, format Format) context.Context {
	return context.WithValue(ctx, formatKey{}, format)
}

// FormatFromContext retrieves the output format from ctx, defaulting to text.
func FormatFromContext(ctx context.Context) Format {
	if v, ok := ctx.Value(formatKey{}).(Format); ok {
		return v
	}
	return FormatText
}

// WithQuery stores a jq filter expression in ctx.
func WithQuery(ctx context.Context, query string) context.Context {
	return context.WithValue(ctx, queryKey{}, query)
}

// QueryFromContext retrieves the jq filter expression from ctx, or "".
func QueryFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(queryKey{}).(string); ok {
		return v
	}
	return ""
}

// WithFields stores a --fields projection spec in ctx.
func WithFields(ctx context.Context, fields string) context.Context {
	return context.WithValue(ctx, fieldsKey{}, fields)
}

// FieldsFromContext retrieves the --fields projection spec from ctx, or "".
func FieldsFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(fieldsKey{}).(string); ok {
		return v
	}
	return ""
}
