// Package output formats command results for humans and machines. A Printer
// renders a result value in the selected format; jq filters (--query) and
// JSONPath projections (--fields) apply before rendering.
package output

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// Format represents the output format type.
type Format string

const (
	// FormatText is human-readable key-value format (default).
	FormatText Format = "text"
	// FormatJSON is pretty-printed JSON format.
	FormatJSON Format = "json"
	// FormatNDJSON is newline-delimited JSON format.
	FormatNDJSON Format = "ndjson"
	// FormatTable is tabular format for lists.
	FormatTable Format = "table"
	// FormatYAML is YAML format.
	FormatYAML Format = "yaml"
)

// ParseFormat converts a string to a Format. Empty string defaults to text.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatText, "":
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatNDJSON, "jsonl":
		return FormatNDJSON, nil
	case FormatTable:
		return FormatTable, nil
	case FormatYAML:
		return FormatYAML, nil
	default:
		return "", errors.New("invalid --output format (expected text|json|ndjson|jsonl|table|yaml)")
	}
}

// Printer handles output formatting across different formats.
type Printer struct {
	w      io.Writer
	format Format
}

// NewPrinter creates a Printer that writes to w in the given format.
func NewPrinter(w io.Writer, format Format) *Printer {
	return &Printer{w: w, format: format}
}

// Print outputs data in the configured format, applying any --query filter
// and --fields projection carried in ctx.
func (p *Printer) Print(ctx context.Context, data any) error {
	if data == nil {
		return nil
	}

	if fields := strings.TrimSpace(FieldsFromContext(ctx)); fields != "" {
		projected, err := projectFields(data, fields)
		if err != nil {
			return err
		}
		data = projected
	}

	if query := strings.TrimSpace(QueryFromContext(ctx)); query != "" {
		results, err := runQuery(query, data)
		if err != nil {
			return err
		}
		switch len(results) {
		case 0:
			return nil
		case 1:
			data = results[0]
		default:
			data = results
		}
	}

	switch p.format {
	case FormatJSON:
		return p.printJSON(data)
	case FormatNDJSON:
		return p.printNDJSON(data)
	case FormatYAML:
		return p.printYAML(data)
	case FormatTable:
		return p.printTable(data)
	case FormatText:
		return p.printText(data)
	default:
		return fmt.Errorf("unsupported format: %s", p.format)
	}
}

// printJSON outputs pretty-printed JSON.
func (p *Printer) printJSON(data any) error {
	enc := json.NewEncoder(p.w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// printNDJSON outputs one JSON document per line; slices are emitted one
// element per line.
func (p *Printer) printNDJSON(data any) error {
	normalized, err := normalizeToInterface(data)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(p.w)
	enc.SetEscapeHTML(false)

	if items, ok := normalized.([]any); ok {
		for _, item := range items {
			if err := enc.Encode(item); err != nil {
				return err
			}
		}
		return nil
	}
	return enc.Encode(normalized)
}

// printYAML outputs data as YAML.
func (p *Printer) printYAML(data any) error {
	enc := yaml.NewEncoder(p.w)
	enc.SetIndent(2)
	defer func() { _ = enc.Close() }()
	return enc.Encode(data)
}

// printText outputs data as human-readable text: maps as sorted key-value
// pairs, slices of maps as an aligned table, scalars directly.
func (p *Printer) printText(data any) error {
	normalized, err := normalizeToInterface(data)
	if err != nil {
		return err
	}

	switch v := normalized.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			_, err := fmt.Fprintf(p.w, "%s: %s\n", k, formatScalar(v[k]))
			if err != nil {
				return err
			}
		}
		return nil
	case []any:
		if tbl, ok := tableFromSlice(v); ok {
			return p.printTableFromTable(tbl)
		}
		for _, item := range v {
			if _, err := fmt.Fprintln(p.w, formatScalar(item)); err != nil {
				return err
			}
		}
		return nil
	default:
		_, err := fmt.Fprintf(p.w, "%v\n", normalized)
		return err
	}
}

// printTable outputs data in tabular format using text/tabwriter. Accepts a
// pre-built Table or a slice of homogeneous maps/structs.
func (p *Printer) printTable(data any) error {
	switch v := data.(type) {
	case Table:
		return p.printTableFromTable(v)
	case *Table:
		if v == nil {
			return nil
		}
		return p.printTableFromTable(*v)
	}

	normalized, err := normalizeToInterface(data)
	if err != nil {
		return err
	}
	items, ok := normalized.([]any)
	if !ok {
		return errors.New("table format requires a slice or array")
	}
	if len(items) == 0 {
		return nil
	}
	tbl, ok := tableFromSlice(items)
	if !ok {
		return errors.New("table format requires rows of objects")
	}
	return p.printTableFromTable(tbl)
}

// printTableFromTable outputs a table from a pre-built Table struct.
func (p *Printer) printTableFromTable(t Table) error {
	if len(t.Headers) == 0 && len(t.Rows) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)

	if len(t.Headers) > 0 {
		_, _ = fmt.Fprintln(tw, strings.Join(t.Headers, "\t"))
	}
	for _, row := range t.Rows {
		_, _ = fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

// tableFromSlice builds a Table from a slice of maps, using the sorted union
// of keys as headers. Returns false when elements are not objects.
func tableFromSlice(items []any) (Table, bool) {
	keySet := map[string]struct{}{}
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return Table{}, false
		}
		for k := range m {
			keySet[k] = struct{}{}
		}
	}

	headers := make([]string, 0, len(keySet))
	for k := range keySet {
		headers = append(headers, k)
	}
	sort.Strings(headers)

	tbl := Table{Headers: headers}
	for _, item := range items {
		m := item.(map[string]any)
		row := make([]string, len(headers))
		for i, k := range headers {
			if v, ok := m[k]; ok {
				row[i] = formatScalar(v)
			}
		}
		tbl.Rows = append(tbl.Rows, row)
	}
	return tbl, true
}

// formatScalar renders a single value for text and table output. Nested
// structures fall back to compact JSON.
func formatScalar(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		// JSON numbers normalize to float64; render integers without a
		// trailing ".0".
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%v", val)
	case bool:
		return fmt.Sprintf("%v", val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(b)
	}
}

// normalizeToInterface round-trips data through JSON so every downstream
// consumer sees plain maps, slices, and scalars.
func normalizeToInterface(data any) (any, error) {
	switch data.(type) {
	case map[string]any, []any, string, float64, bool, nil:
		return data, nil
	}

	b, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, err
	}
	return v, nil
}
