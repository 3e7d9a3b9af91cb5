package output

import (
	"fmt"
	"strings"

	"github.com/PaesslerAG/jsonpath"

	clierrors "github.com/dlisz/coldrop/internal/errors"
)

// fieldSpec is one entry of a --fields projection: an output key and the
// JSONPath it is populated from.
type fieldSpec struct {
	Key  string
	Path string
}

// parseFieldSpecs parses a comma-separated --fields value. Each entry is
// either a bare path ("rows") or key=path ("n=rows"). Paths are relative;
// the "$." root is implied.
func parseFieldSpecs(raw string) ([]fieldSpec, error) {
	var specs []fieldSpec
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		spec := fieldSpec{Key: part, Path: part}
		if k, p, ok := strings.Cut(part, "="); ok {
			k, p = strings.TrimSpace(k), strings.TrimSpace(p)
			if k == "" || p == "" {
				return nil, fmt.Errorf("invalid field entry %q", part)
			}
			spec = fieldSpec{Key: k, Path: p}
		}
		specs = append(specs, spec)
	}
	if len(specs) == 0 {
		return nil, fmt.Errorf("no fields given")
	}
	return specs, nil
}

// ValidateFields validates --fields syntax without applying it.
func ValidateFields(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	_, err := parseFieldSpecs(raw)
	return err
}

// projectFields reduces data to just the requested fields. For a slice the
// projection applies per element.
func projectFields(data any, raw string) (any, error) {
	specs, err := parseFieldSpecs(raw)
	if err != nil {
		return nil, clierrors.WrapUserError(err, "invalid --fields value", "Example: --fields rows,widest=column_stats[0].max_width")
	}

	normalized, err := normalizeToInterface(data)
	if err != nil {
		return nil, err
	}

	if items, ok := normalized.([]any); ok {
		out := make([]any, 0, len(items))
		for _, item := range items {
			out = append(out, projectOne(item, specs))
		}
		return out, nil
	}
	return projectOne(normalized, specs), nil
}

func projectOne(item any, specs []fieldSpec) map[string]any {
	out := make(map[string]any, len(specs))
	for _, spec := range specs {
		v, err := jsonpath.Get("$."+spec.Path, item)
		if err != nil {
			// Missing paths project as null rather than failing the row.
			out[spec.Key] = nil
			continue
		}
		out[spec.Key] = v
	}
	return out
}
