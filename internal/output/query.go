package output

import (
	"fmt"

	"github.com/itchyny/gojq"

	clierrors "github.com/dlisz/coldrop/internal/errors"
)

// runQuery normalizes data to map/slice form, runs a jq query over it, and
// returns the produced values in order.
func runQuery(query string, data any) ([]any, error) {
	normalized, err := normalizeToInterface(data)
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}

	parsed, err := gojq.Parse(query)
	if err != nil {
		return nil, invalidQueryErr(err)
	}
	code, err := gojq.Compile(parsed)
	if err != nil {
		return nil, invalidQueryErr(err)
	}

	var results []any
	iter := code.Run(normalized)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if queryErr, isErr := v.(error); isErr {
			return nil, fmt.Errorf("query error: %v", queryErr)
		}
		results = append(results, v)
	}
	return results, nil
}

func invalidQueryErr(err error) error {
	return clierrors.WrapUserError(err, "invalid --query", "Quote the jq expression fully, e.g. --query '.rows'")
}
