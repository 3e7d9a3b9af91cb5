package cmd

import (
	"fmt"
	"unicode/utf8"

	clierrors "github.com/dlisz/coldrop/internal/errors"
)

// parseDelimiter converts the --delimiter flag into the rune used by the
// csv codec. The two-character escape "\t" is accepted for tab since a
// literal tab is awkward to pass through most shells.
func parseDelimiter(s string) (rune, error) {
	if s == "" {
		return ',', nil
	}
	if s == `\t` {
		return '\t', nil
	}

	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) {
		return 0, clierrors.NewValidationError("--delimiter", fmt.Sprintf("must be a single character, got %q", s))
	}
	switch r {
	case '\n', '\r', '"':
		return 0, clierrors.NewValidationError("--delimiter", fmt.Sprintf("%q cannot be used as a field delimiter", s))
	}
	return r, nil
}
