package cmd

import (
	"context"
	"errors"
	"io/fs"

	clierrors "github.com/dlisz/coldrop/internal/errors"
)

const (
	ExitOK       = 0
	ExitSystem   = 1
	ExitUser     = 2
	ExitNotFound = 4
	ExitCanceled = 130
)

// ExitCode maps a command error to a stable process exit code for automation.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if errors.Is(err, context.Canceled) {
		return ExitCanceled
	}
	if errors.Is(err, fs.ErrNotExist) {
		return ExitNotFound
	}
	if clierrors.IsValidationError(err) || clierrors.IsUserError(err) || clierrors.IsParseError(err) {
		return ExitUser
	}
	return ExitSystem
}
