package cli

import (
	"errors"
	"fmt"
)

// ErrUsage marks a command invoked with missing or malformed flags
var ErrUsage = errors.New("invalid usage")

// ExitError carries the process exit code of a failed command. The message
// has already been written by the formatter.
type ExitError struct {
	Code int
	Err  error
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the command error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// Usagef builds an ErrUsage error
func Usagef(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUsage, fmt.Sprintf(format, args...))
}
