package cli

import (
	"errors"

	"github.com/ianroy/makerflowPM/internal/board"
	"github.com/ianroy/makerflowPM/internal/cache"
	"github.com/ianroy/makerflowPM/internal/customize"
	"github.com/ianroy/makerflowPM/internal/quickedit"
	"github.com/ianroy/makerflowPM/internal/recordservice"
	"github.com/ianroy/makerflowPM/internal/viewconfig"
)

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitError indicates a general error occurred.
	// Use for: Database errors, an unreachable record service, or any error
	// that doesn't fit the specific categories below.
	ExitError = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: Missing required flags, unknown kinds, modes or sort directions.
	ExitUsage = 2

	// ExitNotFound indicates a requested resource was not found.
	// Use for: Record not on the board, record deleted remotely.
	ExitNotFound = 3

	// ExitDataErr indicates invalid or malformed data.
	// Use for: Records that could not be loaded into the board.
	ExitDataErr = 4

	// ExitValidation indicates a validation error.
	// Use for: Edits refused before saving, edits rejected by the record
	// service, or customizations that do not apply to the target.
	ExitValidation = 5
)

// Classify maps a command error to a machine-readable code and an exit code
func Classify(err error) (string, int) {
	var (
		validation *quickedit.ValidationError
		rejected   *quickedit.MutationRejected
		fetch      *cache.FetchError
	)
	switch {
	case err == nil:
		return "", ExitSuccess
	case errors.Is(err, ErrUsage), errors.Is(err, viewconfig.ErrInvalidBoardKey):
		return "INVALID_USAGE", ExitUsage
	case errors.Is(err, cache.ErrRecordNotCached):
		return "RECORD_NOT_FOUND", ExitNotFound
	case errors.As(err, &validation):
		return "VALIDATION_ERROR", ExitValidation
	case errors.As(err, &rejected):
		switch {
		case errors.Is(err, recordservice.ErrTransport):
			return "SERVICE_UNREACHABLE", ExitError
		case rejected.Code == recordservice.CodeNotFound:
			return "RECORD_NOT_FOUND", ExitNotFound
		}
		return "REJECTED", ExitValidation
	case errors.Is(err, quickedit.ErrUnknownField):
		return "UNKNOWN_FIELD", ExitUsage
	case errors.Is(err, customize.ErrWrongScope),
		errors.Is(err, customize.ErrInvalidTarget),
		errors.Is(err, customize.ErrNotOverlay),
		errors.Is(err, customize.ErrInvalidValue):
		return "INVALID_CUSTOMIZATION", ExitValidation
	case errors.Is(err, board.ErrUnknownCommand):
		return "INVALID_USAGE", ExitUsage
	case errors.As(err, &fetch):
		if errors.Is(err, recordservice.ErrTransport) {
			return "SERVICE_UNREACHABLE", ExitError
		}
		return "LOAD_FAILED", ExitDataErr
	}
	return "ERROR", ExitError
}

// Fail reports err through the formatter and returns it wrapped with its exit code
func Fail(f *OutputFormatter, err error) error {
	return FailWithSuggestion(f, err, "")
}

// FailWithSuggestion is Fail with a hint for the user
func FailWithSuggestion(f *OutputFormatter, err error, suggestion string) error {
	code, exit := Classify(err)
	message := quickedit.Message(err)
	var fetch *cache.FetchError
	if errors.As(err, &fetch) {
		message = err.Error()
	}
	if fmtErr := f.ErrorWithSuggestion(code, message, suggestion); fmtErr != nil {
		return fmtErr
	}
	return &ExitError{Code: exit, Err: err}
}

// ExitCode returns the process exit code for an error returned by a command
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exit *ExitError
	if errors.As(err, &exit) {
		return exit.Code
	}
	_, code := Classify(err)
	return code
}
