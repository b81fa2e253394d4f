package recordservice

import (
	"errors"
	"fmt"
)

// Structured rejection codes reported by the record service
const (
	CodeNotFound            = "not_found"
	CodeForbidden           = "forbidden"
	CodeInvalidOption       = "invalid_option"
	CodeInvalidNumber       = "invalid_number"
	CodeInvalidDate         = "invalid_date"
	CodeUnknownField        = "unknown_field"
	CodeReadOnlyField       = "read_only_field"
	CodeRequiredField       = "required_field"
	CodeRequiredRelation    = "required_relation"
	CodeDeleteBlockedStatus = "delete_blocked_status"
)

// ErrTransport marks failures to reach the record service at all
var ErrTransport = errors.New("record service unreachable")

// RemoteError is a business rule violation reported by the record service
type RemoteError struct {
	Code    string
	Message string
	Params  map[string]string
}

// Error implements the error interface.
func (e *RemoteError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Code
}

// Param returns a named parameter of the rejection
func (e *RemoteError) Param(name string) string {
	if e.Params == nil {
		return ""
	}
	return e.Params[name]
}

func reject(code string, params map[string]string, format string, args ...any) *RemoteError {
	return &RemoteError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Params:  params,
	}
}

// AsRemoteError extracts a RemoteError from an error chain
func AsRemoteError(err error) (*RemoteError, bool) {
	var re *RemoteError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}
