package quickedit

import (
	"errors"
	"fmt"

	"github.com/ianroy/makerflowPM/internal/recordservice"
)

var (
	// ErrUnknownField is returned when an edit names a field the kind does not have
	ErrUnknownField = errors.New("unknown field")
	// ErrNotPending is returned when completing an edit that is not in flight
	ErrNotPending = errors.New("edit is not pending")
)

// ValidationError blocks an edit before any optimistic patch or remote call
type ValidationError struct {
	RecordID int64
	Field    string
	Message  string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}

// MutationRejected reports that the record service refused an edit or could
// not be reached. The optimistic value has been rolled back.
type MutationRejected struct {
	RecordID int64
	Field    string
	Code     string // remote code, or "transport"
	Message  string // user-facing text from the message table
	Err      error
}

// Error implements the error interface.
func (e *MutationRejected) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("record %d: %s", e.RecordID, e.Message)
	}
	return fmt.Sprintf("record %d %s: %s", e.RecordID, e.Field, e.Message)
}

// Unwrap returns the remote or transport error.
func (e *MutationRejected) Unwrap() error {
	return e.Err
}

const codeTransport = "transport"

// Message turns a remote failure into the text shown to the user. Unmapped
// codes surface the raw message.
func Message(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, recordservice.ErrTransport) {
		return "Could not reach the record service. The change was not saved."
	}

	re, ok := recordservice.AsRemoteError(err)
	if !ok {
		return err.Error()
	}

	switch re.Code {
	case recordservice.CodeDeleteBlockedStatus:
		if statuses := re.Param("statuses"); statuses != "" {
			return fmt.Sprintf("This record can only be deleted when its status is: %s.", statuses)
		}
		return "This record cannot be deleted in its current status."
	case recordservice.CodeRequiredRelation:
		if rel := re.Param("relation"); rel != "" {
			return fmt.Sprintf("%s is required.", rel)
		}
		return "A required link is missing."
	case recordservice.CodeRequiredField:
		return fmt.Sprintf("%s cannot be empty.", fieldName(re))
	case recordservice.CodeInvalidOption:
		return fmt.Sprintf("%q is not a valid choice for %s.", re.Param("value"), fieldName(re))
	case recordservice.CodeInvalidNumber:
		return fmt.Sprintf("%s must be a number.", fieldName(re))
	case recordservice.CodeInvalidDate:
		return fmt.Sprintf("%s must be a date like 2025-01-31.", fieldName(re))
	case recordservice.CodeReadOnlyField:
		return fmt.Sprintf("%s is calculated and cannot be edited.", fieldName(re))
	case recordservice.CodeForbidden:
		return "You do not have permission to make this change."
	case recordservice.CodeNotFound:
		return "This record no longer exists. Refresh the board."
	}
	return re.Error()
}

func fieldName(re *recordservice.RemoteError) string {
	if f := re.Param("field"); f != "" {
		return f
	}
	return "This field"
}

func errorCode(err error) string {
	if re, ok := recordservice.AsRemoteError(err); ok {
		return re.Code
	}
	return codeTransport
}
