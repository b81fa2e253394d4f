package board

import (
	"github.com/ianroy/makerflowPM/internal/customize"
	"github.com/ianroy/makerflowPM/internal/quickedit"
	"github.com/ianroy/makerflowPM/internal/viewconfig"
)

// Command is anything a board can dispatch: the record commands below or
// any customize.Command
type Command interface {
	Name() string
}

// EditField changes one field of one record through the synchronizer
type EditField struct {
	RecordID int64
	Field    string
	Value    string
	Scope    viewconfig.Scope // layout the control lives in; empty means Kanban
}

func (EditField) Name() string { return "edit" }

// MoveRecord drops a card onto another status column
type MoveRecord struct {
	RecordID int64
	To       string
}

func (MoveRecord) Name() string { return "move" }

// DeleteRecord removes a record, restoring it if the service refuses
type DeleteRecord struct {
	RecordID int64
}

func (DeleteRecord) Name() string { return "delete" }

// Refresh reloads the records and lookups from the record service
type Refresh struct{}

func (Refresh) Name() string { return "refresh" }

// Result is what a dispatched command did
type Result struct {
	// Outcome of a record command
	Outcome quickedit.Outcome
	// Effects and per-edit outcomes of a customization command
	Effects  customize.Effects
	Outcomes []quickedit.Outcome
	// Message is user-facing text, empty on plain success
	Message string
	Err     error
}

// OK reports whether the command fully succeeded
func (r Result) OK() bool {
	if r.Err != nil {
		return false
	}
	for _, o := range r.Outcomes {
		if o.Err != nil {
			return false
		}
	}
	return true
}
