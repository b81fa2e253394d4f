package state

import (
	"testing"
)

// TestInputState_HasChanges ignores surrounding whitespace.
// Edge case: User adds a trailing space to an unchanged filter.
func TestInputState_HasChanges(t *testing.T) {
	state := NewInputState()
	state.InitialBuffer = "ready"

	if state.HasChanges("ready ") {
		t.Error("HasChanges(\"ready \") = true, want false")
	}
	if !state.HasChanges("done") {
		t.Error("HasChanges(\"done\") = false, want true")
	}
}

// TestInputState_Clear forgets the edited record as well as the action.
func TestInputState_Clear(t *testing.T) {
	state := NewInputState()
	state.Action = ActionEdit
	state.Prompt = "Title:"
	state.RecordID = 7
	state.Field = "title"
	state.InitialBuffer = "old"

	state.Clear()

	if state.Action != ActionNone || state.Prompt != "" || state.RecordID != 0 || state.Field != "" || state.InitialBuffer != "" {
		t.Errorf("Clear() left %+v, want zero value", *state)
	}
}
