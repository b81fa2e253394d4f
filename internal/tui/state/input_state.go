package state

import "strings"

// InputAction is what the prompt line does with the text once submitted
type InputAction int

const (
	ActionNone   InputAction = iota
	ActionSearch             // board-wide search
	ActionFilter             // filter of the selected status or column
	ActionRename             // header alias of the selected status or column
	ActionEdit               // new value of one record field
)

// InputState manages the prompt line state.
// The text itself lives in the model's text input; this keeps what the
// text is for.
type InputState struct {
	// Action decides what happens on enter
	Action InputAction

	// Prompt is the text displayed to the user (e.g., "Filter Status:")
	Prompt string

	// RecordID and Field address the record field being edited (ActionEdit)
	RecordID int64
	Field    string

	// InitialBuffer stores the original value for change detection
	InitialBuffer string
}

// NewInputState creates a new InputState with empty values.
func NewInputState() *InputState {
	return &InputState{}
}

// Clear resets the state to no action.
func (s *InputState) Clear() {
	*s = InputState{}
}

// HasChanges returns true if value differs from the initial value.
func (s *InputState) HasChanges(value string) bool {
	return strings.TrimSpace(value) != strings.TrimSpace(s.InitialBuffer)
}
