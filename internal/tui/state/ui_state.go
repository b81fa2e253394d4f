package state

// Mode represents the current interaction mode of the TUI.
// Each mode determines which keyboard shortcuts are active and what UI is displayed.
type Mode int

const (
	NormalMode        Mode = iota // Default navigation mode
	InputMode                     // Typing into the prompt line
	DeleteConfirmMode             // Confirming record deletion
	HelpMode                      // Displaying help screen
)

func (m Mode) String() string {
	switch m {
	case InputMode:
		return "input"
	case DeleteConfirmMode:
		return "delete-confirm"
	case HelpMode:
		return "help"
	default:
		return "normal"
	}
}

// Cursor is a position in one layout: a status column and a card in
// Kanban, a table column and a row in List
type Cursor struct {
	Column int
	Row    int
}

// UIState manages the user interface state.
// This includes the cursor of each layout, terminal dimensions,
// and the current interaction mode.
type UIState struct {
	kanban Cursor
	list   Cursor

	// width is the current terminal width in characters
	width int

	// height is the current terminal height in characters
	height int

	// mode is the current interaction mode
	mode Mode
}

// NewUIState creates a new UIState with default values.
func NewUIState() *UIState {
	return &UIState{mode: NormalMode}
}

// Kanban returns the Kanban cursor.
func (s *UIState) Kanban() Cursor {
	return s.kanban
}

// SetKanban updates the Kanban cursor.
func (s *UIState) SetKanban(c Cursor) {
	s.kanban = c
}

// List returns the List cursor.
func (s *UIState) List() Cursor {
	return s.list
}

// SetList updates the List cursor.
func (s *UIState) SetList(c Cursor) {
	s.list = c
}

// Width returns the current terminal width.
func (s *UIState) Width() int {
	return s.width
}

// SetWidth updates the terminal width.
func (s *UIState) SetWidth(width int) {
	s.width = width
}

// Height returns the current terminal height.
func (s *UIState) Height() int {
	return s.height
}

// SetHeight updates the terminal height.
func (s *UIState) SetHeight(height int) {
	s.height = height
}

// Mode returns the current interaction mode.
func (s *UIState) Mode() Mode {
	return s.mode
}

// SetMode updates the interaction mode.
func (s *UIState) SetMode(mode Mode) {
	s.mode = mode
}

// Clamp keeps a cursor inside a grid. rows returns the number of rows of a
// column. An empty grid clamps to 0,0.
func Clamp(c Cursor, columns int, rows func(col int) int) Cursor {
	if columns <= 0 {
		return Cursor{}
	}
	c.Column = min(max(c.Column, 0), columns-1)
	n := rows(c.Column)
	if n <= 0 {
		c.Row = 0
		return c
	}
	c.Row = min(max(c.Row, 0), n-1)
	return c
}
