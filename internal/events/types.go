package events

import "time"

// EventType indicates what kind of change occurred
type EventType string

const (
	EventRecordChanged EventType = "record_changed"
	EventRecordDeleted EventType = "record_deleted"
	EventViewChanged   EventType = "view_changed"
	EventBoardLoaded   EventType = "board_loaded"
)

// Event represents a change to one board
type Event struct {
	Type       EventType `json:"type"`
	BoardKey   string    `json:"board_key"`           // For filtering - which board was modified
	RecordID   int64     `json:"record_id,omitempty"` // 0 for board-wide changes
	Source     string    `json:"source,omitempty"`    // session that made the change
	Timestamp  time.Time `json:"timestamp"`
	SequenceID int64     `json:"sequence_id"` // Monotonically increasing, per publisher backend
}

// matches reports whether an event is wanted by a subscription. An empty
// subscription receives every board.
func (e Event) matches(boardKey string) bool {
	return boardKey == "" || e.BoardKey == boardKey
}
