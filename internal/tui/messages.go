package tui

import (
	"github.com/ianroy/makerflowPM/internal/board"
	"github.com/ianroy/makerflowPM/internal/events"
)

// boardChangedMsg is sent when the board's records or configuration changed
type boardChangedMsg struct{}

// dispatchResultMsg carries the result of a command run by dispatch
type dispatchResultMsg struct {
	Name   string
	Result board.Result
	// Follow is a record the cursor moves to once the command finished
	Follow int64
}

// remoteEventMsg is a change published by any session
type remoteEventMsg struct {
	Event events.Event
}

// eventsClosedMsg is sent once the event publisher stops delivering
type eventsClosedMsg struct{}
