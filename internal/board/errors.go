package board

import "errors"

var (
	// ErrUnknownCommand is returned when a board cannot dispatch a command
	ErrUnknownCommand = errors.New("unknown board command")
	// ErrBoardNotOpen is returned when a board key is not in the registry
	ErrBoardNotOpen = errors.New("board not open")
)
