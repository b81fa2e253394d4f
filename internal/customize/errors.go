package customize

import "errors"

var (
	// ErrWrongScope is returned when an action does not exist in the target's layout
	ErrWrongScope = errors.New("action not available in this view")
	// ErrInvalidTarget is returned when a target names no status or column
	ErrInvalidTarget = errors.New("invalid customization target")
	// ErrNotOverlay is returned when a structural action needs an added column
	ErrNotOverlay = errors.New("only added columns support this action")
	// ErrInvalidValue is returned for an unknown mode, sort direction or type
	ErrInvalidValue = errors.New("invalid customization value")
)
