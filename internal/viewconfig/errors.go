package viewconfig

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidBoardKey is returned when a board key cannot be parsed
var ErrInvalidBoardKey = errors.New("invalid board key")

// ConfigCorrupt describes persisted configuration that could not be read in
// full. It is logged and never surfaced; the affected parts fall back to
// defaults.
type ConfigCorrupt struct {
	BoardKey string
	Dropped  []string // paths of fields that were discarded
	Err      error    // set when the whole blob was unreadable
}

// Error implements the error interface.
func (e *ConfigCorrupt) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("view configuration for %s is unreadable: %v", e.BoardKey, e.Err)
	}
	return fmt.Sprintf("view configuration for %s dropped %s", e.BoardKey, strings.Join(e.Dropped, ", "))
}

// Unwrap returns the decode error, if any.
func (e *ConfigCorrupt) Unwrap() error {
	return e.Err
}
