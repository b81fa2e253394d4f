package cache

import (
	"errors"
	"fmt"
)

// ErrNotLoaded is returned by operations that need a loaded board
var ErrNotLoaded = errors.New("board not loaded")

// ErrRecordNotCached is returned when an id is not present in the cache
var ErrRecordNotCached = errors.New("record not in cache")

// FetchError reports that a full refresh could not reach the record service.
// No partial board is kept when it occurs.
type FetchError struct {
	BoardKey string
	Err      error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to load board %s: %v", e.BoardKey, e.Err)
}

// Unwrap returns the underlying transport error.
func (e *FetchError) Unwrap() error {
	return e.Err
}
