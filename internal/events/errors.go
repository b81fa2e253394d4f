package events

import "errors"

var (
	// ErrClosed is returned when using a publisher after Close
	ErrClosed = errors.New("event publisher closed")
	// ErrEmptyNamespace is returned when a shared publisher has no namespace
	ErrEmptyNamespace = errors.New("event namespace is empty")
)
