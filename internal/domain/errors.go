package domain

import "errors"

// Sentinel errors returned by repositories and services. Callers match them
// with errors.Is and map them to transport-level responses.
var (
	ErrNotFound               = errors.New("not found")
	ErrImmutableVersion       = errors.New("schedule version is released and cannot be modified")
	ErrInvalidDuration        = errors.New("duration must be positive")
	ErrDuplicateLabel         = errors.New("release label already in use for this event")
	ErrConcurrentModification = errors.New("schedule was modified concurrently, retry")
	ErrInvalidInput           = errors.New("invalid input")
)
