package storage

import "errors"

// Storage errors shared by all backends.
var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateKey is returned when attempting to insert a record
	// with a key that already exists. Silver tables are append-only
	// snapshots; feature rows are deduplicated by row_id.
	ErrDuplicateKey = errors.New("duplicate key: append-only store does not allow updates")

	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")
)
