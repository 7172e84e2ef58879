package repository

import "errors"

// Sentinel errors shared by all repository implementations. Services map
// these onto HTTP-facing error conditions.
var (
	// ErrNotFound is returned when the referenced row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a uniqueness constraint rejects a write,
	// e.g. liking an already-liked post or following an already-followed user.
	ErrDuplicate = errors.New("duplicate")
)
