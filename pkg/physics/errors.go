package physics

import "errors"

var (
	// ErrAllocationFailure is returned when a collider cannot be given storage
	ErrAllocationFailure = errors.New("collider allocation failed")
	// ErrCapacityExceeded is returned when appending to a full segment set
	ErrCapacityExceeded = errors.New("segment capacity exceeded")
	// ErrFormat is returned for truncated or malformed geometry streams
	ErrFormat = errors.New("malformed geometry stream")
	// ErrDegenerateGeometry marks a segment whose endpoints coincide
	ErrDegenerateGeometry = errors.New("degenerate segment")
	// ErrShapeMismatch is returned when a collision pair has the wrong shape kinds
	ErrShapeMismatch = errors.New("collider shape mismatch")
)
