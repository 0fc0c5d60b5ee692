package index

import "errors"

var (
	// ErrVectorLengthMismatch indicates two vectors have different dimensions.
	ErrVectorLengthMismatch = errors.New("vector length mismatch")

	// ErrNotFound is returned by a Store when an artifact has not been persisted.
	ErrNotFound = errors.New("cache artifact not found")

	// ErrCorrupt indicates a persisted artifact could not be decoded.
	ErrCorrupt = errors.New("cache artifact corrupt")
)
