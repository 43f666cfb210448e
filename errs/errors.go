// Package errs defines the sentinel errors returned by the containers and codecs.
//
// Errors are wrapped with context using fmt.Errorf and %w; test for them with errors.Is.
package errs

import "errors"

var (
	// ErrOutOfBounds is returned when an index is greater than or equal to the container length.
	ErrOutOfBounds = errors.New("index out of bounds")
	// ErrEmptyContainer is returned when popping from a container with no elements.
	ErrEmptyContainer = errors.New("container is empty")
	// ErrNotAllocated is returned when freeing a container that holds no backing storage.
	ErrNotAllocated = errors.New("container storage not allocated")
	// ErrTypeMismatch is returned when a value does not match the element kind of a container.
	ErrTypeMismatch = errors.New("element type mismatch")
	// ErrUnsupportedKind is returned when decoded input names a kind the target cannot hold.
	ErrUnsupportedKind = errors.New("unsupported element kind")

	// ErrMalformedInput is returned when encoded text or packed bytes do not follow the wire format.
	ErrMalformedInput = errors.New("malformed input")
	// ErrTruncatedInput is returned when a binary frame is shorter than its length prefix claims.
	ErrTruncatedInput = errors.New("truncated input")
	// ErrLengthMismatch is returned when a decompressed payload does not match its expected size.
	ErrLengthMismatch = errors.New("payload length mismatch")
	// ErrInvalidCompression is returned for an unknown compression type.
	ErrInvalidCompression = errors.New("invalid compression type")
)
