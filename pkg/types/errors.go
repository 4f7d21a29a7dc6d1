package types

import "errors"

// Shared domain errors surfaced by the pack and change-list readers/writers.
var (
	// ErrBadMagic is returned when a data-pack's header does not begin with
	// the expected magic tag, meaning the file predates the current format.
	ErrBadMagic = errors.New("file format is out of date")

	// ErrMalformedChunk is returned when a chunk header declares sizes that
	// cannot be satisfied by the remaining bytes in the stream.
	ErrMalformedChunk = errors.New("malformed chunk")

	// ErrNotFound is returned by lookups (pack cache) that find no
	// matching record.
	ErrNotFound = errors.New("not found")
)
