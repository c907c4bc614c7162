package inbox

import "errors"

var (
	// ErrNilClient is returned by New when no sync client is provided.
	ErrNilClient = errors.New("inbox: sync client is required")

	// ErrAlreadyOpen is returned by Open when the surface is already active.
	ErrAlreadyOpen = errors.New("inbox: already open")

	// ErrNotFound is returned when an operation names an id the store does
	// not hold.
	ErrNotFound = errors.New("inbox: notification not found")
)
