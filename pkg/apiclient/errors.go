package apiclient

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingBaseURL is returned by New when no server URL is provided.
	ErrMissingBaseURL = errors.New("apiclient: base URL is required")

	// ErrMissingID is returned when an operation needs a notification id.
	ErrMissingID = errors.New("apiclient: notification id is required")

	// ErrRequestRejected is the sentinel every RequestError unwraps to, so
	// callers can classify a failure with errors.Is without caring about
	// the concrete status code.
	ErrRequestRejected = errors.New("apiclient: request rejected")
)

// RequestError is a non-success HTTP response carrying the server's message.
// The caller must not assume any fallback behavior on its part.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("server rejected request: %s (status %d)", e.Message, e.Status)
}

func (e *RequestError) Unwrap() error {
	return ErrRequestRejected
}

// TransportError is a network-level failure: the request may never have
// reached the server at all.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("notification server unreachable: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
