package httpserver

import "errors"

var (
	// ErrMissingAddr indicates no listen address was provided.
	ErrMissingAddr = errors.New("missing listen address")
	// ErrNilHandler indicates a nil handler was provided.
	ErrNilHandler = errors.New("nil http handler")
	// ErrServerFailed indicates the listener failed before shutdown.
	ErrServerFailed = errors.New("http server failed")
	// ErrShutdownFailed indicates graceful shutdown did not complete in
	// time.
	ErrShutdownFailed = errors.New("http server shutdown failed")
)
