package poller

import "errors"

var (
	// ErrNilTickFunc is returned by New when no tick function is provided.
	ErrNilTickFunc = errors.New("poller: tick function is required")

	// ErrAlreadyRunning is returned by Start when the scheduler is running.
	ErrAlreadyRunning = errors.New("poller: scheduler already running")
)
