package poller

import (
	"log/slog"
	"time"
)

// DefaultInterval is the feed synchronization cadence.
const DefaultInterval = 60 * time.Second

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithInterval overrides the tick cadence. Non-positive durations are ignored.
func WithInterval(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithClock injects a custom clock, typically a fake in tests.
func WithClock(c Clock) Option {
	return func(s *Scheduler) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithLogger sets the logger for scheduler lifecycle events.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l
		}
	}
}
