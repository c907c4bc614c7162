package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// TickFunc is invoked on every scheduled or forced tick.
type TickFunc func(ctx context.Context)

// Scheduler owns a single repeating timer driving feed synchronization.
// It is started when the notification surface becomes active and stopped on
// teardown. Ticks are dispatched on their own goroutines, so a slow tick
// never delays the cadence and ticks may overlap; consumers are expected to
// discard stale results themselves.
type Scheduler struct {
	tick     TickFunc
	interval time.Duration
	clock    Clock
	logger   *slog.Logger

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	trigger chan struct{}
	done    sync.WaitGroup
}

// New creates a Scheduler invoking tick on the configured cadence.
func New(tick TickFunc, opts ...Option) (*Scheduler, error) {
	if tick == nil {
		return nil, ErrNilTickFunc
	}

	s := &Scheduler{
		tick:     tick,
		interval: DefaultInterval,
		clock:    SystemClock{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Start begins the repeating timer. It returns immediately; ticks run on a
// background goroutine until Stop is called or ctx is cancelled. Starting an
// already-running scheduler is an error.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return ErrAlreadyRunning
	}
	s.running = true
	s.stopCh = make(chan struct{})
	s.trigger = make(chan struct{}, 1)

	s.done.Add(1)
	go s.run(ctx, s.stopCh, s.trigger)

	s.logger.Debug("poll scheduler started",
		slog.Duration("interval", s.interval))
	return nil
}

// Stop clears the timer. It does not cancel ticks already in flight; late
// results must be discarded by the consumer. Stop is idempotent.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stopCh)
	s.mu.Unlock()

	s.done.Wait()
	s.logger.Debug("poll scheduler stopped")
}

// Running reports whether the scheduler is currently started.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Trigger forces an immediate out-of-band tick without disturbing the
// regular cadence. It is a no-op when the scheduler is not running, and
// coalesces with an already-pending forced tick.
func (s *Scheduler) Trigger() {
	s.mu.Lock()
	trigger := s.trigger
	running := s.running
	s.mu.Unlock()

	if !running {
		return
	}
	select {
	case trigger <- struct{}{}:
	default:
	}
}

func (s *Scheduler) run(ctx context.Context, stopCh, trigger chan struct{}) {
	defer s.done.Done()

	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stopCh:
			return
		case <-ticker.C():
			go s.tick(ctx)
		case <-trigger:
			go s.tick(ctx)
		}
	}
}
