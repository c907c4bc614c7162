package inbox

import (
	"log/slog"
	"time"

	"github.com/gatherly/notify/pkg/poller"
)

type options struct {
	logger     *slog.Logger
	notice     NoticeFunc
	observers  []PollObserver
	storeOpts  []StoreOption
	pollerOpts []poller.Option
}

func defaultOptions() *options {
	return &options{logger: slog.Default()}
}

// Option configures an Inbox.
type Option func(*options)

// WithLogger sets the logger. Nil loggers are ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
			o.pollerOpts = append(o.pollerOpts, poller.WithLogger(l))
		}
	}
}

// WithNotice sets the sink for transient user-visible notices.
func WithNotice(fn NoticeFunc) Option {
	return func(o *options) {
		o.notice = fn
	}
}

// WithObserver registers a poll observer, e.g. the desktop notifier.
// Observers that also implement PermissionObserver are asked for platform
// permission when the surface first opens. Nil observers are filtered out.
func WithObserver(obs ...PollObserver) Option {
	return func(o *options) {
		for _, ob := range obs {
			if ob != nil {
				o.observers = append(o.observers, ob)
			}
		}
	}
}

// WithPollInterval overrides the synchronization cadence.
func WithPollInterval(d time.Duration) Option {
	return func(o *options) {
		o.pollerOpts = append(o.pollerOpts, poller.WithInterval(d))
	}
}

// WithClock injects the clock driving both the polling cadence and the
// ReadAt stamps on optimistic mark-read.
func WithClock(c poller.Clock) Option {
	return func(o *options) {
		if c != nil {
			o.pollerOpts = append(o.pollerOpts, poller.WithClock(c))
			o.storeOpts = append(o.storeOpts, WithNow(c.Now))
		}
	}
}
