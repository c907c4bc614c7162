package desktop

import (
	"context"
	"log/slog"
	"sync"

	"github.com/gatherly/notify/pkg/notification"
)

// Permission is the state of the platform notification permission.
type Permission int

const (
	// PermissionDefault means the user has never been asked.
	PermissionDefault Permission = iota
	// PermissionGranted allows raising system notifications.
	PermissionGranted
	// PermissionDenied silently disables the notifier. Denial is not an
	// error condition anywhere else in the system.
	PermissionDenied
)

// Requester prompts the platform (or the user) for notification permission.
type Requester interface {
	Request(ctx context.Context) (Permission, error)
}

// StaticRequester always answers with a fixed permission. Platforms without
// an explicit permission model grant by default.
type StaticRequester Permission

func (r StaticRequester) Request(context.Context) (Permission, error) {
	return Permission(r), nil
}

// Sender delivers one native system notification.
type Sender interface {
	Send(title, message string) error
}

// Notifier is the best-effort side channel raising a native notification
// when the unread count grows. It observes polls; it never fetches anything
// itself.
type Notifier struct {
	sender    Sender
	requester Requester
	logger    *slog.Logger

	mu         sync.Mutex
	permission Permission
	lastUnread int
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithSender overrides the platform sender, typically with a fake in tests.
func WithSender(s Sender) Option {
	return func(n *Notifier) {
		if s != nil {
			n.sender = s
		}
	}
}

// WithRequester overrides the permission requester.
func WithRequester(r Requester) Option {
	return func(n *Notifier) {
		if r != nil {
			n.requester = r
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(n *Notifier) {
		if l != nil {
			n.logger = l
		}
	}
}

// New creates a Notifier in the unasked permission state.
func New(opts ...Option) *Notifier {
	n := &Notifier{
		sender:    BeeepSender{},
		requester: StaticRequester(PermissionGranted),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Permission returns the current permission state.
func (n *Notifier) Permission() Permission {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.permission
}

// EnsurePermission asks for permission if, and only if, it has never been
// asked before. It is called on the first user interaction with the
// notification affordance, never unsolicited on load. The answer is final
// for the lifetime of the notifier.
func (n *Notifier) EnsurePermission(ctx context.Context) Permission {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.permission != PermissionDefault {
		return n.permission
	}

	perm, err := n.requester.Request(ctx)
	if err != nil {
		// Treat an unanswerable prompt as denial: the notifier goes quiet
		// and nothing else in the system cares.
		n.logger.LogAttrs(ctx, slog.LevelDebug, "notification permission request failed",
			slog.Any("error", err),
		)
		n.permission = PermissionDenied
		return n.permission
	}
	n.permission = perm
	return n.permission
}

// Observe implements the inbox poll observer. When the unread count has
// increased since the previous observation and permission is granted, it
// raises exactly one system notification carrying the newest unread item's
// message — one per increase, never one per item.
func (n *Notifier) Observe(unread int, newest *notification.Notification) {
	n.mu.Lock()
	prev := n.lastUnread
	n.lastUnread = unread
	granted := n.permission == PermissionGranted
	n.mu.Unlock()

	if !granted || unread <= prev || newest == nil {
		return
	}

	if err := n.sender.Send("Gatherly", newest.Message); err != nil {
		n.logger.LogAttrs(context.Background(), slog.LevelDebug, "system notification failed",
			slog.String("notification_id", newest.ID),
			slog.Any("error", err),
		)
	}
}
