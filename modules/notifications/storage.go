package notifications

import (
	"context"
	"errors"

	"github.com/gatherly/notify/pkg/notification"
)

var (
	// ErrNotFound is returned when a notification does not exist for the
	// user.
	ErrNotFound = errors.New("notification not found")
	// ErrMissingUserID is returned when an operation lacks a user id.
	ErrMissingUserID = errors.New("missing user id")
	// ErrMissingID is returned when a single-item operation lacks an id.
	ErrMissingID = errors.New("missing notification id")
	// ErrNilStorage is returned when a service is built without storage.
	ErrNilStorage = errors.New("nil storage")
)

// Storage handles notification persistence and retrieval. All operations
// are scoped to a single user; implementations must never return or
// mutate another user's notifications.
type Storage interface {
	// Create stores a new notification.
	Create(ctx context.Context, n notification.Notification) error

	// Get retrieves a single notification.
	Get(ctx context.Context, userID, id string) (*notification.Notification, error)

	// List returns notifications for a user, newest first.
	List(ctx context.Context, userID string, opts ListOptions) ([]notification.Notification, error)

	// MarkRead marks the given notifications as read. Unknown ids and
	// already-read items are skipped.
	MarkRead(ctx context.Context, userID string, ids ...string) error

	// MarkAllRead marks every unread notification as read.
	MarkAllRead(ctx context.Context, userID string) error

	// Delete removes the given notifications, returning how many existed.
	Delete(ctx context.Context, userID string, ids ...string) (int, error)

	// DeleteAllRead removes every read notification, returning the count.
	DeleteAllRead(ctx context.Context, userID string) (int, error)

	// CountUnread returns the unread count across the user's full set,
	// independent of any filter.
	CountUnread(ctx context.Context, userID string) (int, error)
}

// ListOptions provides filtering and pagination for List. An empty Types
// slice means all source types.
type ListOptions struct {
	Types      []notification.SourceType // union of source types; nil = all
	OnlyUnread bool
	Limit      int // 0 = no limit
	Offset     int
}

// OptionsForFilter translates a client-side category filter into the
// storage constraint it stands for.
func OptionsForFilter(f notification.Filter) ListOptions {
	return ListOptions{
		Types:      f.SourceTypes(),
		OnlyUnread: f == notification.FilterUnread,
	}
}

// matches reports whether n passes the options' filter predicates.
func (o ListOptions) matches(n *notification.Notification) bool {
	if o.OnlyUnread && n.IsRead {
		return false
	}
	if len(o.Types) == 0 {
		return true
	}
	for _, st := range o.Types {
		if n.SourceType == st {
			return true
		}
	}
	return false
}
