package notifications

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/gatherly/notify/pkg/logger"
	"github.com/gatherly/notify/pkg/notification"
)

// FeedPage is the response shape of a feed query: the filtered list plus
// the unread count over the user's full set.
type FeedPage struct {
	Notifications []notification.Notification `json:"notifications"`
	UnreadCount   int                         `json:"unread_count"`
}

// Service implements the notification operations exposed over HTTP. It
// stamps server-issued fields on create and keeps every operation scoped
// to the acting user.
type Service struct {
	storage Storage
	log     *slog.Logger
	now     func() time.Time
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithServiceLogger sets the service logger. Nil loggers are ignored.
func WithServiceLogger(log *slog.Logger) ServiceOption {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithServiceNow overrides the clock used to stamp created_at and
// read_at. Intended for tests.
func WithServiceNow(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService creates a notification service over storage.
func NewService(storage Storage, opts ...ServiceOption) (*Service, error) {
	if storage == nil {
		return nil, ErrNilStorage
	}
	s := &Service{
		storage: storage,
		log:     slog.Default(),
		now:     nowUTC,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// CreateInput carries the producer-supplied fields of a new notification.
// ID, read state, and created_at are stamped by the service.
type CreateInput struct {
	TargetUserID string                  `json:"target_user_id"`
	SourceType   notification.SourceType `json:"source_type"`
	Message      string                  `json:"message"`
	Link         string                  `json:"link,omitempty"`
	Priority     notification.Priority   `json:"priority"`
	Payload      notification.Payload    `json:"-"`
}

// Create issues a new notification for the target user.
func (s *Service) Create(ctx context.Context, in CreateInput) (*notification.Notification, error) {
	if in.TargetUserID == "" {
		return nil, ErrMissingUserID
	}

	n := notification.Notification{
		ID:           uuid.NewString(),
		TargetUserID: in.TargetUserID,
		SourceType:   in.SourceType,
		Message:      in.Message,
		Link:         in.Link,
		Priority:     in.Priority,
		Payload:      in.Payload,
		CreatedAt:    s.now(),
	}
	if err := n.Validate(); err != nil {
		return nil, err
	}

	if err := s.storage.Create(ctx, n); err != nil {
		s.log.ErrorContext(ctx, "create notification failed",
			logger.UserID(in.TargetUserID), logger.Error(err))
		return nil, err
	}

	s.log.InfoContext(ctx, "notification created",
		logger.UserID(in.TargetUserID),
		logger.NotificationID(n.ID),
		slog.String("source_type", string(n.SourceType)),
	)
	return &n, nil
}

// Feed returns the user's notifications under the given filter together
// with the full-set unread count.
func (s *Service) Feed(ctx context.Context, userID string, opts ListOptions) (*FeedPage, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}

	items, err := s.storage.List(ctx, userID, opts)
	if err != nil {
		s.log.ErrorContext(ctx, "list notifications failed",
			logger.UserID(userID), logger.Error(err))
		return nil, err
	}

	// unread count always spans the full set, never the filtered view
	unread, err := s.storage.CountUnread(ctx, userID)
	if err != nil {
		s.log.ErrorContext(ctx, "count unread failed",
			logger.UserID(userID), logger.Error(err))
		return nil, err
	}

	return &FeedPage{Notifications: items, UnreadCount: unread}, nil
}

// MarkRead marks the given notifications read. Empty input is a no-op.
func (s *Service) MarkRead(ctx context.Context, userID string, ids ...string) error {
	if userID == "" {
		return ErrMissingUserID
	}
	if len(ids) == 0 {
		return nil
	}

	if err := s.storage.MarkRead(ctx, userID, ids...); err != nil {
		s.log.ErrorContext(ctx, "mark read failed",
			logger.UserID(userID), logger.Error(err))
		return err
	}

	s.log.InfoContext(ctx, "notifications marked read",
		logger.UserID(userID), logger.Count(len(ids)))
	return nil
}

// MarkAllRead marks every unread notification read.
func (s *Service) MarkAllRead(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrMissingUserID
	}

	if err := s.storage.MarkAllRead(ctx, userID); err != nil {
		s.log.ErrorContext(ctx, "mark all read failed",
			logger.UserID(userID), logger.Error(err))
		return err
	}

	s.log.InfoContext(ctx, "all notifications marked read", logger.UserID(userID))
	return nil
}

// DeleteOne deletes a single notification, reporting ErrNotFound when it
// does not exist for the user.
func (s *Service) DeleteOne(ctx context.Context, userID, id string) error {
	if userID == "" {
		return ErrMissingUserID
	}
	if id == "" {
		return ErrMissingID
	}

	count, err := s.storage.Delete(ctx, userID, id)
	if err != nil {
		s.log.ErrorContext(ctx, "delete notification failed",
			logger.UserID(userID), logger.NotificationID(id), logger.Error(err))
		return err
	}
	if count == 0 {
		return ErrNotFound
	}

	s.log.InfoContext(ctx, "notification deleted",
		logger.UserID(userID), logger.NotificationID(id))
	return nil
}

// DeleteMany deletes a set of notifications, returning how many existed.
func (s *Service) DeleteMany(ctx context.Context, userID string, ids ...string) (int, error) {
	if userID == "" {
		return 0, ErrMissingUserID
	}
	if len(ids) == 0 {
		return 0, nil
	}

	count, err := s.storage.Delete(ctx, userID, ids...)
	if err != nil {
		s.log.ErrorContext(ctx, "delete notifications failed",
			logger.UserID(userID), logger.Error(err))
		return 0, err
	}

	s.log.InfoContext(ctx, "notifications deleted",
		logger.UserID(userID), logger.Count(count))
	return count, nil
}

// DeleteAllRead deletes every read notification, returning the count.
func (s *Service) DeleteAllRead(ctx context.Context, userID string) (int, error) {
	if userID == "" {
		return 0, ErrMissingUserID
	}

	count, err := s.storage.DeleteAllRead(ctx, userID)
	if err != nil {
		s.log.ErrorContext(ctx, "delete read notifications failed",
			logger.UserID(userID), logger.Error(err))
		return 0, err
	}

	s.log.InfoContext(ctx, "read notifications deleted",
		logger.UserID(userID), logger.Count(count))
	return count, nil
}

func nowUTC() time.Time {
	return time.Now().UTC()
}
