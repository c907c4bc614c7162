package notifications

import (
	"context"
	"sort"
	"sync"

	"github.com/gatherly/notify/pkg/notification"
)

// MemoryStorage is an in-memory Storage implementation, suitable for
// development and testing.
type MemoryStorage struct {
	mu    sync.RWMutex
	feeds map[string][]notification.Notification // userID -> notifications
}

// NewMemoryStorage creates an empty in-memory notification storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{feeds: make(map[string][]notification.Notification)}
}

func (s *MemoryStorage) Create(ctx context.Context, n notification.Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}
	if n.TargetUserID == "" {
		return ErrMissingUserID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.feeds[n.TargetUserID] = append(s.feeds[n.TargetUserID], n)
	return nil
}

func (s *MemoryStorage) Get(ctx context.Context, userID, id string) (*notification.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, n := range s.feeds[userID] {
		if n.ID == id {
			// copy to prevent external mutation of stored data
			out := n
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStorage) List(ctx context.Context, userID string, opts ListOptions) ([]notification.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	filtered := make([]notification.Notification, 0)
	for _, n := range s.feeds[userID] {
		if opts.matches(&n) {
			filtered = append(filtered, n)
		}
	}

	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].Before(&filtered[j])
	})

	start := opts.Offset
	if start > len(filtered) {
		return []notification.Notification{}, nil
	}
	end := len(filtered)
	if opts.Limit > 0 && start+opts.Limit < end {
		end = start + opts.Limit
	}
	return filtered[start:end], nil
}

func (s *MemoryStorage) MarkRead(ctx context.Context, userID string, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idSet := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		idSet[id] = struct{}{}
	}

	feed := s.feeds[userID]
	for i := range feed {
		if _, ok := idSet[feed[i].ID]; ok {
			feed[i].MarkRead(nowUTC())
		}
	}
	return nil
}

func (s *MemoryStorage) MarkAllRead(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	feed := s.feeds[userID]
	for i := range feed {
		feed[i].MarkRead(nowUTC())
	}
	return nil
}

func (s *MemoryStorage) Delete(ctx context.Context, userID string, ids ...string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idSet := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		idSet[id] = struct{}{}
	}

	kept := make([]notification.Notification, 0, len(s.feeds[userID]))
	deleted := 0
	for _, n := range s.feeds[userID] {
		if _, ok := idSet[n.ID]; ok {
			deleted++
			continue
		}
		kept = append(kept, n)
	}
	s.feeds[userID] = kept
	return deleted, nil
}

func (s *MemoryStorage) DeleteAllRead(ctx context.Context, userID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]notification.Notification, 0, len(s.feeds[userID]))
	deleted := 0
	for _, n := range s.feeds[userID] {
		if n.IsRead {
			deleted++
			continue
		}
		kept = append(kept, n)
	}
	s.feeds[userID] = kept
	return deleted, nil
}

func (s *MemoryStorage) CountUnread(ctx context.Context, userID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, n := range s.feeds[userID] {
		if !n.IsRead {
			count++
		}
	}
	return count, nil
}
