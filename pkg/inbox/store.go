package inbox

import (
	"slices"
	"sync"
	"time"

	"github.com/gatherly/notify/pkg/notification"
)

// Store is the canonical in-memory collection of the signed-in user's
// notifications, together with the unread counter. A successful fetch
// replaces the whole list (reconciliation); between fetches the store
// accepts optimistic local mutations that every presenter sees immediately.
//
// The unread counter always covers the full per-user set, never a filtered
// subset; the badge must reflect all pending items regardless of which
// filter tab is selected.
type Store struct {
	mu      sync.Mutex
	items   []notification.Notification
	unread  int
	issued  uint64
	applied uint64
	now     func() time.Time

	onChange []func()
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithNow injects the clock used to stamp ReadAt on optimistic mark-read.
func WithNow(now func() time.Time) StoreOption {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// NewStore creates an empty Store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OnChange registers a callback invoked after every state change. Callbacks
// run outside the store lock and must not assume any particular order.
func (s *Store) OnChange(fn func()) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.onChange = append(s.onChange, fn)
	s.mu.Unlock()
}

func (s *Store) notifyChanged() {
	s.mu.Lock()
	callbacks := slices.Clone(s.onChange)
	s.mu.Unlock()
	for _, fn := range callbacks {
		fn()
	}
}

// NextGeneration issues a new request generation number. Every fetch takes
// one before going to the network; only the response carrying the highest
// issued generation is ever applied, which closes the stale-overwrite race
// between overlapping polls.
func (s *Store) NextGeneration() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	return s.issued
}

// Replace reconciles the store against a server response: the held list is
// replaced wholesale (not merged) and the unread counter is taken from the
// server value. A response is applied only when it carries the latest issued
// generation; anything older is discarded and Replace reports false.
func (s *Store) Replace(gen uint64, items []notification.Notification, unread int) bool {
	s.mu.Lock()
	if gen != s.issued || gen <= s.applied {
		s.mu.Unlock()
		return false
	}
	s.applied = gen
	s.items = slices.Clone(items)
	s.unread = max(unread, 0)
	s.mu.Unlock()

	s.notifyChanged()
	return true
}

// MarkRead optimistically flips the given notifications to read, stamping
// ReadAt with the store clock, and returns the ids that actually changed
// state. The unread counter drops only by that number, so repeating a call
// can never drive it negative.
func (s *Store) MarkRead(ids ...string) []string {
	s.mu.Lock()
	now := s.now()
	var flipped []string
	for _, id := range ids {
		for i := range s.items {
			if s.items[i].ID != id || s.items[i].IsRead {
				continue
			}
			s.items[i].MarkRead(now)
			s.unread--
			flipped = append(flipped, id)
		}
	}
	if s.unread < 0 {
		s.unread = 0
	}
	s.mu.Unlock()

	if len(flipped) > 0 {
		s.notifyChanged()
	}
	return flipped
}

// MarkAllRead flips every unread notification and zeroes the counter,
// returning the ids that changed.
func (s *Store) MarkAllRead() []string {
	s.mu.Lock()
	now := s.now()
	var flipped []string
	for i := range s.items {
		if s.items[i].IsRead {
			continue
		}
		s.items[i].MarkRead(now)
		flipped = append(flipped, s.items[i].ID)
	}
	s.unread = 0
	s.mu.Unlock()

	if len(flipped) > 0 {
		s.notifyChanged()
	}
	return flipped
}

// MarkUnread reverts an optimistic mark-read for the given ids. It exists
// for rollback after a failed write and restores the unread counter by the
// number of items actually reverted.
func (s *Store) MarkUnread(ids ...string) int {
	s.mu.Lock()
	reverted := 0
	for _, id := range ids {
		for i := range s.items {
			if s.items[i].ID != id || !s.items[i].IsRead {
				continue
			}
			s.items[i].IsRead = false
			s.items[i].ReadAt = nil
			s.unread++
			reverted++
		}
	}
	s.mu.Unlock()

	if reverted > 0 {
		s.notifyChanged()
	}
	return reverted
}

// Delete optimistically removes the given ids and returns the removed
// notifications (for potential rollback) along with how many of them were
// unread. The unread counter drops by exactly that number.
func (s *Store) Delete(ids ...string) ([]notification.Notification, int) {
	s.mu.Lock()
	var removed []notification.Notification
	unreadRemoved := 0
	for _, id := range ids {
		for i := range s.items {
			if s.items[i].ID != id {
				continue
			}
			removed = append(removed, s.items[i])
			if !s.items[i].IsRead {
				unreadRemoved++
				s.unread--
			}
			s.items = slices.Delete(s.items, i, i+1)
			break
		}
	}
	if s.unread < 0 {
		s.unread = 0
	}
	s.mu.Unlock()

	if len(removed) > 0 {
		s.notifyChanged()
	}
	return removed, unreadRemoved
}

// Restore reinserts previously deleted notifications in canonical feed
// order, restoring the unread counter for any that were unread. It is the
// rollback half of Delete.
func (s *Store) Restore(items []notification.Notification) {
	if len(items) == 0 {
		return
	}
	s.mu.Lock()
	for _, item := range items {
		if slices.ContainsFunc(s.items, func(n notification.Notification) bool { return n.ID == item.ID }) {
			continue
		}
		s.items = append(s.items, item)
		if !item.IsRead {
			s.unread++
		}
	}
	slices.SortFunc(s.items, func(a, b notification.Notification) int {
		if a.Before(&b) {
			return -1
		}
		if b.Before(&a) {
			return 1
		}
		return 0
	})
	s.mu.Unlock()

	s.notifyChanged()
}

// UnreadCount returns the unread total across the entire feed.
func (s *Store) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unread
}

// Len returns the number of held notifications.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Snapshot returns a copy of the full held list.
func (s *Store) Snapshot() []notification.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

// Visible returns a copy of the held list narrowed by the filter. This is
// the defensive client-side re-filter: even if the server ignored the query
// constraint, the view stays correct.
func (s *Store) Visible(f notification.Filter) []notification.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []notification.Notification
	for i := range s.items {
		if f.Matches(&s.items[i]) {
			out = append(out, s.items[i])
		}
	}
	return out
}

// Get returns a copy of the notification with the given id.
func (s *Store) Get(id string) (notification.Notification, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			return s.items[i], true
		}
	}
	return notification.Notification{}, false
}

// ReadIDs returns the ids of all read notifications in the held list.
func (s *Store) ReadIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []string
	for i := range s.items {
		if s.items[i].IsRead {
			ids = append(ids, s.items[i].ID)
		}
	}
	return ids
}

// NewestUnread returns a copy of the most recent unread notification, if any.
func (s *Store) NewestUnread() (notification.Notification, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var newest *notification.Notification
	for i := range s.items {
		if s.items[i].IsRead {
			continue
		}
		if newest == nil || s.items[i].Before(newest) {
			newest = &s.items[i]
		}
	}
	if newest == nil {
		return notification.Notification{}, false
	}
	return *newest, true
}
