package inbox

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatherly/notify/pkg/notification"
)

var storeEpoch = time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

// seedStore fills a store with n notifications, alternating read state when
// mixed is true. Items are ordered newest first like a server response.
func seedStore(t *testing.T, s *Store, items ...notification.Notification) {
	t.Helper()
	unread := 0
	for _, n := range items {
		if !n.IsRead {
			unread++
		}
	}
	gen := s.NextGeneration()
	require.True(t, s.Replace(gen, items, unread))
}

func unreadItem(id string, st notification.SourceType, age time.Duration) notification.Notification {
	return notification.Notification{
		ID:         id,
		SourceType: st,
		Message:    "message " + id,
		CreatedAt:  storeEpoch.Add(-age),
	}
}

func readItem(id string, st notification.SourceType, age time.Duration) notification.Notification {
	n := unreadItem(id, st, age)
	readAt := n.CreatedAt.Add(time.Minute)
	n.IsRead = true
	n.ReadAt = &readAt
	return n
}

func TestStore_ReplaceAdoptsServerState(t *testing.T) {
	s := NewStore()
	seedStore(t, s,
		unreadItem("n1", notification.SourceFriendRequest, 0),
		readItem("n2", notification.SourceAttendee, time.Hour),
	)

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 1, s.UnreadCount())
}

func TestStore_ReplaceDiscardsStaleGenerations(t *testing.T) {
	s := NewStore()

	// Two overlapping fetches: the older one resolves last.
	genOld := s.NextGeneration()
	genNew := s.NextGeneration()

	applied := s.Replace(genNew, []notification.Notification{
		unreadItem("fresh", notification.SourceSystem, 0),
	}, 1)
	require.True(t, applied)

	applied = s.Replace(genOld, []notification.Notification{
		unreadItem("stale", notification.SourceSystem, time.Hour),
	}, 5)
	assert.False(t, applied, "older generation must be discarded")

	snap := s.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, "fresh", snap[0].ID)
	assert.Equal(t, 1, s.UnreadCount())
}

func TestStore_ReplaceIsNotAMerge(t *testing.T) {
	s := NewStore()
	seedStore(t, s, unreadItem("n1", notification.SourceSystem, 0))

	// The user deletes n1 locally; a poll that started before the delete
	// can legally resurrect it. Accepted inconsistency window.
	s.Delete("n1")
	assert.Equal(t, 0, s.Len())

	gen := s.NextGeneration()
	require.True(t, s.Replace(gen, []notification.Notification{
		unreadItem("n1", notification.SourceSystem, 0),
	}, 1))
	assert.Equal(t, 1, s.Len())
}

func TestStore_MarkRead(t *testing.T) {
	now := storeEpoch
	s := NewStore(WithNow(func() time.Time { return now }))
	seedStore(t, s,
		unreadItem("n1", notification.SourceFriendRequest, 0),
		unreadItem("n2", notification.SourceAttendee, time.Hour),
		readItem("n3", notification.SourceSystem, 2*time.Hour),
	)

	flipped := s.MarkRead("n1", "n3", "missing")
	assert.Equal(t, []string{"n1"}, flipped, "only previously-unread held ids flip")
	assert.Equal(t, 1, s.UnreadCount())

	n1, ok := s.Get("n1")
	require.True(t, ok)
	require.NotNil(t, n1.ReadAt)
	assert.Equal(t, now, *n1.ReadAt)
}

func TestStore_MarkReadIdempotence(t *testing.T) {
	s := NewStore()
	seedStore(t, s, unreadItem("n1", notification.SourceComment, 0))

	s.MarkRead("n1")
	s.MarkRead("n1")
	s.MarkRead("n1")

	assert.Equal(t, 0, s.UnreadCount(), "repeated mark-read must never go negative")
}

func TestStore_MarkAllRead(t *testing.T) {
	s := NewStore()
	seedStore(t, s,
		unreadItem("n1", notification.SourceFriendRequest, 0),
		unreadItem("n2", notification.SourceEventUpdate, time.Hour),
		readItem("n3", notification.SourceSystem, 2*time.Hour),
	)

	flipped := s.MarkAllRead()
	assert.ElementsMatch(t, []string{"n1", "n2"}, flipped)
	assert.Equal(t, 0, s.UnreadCount())
	for _, n := range s.Snapshot() {
		assert.True(t, n.IsRead, "notification %s still unread", n.ID)
		assert.NotNil(t, n.ReadAt)
	}
}

func TestStore_MarkUnreadRollback(t *testing.T) {
	s := NewStore()
	seedStore(t, s,
		unreadItem("n1", notification.SourceMention, 0),
		readItem("n2", notification.SourceSystem, time.Hour),
	)

	flipped := s.MarkRead("n1")
	require.Equal(t, 0, s.UnreadCount())

	reverted := s.MarkUnread(flipped...)
	assert.Equal(t, 1, reverted)
	assert.Equal(t, 1, s.UnreadCount())

	n1, _ := s.Get("n1")
	assert.False(t, n1.IsRead)
	assert.Nil(t, n1.ReadAt)

	// n2 was read before the optimistic flip and must stay read.
	n2, _ := s.Get("n2")
	assert.True(t, n2.IsRead)
}

func TestStore_Delete(t *testing.T) {
	t.Run("deleting an unread item decrements the counter by one", func(t *testing.T) {
		s := NewStore()
		seedStore(t, s,
			unreadItem("n1", notification.SourceFriendRequest, 0),
			readItem("n2", notification.SourceAttendee, time.Hour),
		)

		removed, unreadRemoved := s.Delete("n1")
		require.Len(t, removed, 1)
		assert.Equal(t, 1, unreadRemoved)
		assert.Equal(t, 0, s.UnreadCount())
	})

	t.Run("deleting a read item leaves the counter unchanged", func(t *testing.T) {
		s := NewStore()
		seedStore(t, s,
			unreadItem("n1", notification.SourceFriendRequest, 0),
			readItem("n2", notification.SourceAttendee, time.Hour),
		)

		removed, unreadRemoved := s.Delete("n2")
		require.Len(t, removed, 1)
		assert.Equal(t, 0, unreadRemoved)
		assert.Equal(t, 1, s.UnreadCount())
	})

	t.Run("unknown ids are ignored", func(t *testing.T) {
		s := NewStore()
		seedStore(t, s, unreadItem("n1", notification.SourceSystem, 0))

		removed, _ := s.Delete("nope")
		assert.Empty(t, removed)
		assert.Equal(t, 1, s.Len())
	})
}

func TestStore_RestoreReinsertsInFeedOrder(t *testing.T) {
	s := NewStore()
	seedStore(t, s,
		unreadItem("n1", notification.SourceSystem, 0),
		unreadItem("n2", notification.SourceSystem, time.Hour),
		unreadItem("n3", notification.SourceSystem, 2*time.Hour),
	)

	removed, _ := s.Delete("n2")
	require.Len(t, removed, 1)
	assert.Equal(t, 2, s.UnreadCount())

	s.Restore(removed)
	assert.Equal(t, 3, s.UnreadCount())

	snap := s.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, []string{"n1", "n2", "n3"}, []string{snap[0].ID, snap[1].ID, snap[2].ID},
		"restored item returns to its CreatedAt position")
}

func TestStore_VisibleAppliesClientSideFilter(t *testing.T) {
	s := NewStore()
	seedStore(t, s,
		unreadItem("n1", notification.SourceFriendRequest, 0),
		readItem("n2", notification.SourceAttendee, time.Hour),
	)

	visible := s.Visible(notification.FilterUnread)
	require.Len(t, visible, 1)
	assert.Equal(t, "n1", visible[0].ID)

	s.MarkRead("n1")
	assert.Equal(t, 0, s.UnreadCount())
	n1, _ := s.Get("n1")
	assert.True(t, n1.IsRead)
}

func TestStore_NewestUnread(t *testing.T) {
	s := NewStore()

	_, ok := s.NewestUnread()
	assert.False(t, ok)

	seedStore(t, s,
		readItem("n0", notification.SourceSystem, 0),
		unreadItem("n1", notification.SourceFriendRequest, time.Hour),
		unreadItem("n2", notification.SourceAttendee, 2*time.Hour),
	)

	newest, ok := s.NewestUnread()
	require.True(t, ok)
	assert.Equal(t, "n1", newest.ID, "read items never win, newer unread wins")
}

func TestStore_OnChange(t *testing.T) {
	s := NewStore()
	changes := 0
	s.OnChange(func() { changes++ })

	seedStore(t, s, unreadItem("n1", notification.SourceSystem, 0))
	assert.Equal(t, 1, changes)

	s.MarkRead("n1")
	assert.Equal(t, 2, changes)

	// No-op mutations stay silent.
	s.MarkRead("n1")
	s.Delete("unknown")
	assert.Equal(t, 2, changes)

	s.Delete("n1")
	assert.Equal(t, 3, changes)
}
