package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilter(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Filter
		wantErr bool
	}{
		{name: "empty means all", in: "", want: FilterAll},
		{name: "all", in: "all", want: FilterAll},
		{name: "unread", in: "unread", want: FilterUnread},
		{name: "events", in: "events", want: FilterEvents},
		{name: "friends", in: "friends", want: FilterFriends},
		{name: "system", in: "system", want: FilterSystem},
		{name: "unknown", in: "starred", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFilter(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidFilter)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilter_Matches(t *testing.T) {
	byType := func(st SourceType) *Notification {
		return &Notification{ID: "n", SourceType: st}
	}

	t.Run("friends matches exactly the friend request type", func(t *testing.T) {
		all := []SourceType{
			SourceAttendee, SourceFriendRequest, SourceEventUpdate,
			SourceEventCancelled, SourceEventReminder, SourceComment,
			SourceMention, SourceSystem,
		}
		for _, st := range all {
			got := FilterFriends.Matches(byType(st))
			assert.Equal(t, st == SourceFriendRequest, got, "source type %s", st)
		}
	})

	t.Run("events matches the attendee family", func(t *testing.T) {
		family := map[SourceType]bool{
			SourceAttendee:       true,
			SourceEventUpdate:    true,
			SourceEventCancelled: true,
			SourceEventReminder:  true,
		}
		all := []SourceType{
			SourceAttendee, SourceFriendRequest, SourceEventUpdate,
			SourceEventCancelled, SourceEventReminder, SourceComment,
			SourceMention, SourceSystem,
		}
		for _, st := range all {
			assert.Equal(t, family[st], FilterEvents.Matches(byType(st)), "source type %s", st)
		}
	})

	t.Run("unread matches read state regardless of type", func(t *testing.T) {
		unread := &Notification{ID: "a", SourceType: SourceComment}
		read := &Notification{ID: "b", SourceType: SourceComment, IsRead: true}
		assert.True(t, FilterUnread.Matches(unread))
		assert.False(t, FilterUnread.Matches(read))
	})

	t.Run("comments and mentions appear only under all and unread", func(t *testing.T) {
		for _, st := range []SourceType{SourceComment, SourceMention} {
			n := byType(st)
			assert.True(t, FilterAll.Matches(n))
			assert.True(t, FilterUnread.Matches(n))
			assert.False(t, FilterEvents.Matches(n))
			assert.False(t, FilterFriends.Matches(n))
			assert.False(t, FilterSystem.Matches(n))
		}
	})
}

func TestCategory(t *testing.T) {
	assert.Equal(t, FilterFriends, Category(SourceFriendRequest))
	assert.Equal(t, FilterSystem, Category(SourceSystem))
	for _, st := range []SourceType{SourceAttendee, SourceEventUpdate, SourceEventCancelled, SourceEventReminder} {
		assert.Equal(t, FilterEvents, Category(st))
	}
	assert.Equal(t, FilterAll, Category(SourceComment))
	assert.Equal(t, FilterAll, Category(SourceMention))
}

func TestFilter_Query(t *testing.T) {
	assert.Empty(t, FilterAll.Query())

	q := FilterUnread.Query()
	assert.Equal(t, "false", q.Get("read"))
	assert.Empty(t, q["type"])

	q = FilterEvents.Query()
	assert.ElementsMatch(t,
		[]string{"ATTENDEE", "EVENT_UPDATE", "EVENT_CANCELLED", "EVENT_REMINDER"},
		q["type"])

	q = FilterFriends.Query()
	assert.Equal(t, []string{"FRIEND_REQUEST"}, q["type"])

	q = FilterSystem.Query()
	assert.Equal(t, []string{"SYSTEM"}, q["type"])
}
