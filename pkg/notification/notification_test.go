package notification

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotification_MarkRead(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	n := Notification{
		ID:         "notif-1",
		SourceType: SourceSystem,
		Message:    "Welcome to Gatherly",
		CreatedAt:  now.Add(-time.Hour),
	}

	n.MarkRead(now)
	require.True(t, n.IsRead)
	require.NotNil(t, n.ReadAt)
	assert.Equal(t, now, *n.ReadAt)

	// Marking again must not move the timestamp.
	later := now.Add(time.Minute)
	n.MarkRead(later)
	assert.Equal(t, now, *n.ReadAt)
}

func TestNotification_Validate(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		notif   Notification
		wantErr error
	}{
		{
			name: "valid unread system notice",
			notif: Notification{
				ID:         "notif-1",
				SourceType: SourceSystem,
				Message:    "maintenance tonight",
				CreatedAt:  now,
			},
		},
		{
			name: "valid read friend request with payload",
			notif: Notification{
				ID:         "notif-2",
				SourceType: SourceFriendRequest,
				Payload:    FriendRequestPayload{Sender: Sender{ID: "u-9", Username: "ada"}},
				IsRead:     true,
				ReadAt:     &now,
				CreatedAt:  now,
			},
		},
		{
			name:    "missing id",
			notif:   Notification{SourceType: SourceSystem, CreatedAt: now},
			wantErr: ErrMissingID,
		},
		{
			name:    "unknown source type",
			notif:   Notification{ID: "notif-3", SourceType: "SHOUT", CreatedAt: now},
			wantErr: ErrInvalidSourceType,
		},
		{
			name:    "priority out of range",
			notif:   Notification{ID: "notif-4", SourceType: SourceSystem, Priority: 7, CreatedAt: now},
			wantErr: ErrInvalidPriority,
		},
		{
			name:    "read without read_at",
			notif:   Notification{ID: "notif-5", SourceType: SourceSystem, IsRead: true, CreatedAt: now},
			wantErr: ErrReadStateMismatch,
		},
		{
			name:    "read_at without read",
			notif:   Notification{ID: "notif-6", SourceType: SourceSystem, ReadAt: &now, CreatedAt: now},
			wantErr: ErrReadStateMismatch,
		},
		{
			name: "event payload on friend request",
			notif: Notification{
				ID:         "notif-7",
				SourceType: SourceFriendRequest,
				Payload:    EventPayload{Event: EventSummary{ID: "ev-1"}},
				CreatedAt:  now,
			},
			wantErr: ErrPayloadMismatch,
		},
		{
			name: "payload on system notice",
			notif: Notification{
				ID:         "notif-8",
				SourceType: SourceSystem,
				Payload:    FriendRequestPayload{},
				CreatedAt:  now,
			},
			wantErr: ErrPayloadMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.notif.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestNotification_JSONPayloadVariants(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("friend request round trip", func(t *testing.T) {
		in := Notification{
			ID:           "notif-1",
			TargetUserID: "u-1",
			SourceType:   SourceFriendRequest,
			Message:      "ada wants to be your friend",
			Link:         "/friends/requests",
			Payload: FriendRequestPayload{
				Sender: Sender{ID: "u-9", Name: "Ada", Username: "ada"},
			},
			CreatedAt: created,
		}

		data, err := json.Marshal(in)
		require.NoError(t, err)

		var out Notification
		require.NoError(t, json.Unmarshal(data, &out))

		p, ok := out.Payload.(FriendRequestPayload)
		require.True(t, ok, "expected FriendRequestPayload, got %T", out.Payload)
		assert.Equal(t, "ada", p.Sender.Username)
	})

	t.Run("event reminder round trip", func(t *testing.T) {
		in := Notification{
			ID:         "notif-2",
			SourceType: SourceEventReminder,
			Message:    "Board games night starts in an hour",
			Payload: EventPayload{
				Event: EventSummary{ID: "ev-3", Title: "Board games night"},
				User:  UserSummary{ID: "u-2", Name: "Grace"},
			},
			CreatedAt: created,
		}

		data, err := json.Marshal(in)
		require.NoError(t, err)

		var out Notification
		require.NoError(t, json.Unmarshal(data, &out))

		p, ok := out.Payload.(EventPayload)
		require.True(t, ok, "expected EventPayload, got %T", out.Payload)
		assert.Equal(t, "ev-3", p.Event.ID)
	})

	t.Run("payloadless system notice", func(t *testing.T) {
		data := []byte(`{"id":"notif-3","source_type":"SYSTEM","message":"scheduled downtime","created_at":"2026-01-02T03:04:05Z"}`)

		var out Notification
		require.NoError(t, json.Unmarshal(data, &out))
		assert.Nil(t, out.Payload)
	})

	t.Run("payload under payloadless source type", func(t *testing.T) {
		data := []byte(`{"id":"notif-4","source_type":"SYSTEM","payload":{"sender":{"id":"u-1"}},"created_at":"2026-01-02T03:04:05Z"}`)

		var out Notification
		err := json.Unmarshal(data, &out)
		assert.ErrorIs(t, err, ErrPayloadMismatch)
	})
}

func TestNotification_Before(t *testing.T) {
	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	newer := &Notification{ID: "b", CreatedAt: base.Add(time.Minute)}
	older := &Notification{ID: "a", CreatedAt: base}

	assert.True(t, newer.Before(older), "newer items sort first")
	assert.False(t, older.Before(newer))

	// Equal timestamps fall back to ID order for deterministic output.
	tieA := &Notification{ID: "a", CreatedAt: base}
	tieB := &Notification{ID: "b", CreatedAt: base}
	assert.True(t, tieA.Before(tieB))
	assert.False(t, tieB.Before(tieA))
}
