package notification

import (
	"encoding/json"
	"fmt"
	"time"
)

// Payload is the tagged per-source payload variant. The concrete type is
// determined by the notification's SourceType, so accessing the wrong
// variant's fields requires an explicit, checked type assertion.
type Payload interface {
	isPayload()
}

// Sender describes the user behind a friend request.
type Sender struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url,omitempty"`
	Username string `json:"username"`
}

// FriendRequestPayload is carried only by FRIEND_REQUEST notifications.
type FriendRequestPayload struct {
	Sender Sender `json:"sender"`
}

func (FriendRequestPayload) isPayload() {}

// EventSummary is a minimal projection of the event a notification refers to.
type EventSummary struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	StartsAt time.Time `json:"starts_at,omitzero"`
}

// UserSummary is a minimal projection of the acting user.
type UserSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// EventPayload is carried by the ATTENDEE family of notifications
// (ATTENDEE, EVENT_UPDATE, EVENT_CANCELLED, EVENT_REMINDER).
type EventPayload struct {
	Event EventSummary `json:"event"`
	User  UserSummary  `json:"user,omitzero"`
}

func (EventPayload) isPayload() {}

// payloadMatches reports whether the payload variant is legal for the
// given source type. A nil payload is always legal.
func payloadMatches(st SourceType, p Payload) bool {
	switch p.(type) {
	case FriendRequestPayload, *FriendRequestPayload:
		return st == SourceFriendRequest
	case EventPayload, *EventPayload:
		switch st {
		case SourceAttendee, SourceEventUpdate, SourceEventCancelled, SourceEventReminder:
			return true
		}
		return false
	}
	return false
}

// wireNotification mirrors Notification with the payload kept raw so the
// variant can be decoded against the source type tag.
type wireNotification struct {
	ID           string          `json:"id"`
	TargetUserID string          `json:"target_user_id"`
	SourceType   SourceType      `json:"source_type"`
	Message      string          `json:"message"`
	Link         string          `json:"link,omitempty"`
	Payload      json.RawMessage `json:"payload,omitempty"`
	Priority     Priority        `json:"priority"`
	IsRead       bool            `json:"is_read"`
	ReadAt       *time.Time      `json:"read_at,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// MarshalJSON encodes the payload variant in place under the "payload" key.
func (n Notification) MarshalJSON() ([]byte, error) {
	wire := wireNotification{
		ID:           n.ID,
		TargetUserID: n.TargetUserID,
		SourceType:   n.SourceType,
		Message:      n.Message,
		Link:         n.Link,
		Priority:     n.Priority,
		IsRead:       n.IsRead,
		ReadAt:       n.ReadAt,
		CreatedAt:    n.CreatedAt,
	}
	if n.Payload != nil {
		raw, err := EncodePayload(n.SourceType, n.Payload)
		if err != nil {
			return nil, err
		}
		wire.Payload = raw
	}
	return json.Marshal(wire)
}

// EncodePayload serializes a payload variant to JSON.
func EncodePayload(st SourceType, p Payload) ([]byte, error) {
	if p == nil {
		return nil, nil
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", st, err)
	}
	return raw, nil
}

// DecodePayload deserializes raw JSON into the payload variant selected
// by the source type. Empty and null input yield a nil payload; a payload
// on a source type that carries none is ErrPayloadMismatch.
func DecodePayload(st SourceType, raw []byte) (Payload, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	switch st {
	case SourceFriendRequest:
		var p FriendRequestPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", st, err)
		}
		return p, nil
	case SourceAttendee, SourceEventUpdate, SourceEventCancelled, SourceEventReminder:
		var p EventPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", st, err)
		}
		return p, nil
	default:
		return nil, fmt.Errorf("%w: source type %s carries no payload", ErrPayloadMismatch, st)
	}
}

// UnmarshalJSON decodes the payload into the variant selected by the
// source type tag. A payload on a source type that carries none is an error
// rather than a silently dropped field.
func (n *Notification) UnmarshalJSON(data []byte) error {
	var wire wireNotification
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	*n = Notification{
		ID:           wire.ID,
		TargetUserID: wire.TargetUserID,
		SourceType:   wire.SourceType,
		Message:      wire.Message,
		Link:         wire.Link,
		Priority:     wire.Priority,
		IsRead:       wire.IsRead,
		ReadAt:       wire.ReadAt,
		CreatedAt:    wire.CreatedAt,
	}

	p, err := DecodePayload(wire.SourceType, wire.Payload)
	if err != nil {
		return err
	}
	n.Payload = p
	return nil
}
