package notification

import (
	"time"
)

// SourceType identifies which domain event produced a notification.
// The set is closed; values outside it fail Validate.
type SourceType string

const (
	SourceAttendee       SourceType = "ATTENDEE"
	SourceFriendRequest  SourceType = "FRIEND_REQUEST"
	SourceEventUpdate    SourceType = "EVENT_UPDATE"
	SourceEventCancelled SourceType = "EVENT_CANCELLED"
	SourceEventReminder  SourceType = "EVENT_REMINDER"
	SourceComment        SourceType = "COMMENT"
	SourceMention        SourceType = "MENTION"
	SourceSystem         SourceType = "SYSTEM"
)

// Valid reports whether s is one of the known source types.
func (s SourceType) Valid() bool {
	switch s {
	case SourceAttendee, SourceFriendRequest, SourceEventUpdate,
		SourceEventCancelled, SourceEventReminder, SourceComment,
		SourceMention, SourceSystem:
		return true
	}
	return false
}

// Priority represents the notification priority level.
// Priority affects visual emphasis only, never ordering.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityNormal
	PriorityHigh
	PriorityUrgent
)

// Valid reports whether p is within the supported range.
func (p Priority) Valid() bool {
	return p >= PriorityLow && p <= PriorityUrgent
}

// Notification is the core domain model. Server-issued and immutable on the
// client except for its read state.
type Notification struct {
	ID           string     `json:"id"`
	TargetUserID string     `json:"target_user_id"`
	SourceType   SourceType `json:"source_type"`
	Message      string     `json:"message"`
	Link         string     `json:"link,omitempty"`
	Payload      Payload    `json:"payload,omitempty"`
	Priority     Priority   `json:"priority"`
	IsRead       bool       `json:"is_read"`
	ReadAt       *time.Time `json:"read_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// MarkRead flips the read state and stamps ReadAt with the given time.
// Marking an already-read notification is a no-op, preserving the original
// ReadAt timestamp.
func (n *Notification) MarkRead(at time.Time) {
	if n.IsRead {
		return
	}
	n.IsRead = true
	n.ReadAt = &at
}

// Validate checks the model invariants: a known source type, a priority in
// range, a payload variant matching the source type, and ReadAt present if
// and only if IsRead is set.
func (n *Notification) Validate() error {
	if n.ID == "" {
		return ErrMissingID
	}
	if !n.SourceType.Valid() {
		return ErrInvalidSourceType
	}
	if !n.Priority.Valid() {
		return ErrInvalidPriority
	}
	if n.IsRead != (n.ReadAt != nil) {
		return ErrReadStateMismatch
	}
	if n.Payload != nil && !payloadMatches(n.SourceType, n.Payload) {
		return ErrPayloadMismatch
	}
	return nil
}

// Before reports whether n sorts after other in the canonical feed order:
// CreatedAt descending, ties broken by ID ascending so repeated fetches are
// deterministic.
func (n *Notification) Before(other *Notification) bool {
	if !n.CreatedAt.Equal(other.CreatedAt) {
		return n.CreatedAt.After(other.CreatedAt)
	}
	return n.ID < other.ID
}
