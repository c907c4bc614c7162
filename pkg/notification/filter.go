package notification

import (
	"net/url"
	"strconv"
)

// Filter selects a slice of the feed, either as a server query constraint
// or as a client-side predicate over an already-held list.
type Filter string

const (
	FilterAll     Filter = "all"
	FilterUnread  Filter = "unread"
	FilterEvents  Filter = "events"
	FilterFriends Filter = "friends"
	FilterSystem  Filter = "system"
)

// eventSources is the ATTENDEE family matched by FilterEvents.
var eventSources = []SourceType{
	SourceAttendee,
	SourceEventUpdate,
	SourceEventCancelled,
	SourceEventReminder,
}

// Valid reports whether f is a known filter value.
func (f Filter) Valid() bool {
	switch f {
	case FilterAll, FilterUnread, FilterEvents, FilterFriends, FilterSystem:
		return true
	}
	return false
}

// ParseFilter converts a raw string into a Filter. The empty string means
// "all"; anything else unknown is rejected.
func ParseFilter(s string) (Filter, error) {
	if s == "" {
		return FilterAll, nil
	}
	f := Filter(s)
	if !f.Valid() {
		return "", ErrInvalidFilter
	}
	return f, nil
}

// SourceTypes returns the set of source types the filter constrains to.
// FilterAll and FilterUnread constrain by read state only and return nil.
func (f Filter) SourceTypes() []SourceType {
	switch f {
	case FilterEvents:
		return eventSources
	case FilterFriends:
		return []SourceType{SourceFriendRequest}
	case FilterSystem:
		return []SourceType{SourceSystem}
	}
	return nil
}

// Matches is the client-side predicate mirroring the server constraint.
// It is applied defensively over fetched lists so a response from a server
// that ignored the filter still renders correctly.
//
// COMMENT and MENTION fall outside the three named categories and are
// therefore visible only under "all" and "unread".
func (f Filter) Matches(n *Notification) bool {
	switch f {
	case FilterUnread:
		return !n.IsRead
	case FilterEvents, FilterFriends, FilterSystem:
		for _, st := range f.SourceTypes() {
			if n.SourceType == st {
				return true
			}
		}
		return false
	}
	return true
}

// Category maps a source type to the filter tab it belongs to. Source types
// outside all named categories (COMMENT, MENTION) map to FilterAll.
func Category(st SourceType) Filter {
	switch st {
	case SourceFriendRequest:
		return FilterFriends
	case SourceSystem:
		return FilterSystem
	case SourceAttendee, SourceEventUpdate, SourceEventCancelled, SourceEventReminder:
		return FilterEvents
	}
	return FilterAll
}

// Query encodes the filter as the server-side query constraint: "type" is
// repeated for source-type unions, "read" carries the read-state predicate.
// FilterAll encodes to no constraint at all.
func (f Filter) Query() url.Values {
	q := url.Values{}
	if f == FilterUnread {
		q.Set("read", strconv.FormatBool(false))
		return q
	}
	for _, st := range f.SourceTypes() {
		q.Add("type", string(st))
	}
	return q
}
