// Package notification defines the domain model shared by the notification
// center client and the server of record: the Notification record, its
// closed set of source types, the tagged per-source payload variants, and
// the feed filters.
//
// # Payload variants
//
// A notification's payload shape depends on its source type. The Payload
// interface is a sealed tagged union: FRIEND_REQUEST notifications carry a
// FriendRequestPayload, the ATTENDEE family carries an EventPayload, and
// every other source type carries none. JSON decoding selects the variant
// from the source type tag, so a payload under the wrong tag is a decode
// error rather than a silently mistyped field:
//
//	var n notification.Notification
//	if err := json.Unmarshal(data, &n); err != nil {
//	    // wrong or malformed payload
//	}
//	if p, ok := n.Payload.(notification.FriendRequestPayload); ok {
//	    fmt.Println(p.Sender.Username)
//	}
//
// # Filters
//
// Filter values mirror the feed's tabs: all, unread, events, friends and
// system. A filter serves double duty as a server query constraint
// (Filter.Query) and as a client-side predicate (Filter.Matches) applied
// defensively over fetched lists.
package notification
