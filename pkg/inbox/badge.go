package inbox

import "strconv"

// badgeCap is the largest count rendered literally; anything above shows
// as overflowLabel.
const (
	badgeCap      = 9
	overflowLabel = "9+"
)

// Badge derives the unread-count glyph from the store. It holds no state of
// its own; every read goes straight to the full-feed unread counter.
type Badge struct {
	store *Store
}

// NewBadge creates a Badge over the given store.
func NewBadge(store *Store) *Badge {
	return &Badge{store: store}
}

// Active reports whether the bell icon should render filled ("ringing"),
// which is the case whenever anything is unread.
func (b *Badge) Active() bool {
	return b.store.UnreadCount() > 0
}

// Label returns the count glyph: the literal number up to 9, "9+" above
// that, and the empty string when nothing is unread.
func (b *Badge) Label() string {
	n := b.store.UnreadCount()
	switch {
	case n <= 0:
		return ""
	case n > badgeCap:
		return overflowLabel
	default:
		return strconv.Itoa(n)
	}
}
