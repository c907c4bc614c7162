package inbox

import (
	"slices"
	"sync"
)

// selectionState is the two-state machine behind bulk selection.
type selectionState int

const (
	// stateBrowsing is the default: clicks follow notification links.
	stateBrowsing selectionState = iota
	// stateSelecting reroutes clicks to toggle membership in the bulk set.
	stateSelecting
)

// Selection tracks bulk-selection mode and the set of selected ids. It is
// independent of the active filter: switching tabs does not disturb an
// in-progress selection.
//
// Invariant: the selected set is empty whenever the controller is in
// browsing state. Every transition out of selecting clears it.
type Selection struct {
	mu    sync.Mutex
	state selectionState
	ids   map[string]struct{}
}

// NewSelection creates a Selection in browsing state.
func NewSelection() *Selection {
	return &Selection{ids: make(map[string]struct{})}
}

// Active reports whether selection mode is on.
func (s *Selection) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == stateSelecting
}

// ToggleMode flips between browsing and selecting and reports the new
// active state. Leaving selection mode always clears the set, regardless of
// how much was selected.
func (s *Selection) ToggleMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == stateSelecting {
		s.toBrowsing()
		return false
	}
	s.state = stateSelecting
	return true
}

// Exit returns to browsing state. Called when the notification surface is
// closed so a stale selection never survives a reopen.
func (s *Selection) Exit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.toBrowsing()
}

func (s *Selection) toBrowsing() {
	s.state = stateBrowsing
	clear(s.ids)
}

// Toggle flips membership of id in the selected set and reports whether the
// id is selected afterwards. Outside selection mode it is a no-op.
func (s *Selection) Toggle(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != stateSelecting {
		return false
	}
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

// Contains reports whether id is currently selected.
func (s *Selection) Contains(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ids[id]
	return ok
}

// Selected returns the selected ids in a stable order.
func (s *Selection) Selected() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Count returns the number of selected ids.
func (s *Selection) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}
