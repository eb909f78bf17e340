package feed

import (
	"sort"

	"github.com/rshade/feedline/internal/snowflake"
)

// Position selects the end of the Store a merge is aimed at.
type Position int

const (
	// Before merges newer items at the head of the Store.
	Before Position = iota
	// After merges older items at the tail of the Store.
	After
)

// String returns the position name used in logs.
func (p Position) String() string {
	if p == Before {
		return "before"
	}
	return "after"
}

// Store is the ordered set of loaded items for one feed.
// Items are kept strictly descending by ID with no duplicates. IDs are
// stored in canonical form, without leading zeros.
// Store is not safe for concurrent use.
type Store struct {
	items []Item
	ids   map[string]struct{}
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{ids: make(map[string]struct{})}
}

// Len returns the number of loaded items.
func (s *Store) Len() int {
	return len(s.items)
}

// At returns the item at index. The boolean is false when index is out of
// range, which is normal while a fetch for the focused row is pending.
func (s *Store) At(index int) (Item, bool) {
	if index < 0 || index >= len(s.items) {
		return Item{}, false
	}
	return s.items[index], true
}

// First returns the newest item.
func (s *Store) First() (Item, bool) {
	return s.At(0)
}

// Last returns the oldest item.
func (s *Store) Last() (Item, bool) {
	return s.At(len(s.items) - 1)
}

// Slice returns a copy of items[from:to], clamped to the loaded range.
func (s *Store) Slice(from, to int) []Item {
	if from < 0 {
		from = 0
	}
	if to > len(s.items) {
		to = len(s.items)
	}
	if from >= to {
		return []Item{}
	}
	out := make([]Item, to-from)
	copy(out, s.items[from:to])
	return out
}

// Items returns a copy of every loaded item, newest first.
func (s *Store) Items() []Item {
	return s.Slice(0, len(s.items))
}

// IndexOf returns the index of the item with id, or -1.
func (s *Store) IndexOf(id string) int {
	key, err := snowflake.Canonical(id)
	if err != nil {
		return -1
	}
	if _, ok := s.ids[key]; !ok {
		return -1
	}
	for i := range s.items {
		if s.items[i].ID == key {
			return i
		}
	}
	return -1
}

// Merge adds items aimed at the given end and returns how many were actually added.
// Items already present, repeated within the input, or carrying an invalid ID are
// dropped. The result stays strictly descending; an item that overlaps the loaded
// range is merged into its ordered slot rather than forced to the requested end.
func (s *Store) Merge(items []Item, pos Position) int {
	if len(items) == 0 {
		return 0
	}

	fresh := make([]Item, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		key, err := snowflake.Canonical(it.ID)
		if err != nil {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		if _, loaded := s.ids[key]; loaded {
			continue
		}
		seen[key] = struct{}{}
		it.ID = key
		fresh = append(fresh, it)
	}
	if len(fresh) == 0 {
		return 0
	}

	sort.SliceStable(fresh, func(i, j int) bool {
		return snowflake.Newer(fresh[i].ID, fresh[j].ID)
	})

	switch {
	case len(s.items) == 0:
		s.items = fresh
	case pos == Before && snowflake.Newer(fresh[len(fresh)-1].ID, s.items[0].ID):
		s.items = append(fresh, s.items...)
	case pos == After && snowflake.Newer(s.items[len(s.items)-1].ID, fresh[0].ID):
		s.items = append(s.items, fresh...)
	default:
		s.items = mergeDescending(s.items, fresh)
	}

	for _, it := range fresh {
		s.ids[it.ID] = struct{}{}
	}
	return len(fresh)
}

// mergeDescending merges two descending, disjoint slices into a new slice.
func mergeDescending(a, b []Item) []Item {
	out := make([]Item, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if snowflake.Newer(a[i].ID, b[j].ID) {
			out = append(out, a[i])
			i++
		} else {
			out = append(out, b[j])
			j++
		}
	}
	out = append(out, a[i:]...)
	return append(out, b[j:]...)
}

// Remove deletes the item with id, preserving order. It reports whether an item was removed.
func (s *Store) Remove(id string) bool {
	idx := s.IndexOf(id)
	if idx < 0 {
		return false
	}
	delete(s.ids, s.items[idx].ID)
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	return true
}

// Replace swaps in an updated copy of an already loaded item.
// It reports false when no item with the same ID is loaded.
func (s *Store) Replace(item Item) bool {
	idx := s.IndexOf(item.ID)
	if idx < 0 {
		return false
	}
	item.ID = s.items[idx].ID
	s.items[idx] = item
	return true
}
