package feed

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rshade/feedline/internal/snowflake"
)

// descending builds n items whose ids count down from newest.
func descending(newest string, n int) []Item {
	items := make([]Item, 0, n)
	id := newest
	for range n {
		items = append(items, Item{ID: id, Text: "item " + id})
		id = snowflake.MustDecrement(id)
	}
	return items
}

// ids extracts the ids of items in order.
func ids(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

// requireDescending asserts the store ordering invariant.
func requireDescending(t *testing.T, s *Store) {
	t.Helper()
	for i := 0; i+1 < s.Len(); i++ {
		a, _ := s.At(i)
		b, _ := s.At(i + 1)
		require.Truef(t, snowflake.Newer(a.ID, b.ID), "store[%d]=%s not newer than store[%d]=%s", i, a.ID, i+1, b.ID)
	}
}

// storeOf builds a store holding n items counting down from newest.
func storeOf(newest string, n int) *Store {
	s := NewStore()
	s.Merge(descending(newest, n), After)
	return s
}
