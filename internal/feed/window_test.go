package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fetchCounter records how many times a navigation asked for data.
type fetchCounter struct{ calls int }

func (f *fetchCounter) fetch() { f.calls++ }

// windowAt builds a window with the given state.
func windowAt(cursor, size, focus int) *Window {
	return &Window{cursor: cursor, size: size, focus: focus}
}

func assertWindow(t *testing.T, w *Window, cursor, size, focus int) {
	t.Helper()
	assert.Equal(t, cursor, w.Cursor(), "cursor")
	assert.Equal(t, size, w.Size(), "size")
	assert.Equal(t, focus, w.Focus(), "focus")
}

func TestNewWindow_ClampsSize(t *testing.T) {
	assert.Equal(t, MinWindowSize, NewWindow(0).Size())
	assert.Equal(t, MaxWindowSize, NewWindow(99).Size())
	assertWindow(t, NewWindow(DefaultWindowSize), 0, 5, 0)
}

func TestWindow_EmptyStoreFetchesWithoutMoving(t *testing.T) {
	tests := []struct {
		name string
		move func(w *Window, fetch FetchFunc)
	}{
		{name: "prev", move: func(w *Window, f FetchFunc) { w.Prev(0, f) }},
		{name: "next", move: func(w *Window, f FetchFunc) { w.Next(0, f) }},
		{name: "page up", move: func(w *Window, f FetchFunc) { w.PageUp(0, f) }},
		{name: "page down", move: func(w *Window, f FetchFunc) { w.PageDown(0, f) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWindow(5)
			var fc fetchCounter
			tt.move(w, fc.fetch)
			assert.Equal(t, 1, fc.calls)
			assertWindow(t, w, 0, 5, 0)
		})
	}

	t.Run("top and bottom are no-ops", func(t *testing.T) {
		w := NewWindow(5)
		w.Top(0)
		w.Bottom(0)
		assertWindow(t, w, 0, 5, 0)
	})
}

func TestWindow_Next(t *testing.T) {
	tests := []struct {
		name       string
		length     int
		start      *Window
		wantCursor int
		wantFocus  int
		wantFetch  int
	}{
		{name: "moves focus down", length: 10, start: windowAt(0, 5, 0), wantCursor: 0, wantFocus: 1},
		{name: "scrolls at last row", length: 10, start: windowAt(0, 5, 4), wantCursor: 1, wantFocus: 4},
		{name: "fetches at loaded tail", length: 10, start: windowAt(5, 5, 4), wantCursor: 5, wantFocus: 4, wantFetch: 1},
		{name: "short store fetches at last item", length: 3, start: windowAt(0, 5, 2), wantCursor: 0, wantFocus: 2, wantFetch: 1},
		{name: "short store moves focus", length: 3, start: windowAt(0, 5, 1), wantCursor: 0, wantFocus: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fc fetchCounter
			tt.start.Next(tt.length, fc.fetch)
			assertWindow(t, tt.start, tt.wantCursor, 5, tt.wantFocus)
			assert.Equal(t, tt.wantFetch, fc.calls)
		})
	}
}

func TestWindow_Prev(t *testing.T) {
	tests := []struct {
		name       string
		start      *Window
		wantCursor int
		wantFocus  int
		wantFetch  int
	}{
		{name: "moves focus up", start: windowAt(3, 5, 2), wantCursor: 3, wantFocus: 1},
		{name: "scrolls toward newer", start: windowAt(3, 5, 0), wantCursor: 2, wantFocus: 0},
		{name: "fetches at newest", start: windowAt(0, 5, 0), wantCursor: 0, wantFocus: 0, wantFetch: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fc fetchCounter
			tt.start.Prev(10, fc.fetch)
			assertWindow(t, tt.start, tt.wantCursor, 5, tt.wantFocus)
			assert.Equal(t, tt.wantFetch, fc.calls)
		})
	}
}

// Walking past the tail fetches once; after the older page is merged the
// window scrolls through it without fetching again.
func TestWindow_NextAcrossMergedPage(t *testing.T) {
	const size = 5
	s := storeOf("9223372036854775807", 10)
	oldLen := s.Len()

	w := NewWindow(size)
	w.Bottom(s.Len())
	for range size - 1 {
		w.Next(s.Len(), func() { t.Fatal("unexpected fetch while focusing") })
	}
	assertWindow(t, w, oldLen-size, size, size-1)

	var fc fetchCounter
	w.Next(s.Len(), fc.fetch)
	require.Equal(t, 1, fc.calls)

	last, _ := s.Last()
	b := BoundaryOf(s)
	added := s.Merge(descending(b.MaxID, size), After)
	require.Equal(t, size, added)
	_, stillThere := s.At(s.IndexOf(last.ID))
	require.True(t, stillThere)

	for range size {
		w.Next(s.Len(), fc.fetch)
	}
	assert.Equal(t, oldLen, w.Cursor())
	assert.Equal(t, 1, fc.calls)

	w.Next(s.Len(), fc.fetch)
	assert.Equal(t, 2, fc.calls)
}

func TestWindow_PageUp(t *testing.T) {
	t.Run("near the head resets and fetches", func(t *testing.T) {
		w := windowAt(3, 5, 2)
		var fc fetchCounter
		w.PageUp(30, fc.fetch)
		assertWindow(t, w, 0, 5, 2)
		assert.Equal(t, 1, fc.calls)
	})

	t.Run("boundary cursor+focus equals size fetches", func(t *testing.T) {
		w := windowAt(5, 5, 0)
		var fc fetchCounter
		w.PageUp(30, fc.fetch)
		assertWindow(t, w, 0, 5, 0)
		assert.Equal(t, 1, fc.calls)
	})

	t.Run("far from head jumps one page", func(t *testing.T) {
		w := windowAt(12, 5, 1)
		var fc fetchCounter
		w.PageUp(30, fc.fetch)
		assertWindow(t, w, 7, 5, 1)
		assert.Equal(t, 0, fc.calls)
	})

	t.Run("jump floors at zero", func(t *testing.T) {
		w := windowAt(4, 5, 3)
		var fc fetchCounter
		w.PageUp(30, fc.fetch)
		assertWindow(t, w, 0, 5, 3)
		assert.Equal(t, 0, fc.calls)
	})
}

func TestWindow_PageDown(t *testing.T) {
	t.Run("jumps one page", func(t *testing.T) {
		w := windowAt(0, 5, 2)
		var fc fetchCounter
		w.PageDown(30, fc.fetch)
		assertWindow(t, w, 5, 5, 2)
		assert.Equal(t, 0, fc.calls)
	})

	t.Run("clamps to length-size-1", func(t *testing.T) {
		w := windowAt(17, 5, 4)
		var fc fetchCounter
		w.PageDown(27, fc.fetch)
		assertWindow(t, w, 21, 5, 4)
		assert.Equal(t, 0, fc.calls)
	})

	t.Run("less than a page left moves to tail and fetches", func(t *testing.T) {
		w := windowAt(18, 5, 1)
		var fc fetchCounter
		w.PageDown(27, fc.fetch)
		assertWindow(t, w, 22, 5, 1)
		assert.Equal(t, 1, fc.calls)
	})

	t.Run("store shorter than window", func(t *testing.T) {
		w := windowAt(0, 5, 4)
		var fc fetchCounter
		w.PageDown(3, fc.fetch)
		assertWindow(t, w, 0, 5, 2)
		assert.Equal(t, 1, fc.calls)
	})
}

func TestWindow_TopBottom(t *testing.T) {
	w := windowAt(7, 5, 3)
	w.Top(20)
	assertWindow(t, w, 0, 5, 3)

	w.Bottom(20)
	assertWindow(t, w, 15, 5, 3)

	// Already past length-size: bottom does nothing.
	w = windowAt(16, 5, 0)
	w.Bottom(20)
	assertWindow(t, w, 16, 5, 0)
}

func TestWindow_GrowShrink(t *testing.T) {
	t.Run("shrink pulls focus off the removed row", func(t *testing.T) {
		w := windowAt(0, 5, 4)
		w.Shrink()
		assertWindow(t, w, 0, 4, 3)
		assert.Less(t, w.Focus(), w.Size())
	})

	t.Run("shrink keeps inner focus", func(t *testing.T) {
		w := windowAt(0, 5, 2)
		w.Shrink()
		assertWindow(t, w, 0, 4, 2)
	})

	t.Run("shrink stops at minimum", func(t *testing.T) {
		w := windowAt(0, 1, 0)
		w.Shrink()
		assertWindow(t, w, 0, 1, 0)
	})

	t.Run("grow stops at maximum", func(t *testing.T) {
		w := windowAt(0, MaxWindowSize-1, 0)
		w.Grow()
		w.Grow()
		assert.Equal(t, MaxWindowSize, w.Size())
	})

	t.Run("focus never reaches size", func(t *testing.T) {
		w := windowAt(0, MaxWindowSize, MaxWindowSize-1)
		for range MaxWindowSize {
			w.Shrink()
			require.Less(t, w.Focus(), w.Size())
			require.GreaterOrEqual(t, w.Focus(), 0)
		}
		assertWindow(t, w, 0, 1, 0)
	})
}

func TestWindow_ShiftResetClamp(t *testing.T) {
	w := windowAt(2, 5, 1)
	w.Shift(3)
	assertWindow(t, w, 5, 5, 1)
	w.Shift(-10)
	assertWindow(t, w, 0, 5, 1)

	w = windowAt(8, 5, 4)
	w.Clamp(10)
	assertWindow(t, w, 8, 5, 1)

	w = windowAt(12, 5, 3)
	w.Clamp(10)
	assertWindow(t, w, 5, 5, 3)

	w.Clamp(0)
	assertWindow(t, w, 0, 5, 0)
}

// The focused item always exists after any sequence of moves over a loaded store.
func TestWindow_FocusStaysAddressable(t *testing.T) {
	const length = 13
	w := NewWindow(4)
	noop := func() {}
	moves := []func(){
		func() { w.Next(length, noop) },
		func() { w.PageDown(length, noop) },
		func() { w.Grow() },
		func() { w.PageDown(length, noop) },
		func() { w.Next(length, noop) },
		func() { w.Shrink() },
		func() { w.PageUp(length, noop) },
		func() { w.Bottom(length) },
		func() { w.Prev(length, noop) },
		func() { w.Top(length) },
	}
	for i := range 200 {
		moves[i%len(moves)]()
		require.Less(t, w.FocusIndex(), length, "step %d", i)
	}
}
