package feed

// Window size limits. The bounds are fixed; only the default is configurable.
const (
	MinWindowSize     = 1
	MaxWindowSize     = 20
	DefaultWindowSize = 5
)

// FetchFunc is invoked by a navigation operation when the window cannot move
// without more data. The direction is implied by the operation.
type FetchFunc func()

// Window is the visible, selectable part of a Store: rows
// [cursor, cursor+size) with the focused row at cursor+focus.
//
// Navigation methods take the current store length rather than the Store itself
// so the state machine stays a pure function of (cursor, size, focus, length).
// After every move the focused row is kept addressable: cursor+focus < length
// whenever length > 0.
type Window struct {
	cursor int
	size   int
	focus  int
}

// NewWindow creates a window at the newest item with size clamped to the limits.
func NewWindow(size int) *Window {
	return &Window{size: clampSize(size)}
}

func clampSize(size int) int {
	switch {
	case size < MinWindowSize:
		return MinWindowSize
	case size > MaxWindowSize:
		return MaxWindowSize
	default:
		return size
	}
}

// Cursor returns the index of the first visible item.
func (w *Window) Cursor() int { return w.cursor }

// Size returns the number of visible rows.
func (w *Window) Size() int { return w.size }

// Focus returns the offset of the focused row within the window.
func (w *Window) Focus() int { return w.focus }

// FocusIndex returns the store index of the focused item.
func (w *Window) FocusIndex() int { return w.cursor + w.focus }

// Prev moves toward newer items. At the newest loaded position it calls fetch
// for newer items instead of moving.
func (w *Window) Prev(length int, fetch FetchFunc) {
	switch {
	case w.focus > 0:
		w.focus--
	case w.cursor > 0:
		w.cursor--
	default:
		fetch()
	}
}

// Next moves toward older items. At the loaded tail it calls fetch for older items.
func (w *Window) Next(length int, fetch FetchFunc) {
	switch {
	case w.focus+1 < w.size && w.cursor+w.focus+1 < length:
		w.focus++
	case w.cursor+w.size < length:
		w.cursor++
	default:
		fetch()
	}
}

// PageUp jumps one page toward newer items. Within one page of the newest loaded
// item it resets the cursor and calls fetch for newer items.
func (w *Window) PageUp(length int, fetch FetchFunc) {
	if w.cursor+w.focus <= w.size {
		w.cursor = 0
		w.keepFocus(length)
		fetch()
		return
	}
	w.cursor = max(w.cursor-w.size, 0)
	w.keepFocus(length)
}

// PageDown jumps one page toward older items. When less than one extra page of
// older data is loaded it moves to the last full page and calls fetch for older
// items. Otherwise the cursor stops at length-size-1 so the tail page is never
// shown with an out-of-range focus.
func (w *Window) PageDown(length int, fetch FetchFunc) {
	if w.cursor+w.size*2 > length {
		w.cursor = max(length-w.size, 0)
		w.keepFocus(length)
		fetch()
		return
	}
	w.cursor = min(w.cursor+w.size, length-w.size-1)
	w.keepFocus(length)
}

// Top jumps to the newest loaded item without fetching.
func (w *Window) Top(length int) {
	if w.cursor != 0 {
		w.cursor = 0
		w.keepFocus(length)
	}
}

// Bottom jumps to the last full page of loaded items without fetching.
func (w *Window) Bottom(length int) {
	if w.cursor < length-w.size {
		w.cursor = length - w.size
		w.keepFocus(length)
	}
}

// Grow adds one visible row, up to MaxWindowSize.
func (w *Window) Grow() {
	w.size = min(w.size+1, MaxWindowSize)
}

// Shrink removes one visible row, down to MinWindowSize. A focus on the old
// last row moves up with it.
func (w *Window) Shrink() {
	if w.size <= MinWindowSize {
		return
	}
	if w.focus == w.size-1 && w.focus > 0 {
		w.focus--
	}
	w.size--
}

// Shift moves the cursor by n rows without touching focus. It is used after
// newer items were merged at the head so the same item stays focused.
func (w *Window) Shift(n int) {
	w.cursor = max(w.cursor+n, 0)
}

// Reset returns the window to the newest item, keeping its size.
func (w *Window) Reset() {
	w.cursor = 0
	w.focus = 0
}

// Clamp re-establishes cursor+focus < length after items were removed.
func (w *Window) Clamp(length int) {
	if length <= 0 {
		w.Reset()
		return
	}
	if w.cursor >= length {
		w.cursor = max(length-w.size, 0)
	}
	w.keepFocus(length)
}

// keepFocus pulls focus back onto the last loaded row if it points past it.
func (w *Window) keepFocus(length int) {
	if length <= 0 {
		return
	}
	if w.cursor+w.focus >= length {
		w.focus = max(length-1-w.cursor, 0)
	}
}
