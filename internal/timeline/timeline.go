package timeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rshade/feedline/internal/feed"
	"github.com/rshade/feedline/internal/logging"
)

// ErrBusy is returned when a fetch or action is already in flight.
var ErrBusy = errors.New("timeline is busy")

// ErrEmptyPost is returned when a post has no text.
var ErrEmptyPost = errors.New("nothing to post")

// ErrNoFocus is returned when an action needs a focused item and none is loaded.
var ErrNoFocus = errors.New("no focused item")

// Process names what a Timeline is currently waiting on.
type Process int

// Processes. Only one may run at a time per Timeline.
const (
	ProcessNone Process = iota
	ProcessUpdate
	ProcessFavorite
	ProcessRetweet
	ProcessDelete
	ProcessTweet
)

// String returns the process name.
func (p Process) String() string {
	switch p {
	case ProcessNone:
		return "none"
	case ProcessUpdate:
		return "update"
	case ProcessFavorite:
		return "fav"
	case ProcessRetweet:
		return "rt"
	case ProcessDelete:
		return "delete"
	case ProcessTweet:
		return "tweet"
	default:
		return "unknown"
	}
}

// FetchRequest describes a fetch the caller must run.
type FetchRequest struct {
	Column    string
	Direction Direction
	// Bound is the exclusive since_id for Newer or max_id for Older.
	Bound string
}

// FetchResult is the outcome of running a FetchRequest.
type FetchResult struct {
	Request  FetchRequest
	Items    []feed.Item
	Err      error
	Duration time.Duration
}

// Timeline is one feed: its loaded items, its window and its paginator.
// It is not safe for concurrent use; only Fetch and RunAction may be
// called off the owning goroutine.
type Timeline struct {
	name      string
	kind      Kind
	paginator Paginator
	store     *feed.Store
	window    *feed.Window

	process Process
	errMsg  string
	result  string
}

// New creates an empty timeline with the given window size.
func New(name string, kind Kind, paginator Paginator, windowSize int) *Timeline {
	return &Timeline{
		name:      name,
		kind:      kind,
		paginator: paginator,
		store:     feed.NewStore(),
		window:    feed.NewWindow(windowSize),
	}
}

// Name returns the column name.
func (t *Timeline) Name() string { return t.name }

// Kind returns the feed kind.
func (t *Timeline) Kind() Kind { return t.kind }

// Len returns the number of loaded items.
func (t *Timeline) Len() int { return t.store.Len() }

// Process returns what the timeline is waiting on.
func (t *Timeline) Process() Process { return t.process }

// Busy reports whether a fetch or action is in flight.
func (t *Timeline) Busy() bool { return t.process != ProcessNone }

// Cursor returns the window cursor.
func (t *Timeline) Cursor() int { return t.window.Cursor() }

// Size returns the window size.
func (t *Timeline) Size() int { return t.window.Size() }

// Focus returns the focus offset within the window.
func (t *Timeline) Focus() int { return t.window.Focus() }

// Visible returns the items inside the window, newest first.
func (t *Timeline) Visible() []feed.Item {
	c := t.window.Cursor()
	return t.store.Slice(c, c+t.window.Size())
}

// Focused returns the focused item. The boolean is false while nothing is loaded there.
func (t *Timeline) Focused() (feed.Item, bool) {
	return t.store.At(t.window.FocusIndex())
}

// Position returns the 1-based focused position and the loaded total.
func (t *Timeline) Position() (int, int) {
	return t.window.FocusIndex() + 1, t.store.Len()
}

// Boundary returns the current fetch bounds.
func (t *Timeline) Boundary() feed.Boundary {
	return feed.BoundaryOf(t.store)
}

// Err returns the last error message, or "".
func (t *Timeline) Err() string { return t.errMsg }

// Result returns the last success message, or "".
func (t *Timeline) Result() string { return t.result }

// SetError records an error message and clears any success message.
func (t *Timeline) SetError(msg string) {
	t.result = ""
	t.errMsg = msg
}

// SetResult records a success message and clears any error message.
func (t *Timeline) SetResult(msg string) {
	t.errMsg = ""
	t.result = msg
}

// ClearMessages drops both the error and the success message.
func (t *Timeline) ClearMessages() {
	t.errMsg = ""
	t.result = ""
}

// Move applies a navigation intent. When the move needs data it returns a
// FetchRequest and marks the timeline busy until Apply is called. While busy,
// every intent is dropped and ErrBusy is returned.
func (t *Timeline) Move(intent Intent) (*FetchRequest, error) {
	if t.Busy() {
		return nil, ErrBusy
	}

	var dir *Direction
	newer := func() { d := Newer; dir = &d }
	older := func() { d := Older; dir = &d }
	length := t.store.Len()

	switch intent {
	case IntentPrev:
		t.window.Prev(length, newer)
	case IntentNext:
		t.window.Next(length, older)
	case IntentPageUp:
		t.window.PageUp(length, newer)
	case IntentPageDown:
		t.window.PageDown(length, older)
	case IntentTop:
		t.window.Top(length)
	case IntentBottom:
		t.window.Bottom(length)
	case IntentGrow:
		t.window.Grow()
	case IntentShrink:
		t.window.Shrink()
	case IntentRefresh:
		newer()
	default:
		return nil, fmt.Errorf("unknown intent %d", int(intent))
	}

	if dir == nil {
		return nil, nil
	}
	return t.begin(*dir), nil
}

// begin marks the timeline busy and builds the request for dir.
func (t *Timeline) begin(dir Direction) *FetchRequest {
	b := t.Boundary()
	req := &FetchRequest{Column: t.name, Direction: dir, Bound: b.SinceID}
	if dir == Older {
		req.Bound = b.MaxID
	}
	t.process = ProcessUpdate
	return req
}

// Fetch runs req against the paginator. It does not touch the Store and may
// be called from another goroutine.
func (t *Timeline) Fetch(ctx context.Context, req FetchRequest) FetchResult {
	log := logging.FromContext(ctx)
	start := time.Now()

	var (
		items []feed.Item
		err   error
	)
	if req.Direction == Newer {
		items, err = t.paginator.FetchNewer(ctx, req.Bound)
	} else {
		items, err = t.paginator.FetchOlder(ctx, req.Bound)
	}
	elapsed := time.Since(start)

	if err != nil {
		log.Warn().
			Str("component", "timeline").
			Str("column", req.Column).
			Stringer("direction", req.Direction).
			Str("bound", req.Bound).
			Err(err).
			Msg("fetch failed")
		return FetchResult{Request: req, Err: err, Duration: elapsed}
	}

	log.Debug().
		Str("component", "timeline").
		Str("column", req.Column).
		Stringer("direction", req.Direction).
		Str("bound", req.Bound).
		Int("items", len(items)).
		Dur("elapsed", elapsed).
		Msg("fetch completed")
	return FetchResult{Request: req, Items: items, Duration: elapsed}
}

// Apply merges a fetch result and clears the busy flag. It returns the number
// of items added. Newer items merged above a non-empty store shift the cursor
// by the added count so the same item stays focused. On error nothing but the
// error message changes.
func (t *Timeline) Apply(res FetchResult) int {
	t.process = ProcessNone

	if res.Err != nil {
		t.SetError(res.Err.Error())
		return 0
	}
	t.errMsg = ""

	hadItems := t.store.Len() > 0
	if res.Request.Direction == Newer {
		added := t.store.Merge(res.Items, feed.Before)
		if hadItems {
			t.window.Shift(added)
		}
		return added
	}
	return t.store.Merge(res.Items, feed.After)
}

// Load runs a fetch for newer items synchronously. It is meant for
// non-interactive use where no event loop drives Move/Fetch/Apply.
func (t *Timeline) Load(ctx context.Context) (int, error) {
	req, err := t.Move(IntentRefresh)
	if err != nil {
		return 0, err
	}
	res := t.Fetch(ctx, *req)
	added := t.Apply(res)
	if res.Err != nil {
		return 0, fmt.Errorf("loading %s: %w", t.name, res.Err)
	}
	return added, nil
}
