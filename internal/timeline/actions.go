package timeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/rshade/feedline/internal/feed"
	"github.com/rshade/feedline/internal/logging"
)

// ActionRequest is a pending side effect on one item, or a new post.
type ActionRequest struct {
	Column  string
	Process Process
	Item    feed.Item
	// Text is the body of a ProcessTweet request.
	Text string
}

// ActionResult is the outcome of running an ActionRequest.
type ActionResult struct {
	Request ActionRequest
	// Item is the refreshed copy for favorite/retweet toggles, or the
	// created item for a post.
	Item feed.Item
	Err  error
}

// BeginAction marks the timeline busy with p on the focused item.
func (t *Timeline) BeginAction(p Process) (*ActionRequest, error) {
	if t.Busy() {
		return nil, ErrBusy
	}
	if p == ProcessNone || p == ProcessUpdate || p == ProcessTweet {
		return nil, fmt.Errorf("process %s is not an item action", p)
	}
	item, ok := t.Focused()
	if !ok {
		return nil, ErrNoFocus
	}
	t.process = p
	return &ActionRequest{Column: t.name, Process: p, Item: item}, nil
}

// BeginPost marks the timeline busy with a new post of text.
func (t *Timeline) BeginPost(text string) (*ActionRequest, error) {
	if t.Busy() {
		return nil, ErrBusy
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyPost
	}
	t.process = ProcessTweet
	return &ActionRequest{Column: t.name, Process: ProcessTweet, Text: text}, nil
}

// RunAction performs req through actions. Favorite and retweet toggle
// according to the item's current state. Safe to call off the owning goroutine.
func RunAction(ctx context.Context, actions Actions, req ActionRequest) ActionResult {
	var (
		item feed.Item
		err  error
	)
	id := req.Item.ID

	switch req.Process {
	case ProcessFavorite:
		if req.Item.Favorited {
			item, err = actions.Unfavorite(ctx, id)
		} else {
			item, err = actions.Favorite(ctx, id)
		}
	case ProcessRetweet:
		if req.Item.Retweeted {
			item, err = actions.Unretweet(ctx, id)
		} else {
			item, err = actions.Retweet(ctx, id)
		}
	case ProcessDelete:
		err = actions.Delete(ctx, id)
	case ProcessTweet:
		item, err = actions.Post(ctx, req.Text)
	case ProcessNone, ProcessUpdate:
		err = fmt.Errorf("process %s is not an action", req.Process)
	}

	if err != nil {
		logging.FromContext(ctx).Warn().
			Str("component", "timeline").
			Str("column", req.Column).
			Stringer("action", req.Process).
			Str("item_id", id).
			Err(err).
			Msg("action failed")
	}
	return ActionResult{Request: req, Item: item, Err: err}
}

// ApplyAction records the outcome of an action and clears the busy flag.
// A successful toggle replaces the item; a successful delete removes it and
// re-clamps the window. A post only reports success.
func (t *Timeline) ApplyAction(res ActionResult) {
	t.process = ProcessNone

	if res.Err != nil {
		t.SetError(res.Err.Error())
		return
	}

	switch res.Request.Process {
	case ProcessFavorite:
		t.store.Replace(res.Item)
		verb := "unfavorited"
		if res.Item.Favorited {
			verb = "favorited"
		}
		t.SetResult(successMessage(verb, res.Item))
	case ProcessRetweet:
		t.store.Replace(res.Item)
		verb := "unretweeted"
		if res.Item.Retweeted {
			verb = "retweeted"
		}
		t.SetResult(successMessage(verb, res.Item))
	case ProcessDelete:
		t.Remove(res.Request.Item.ID)
		t.SetResult(successMessage("deleted", res.Request.Item))
	case ProcessTweet:
		// The new item shows up on the next refresh.
		t.SetResult(fmt.Sprintf("Successfully tweeted: %q", res.Request.Text))
	case ProcessNone, ProcessUpdate:
	}
}

// Remove drops an item by id and keeps the window on loaded rows.
func (t *Timeline) Remove(id string) bool {
	if !t.store.Remove(id) {
		return false
	}
	t.window.Clamp(t.store.Len())
	return true
}

// successMessage formats the status line shown after an action.
func successMessage(verb string, item feed.Item) string {
	text := strings.Join(strings.Split(item.Text, "\n"), " ")
	return fmt.Sprintf("Successfully %s: @%s %q", verb, item.Author.ScreenName, text)
}
