package tui

import "github.com/rshade/feedline/internal/timeline"

// FetchedMsg carries a finished fetch back to the event loop.
type FetchedMsg struct {
	Result timeline.FetchResult
}

// ActionDoneMsg carries a finished favorite, retweet or delete.
type ActionDoneMsg struct {
	Result timeline.ActionResult
}
