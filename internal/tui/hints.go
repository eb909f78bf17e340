package tui

import "github.com/rshade/feedline/internal/timeline"

// HintKey names a view state that has a hint line.
type HintKey string

// Hint keys.
const (
	HintNone               HintKey = "none"
	HintTimeline           HintKey = "timeline"
	HintTimelineNewInput   HintKey = "timeline/new/input"
	HintTimelineNewConfirm HintKey = "timeline/new/wait-return"
	HintTimelineDetail     HintKey = "timeline/detail"
	HintListTimeline       HintKey = "list/timeline"
	HintSearchTimeline     HintKey = "search/timeline"
)

var hints = map[HintKey]string{
	HintTimeline:           "[t] retweet [f] favorite [n] tweet [enter] detail [[/]] column [x] close",
	HintTimelineNewInput:   "[enter] done [esc] close",
	HintTimelineNewConfirm: "[enter] tweet [esc] cancel",
	HintTimelineDetail:     "[t] retweet [f] favorite [m] mention [e] redraft [d] delete [esc] back",
	HintListTimeline:       "[t] retweet [f] favorite [n] tweet [enter] detail [[/]] column (list)",
	HintSearchTimeline:     "[t] retweet [f] favorite [n] tweet [enter] detail [[/]] column (search)",
}

// Hint returns the hint line for key, or "".
func Hint(key HintKey) string {
	return hints[key]
}

// hintKeyFor picks the hint for the current view and column kind.
// confirm selects the final step of the compose box.
func hintKeyFor(view ViewState, kind timeline.Kind, confirm bool) HintKey {
	switch view {
	case ViewDetail:
		return HintTimelineDetail
	case ViewCompose:
		if confirm {
			return HintTimelineNewConfirm
		}
		return HintTimelineNewInput
	case ViewTimeline, ViewQuitting:
	}
	switch kind {
	case timeline.KindList:
		return HintListTimeline
	case timeline.KindSearch:
		return HintSearchTimeline
	case timeline.KindHome, timeline.KindMentions:
		return HintTimeline
	default:
		return HintNone
	}
}
