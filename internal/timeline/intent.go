package timeline

// Intent is a discrete navigation request from the presentation layer.
type Intent int

// Navigation intents.
const (
	IntentPrev Intent = iota
	IntentNext
	IntentPageUp
	IntentPageDown
	IntentTop
	IntentBottom
	IntentGrow
	IntentShrink
	IntentRefresh
)

// String returns the intent name used in logs.
func (i Intent) String() string {
	switch i {
	case IntentPrev:
		return "prev"
	case IntentNext:
		return "next"
	case IntentPageUp:
		return "page_up"
	case IntentPageDown:
		return "page_down"
	case IntentTop:
		return "top"
	case IntentBottom:
		return "bottom"
	case IntentGrow:
		return "grow"
	case IntentShrink:
		return "shrink"
	case IntentRefresh:
		return "refresh"
	default:
		return "unknown"
	}
}

// Direction is the fetch direction relative to the loaded items.
type Direction int

const (
	// Newer fetches items above the newest loaded item.
	Newer Direction = iota
	// Older fetches items below the oldest loaded item.
	Older
)

// String returns the direction name used in logs.
func (d Direction) String() string {
	if d == Newer {
		return "newer"
	}
	return "older"
}
