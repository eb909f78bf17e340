// Package timeline owns one feed's Store and Window and coordinates fetching.
//
// A Timeline turns navigation intents into window moves. When a move runs off the
// loaded data it hands back a FetchRequest carrying the exact boundary id; the
// caller runs Fetch (typically inside a Bubble Tea command) and feeds the result
// to Apply. Only one fetch, action or post is in flight per Timeline: while one is
// pending, further navigation is dropped. A failed fetch leaves the Store and
// Window untouched and records the error message for display.
//
// Columns groups independent timelines (home, mentions, lists, searches) without
// sharing any state between them.
package timeline
