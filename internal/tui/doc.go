// Package tui is the interactive terminal front end: one tab per timeline
// column, boxed items with the focused one highlighted, and key bindings
// that drive timeline moves, item actions and a compose box for new posts.
// Fetches and actions run as Bubble Tea commands and are applied back on the
// event loop.
package tui
