package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds every binding the timeline view understands.
type KeyMap struct {
	Prev        key.Binding
	Next        key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Top         key.Binding
	Bottom      key.Binding
	Grow        key.Binding
	Shrink      key.Binding
	Refresh     key.Binding
	Favorite    key.Binding
	Retweet     key.Binding
	Delete      key.Binding
	Compose     key.Binding
	Mention     key.Binding
	Redraft     key.Binding
	Detail      key.Binding
	Back        key.Binding
	PrevColumn  key.Binding
	NextColumn  key.Binding
	CloseColumn key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Prev:        key.NewBinding(key.WithKeys("up", "k", "shift+tab"), key.WithHelp("↑/k", "newer")),
		Next:        key.NewBinding(key.WithKeys("down", "j", "tab"), key.WithHelp("↓/j", "older")),
		PageUp:      key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page newer")),
		PageDown:    key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page older")),
		Top:         key.NewBinding(key.WithKeys("0", "home"), key.WithHelp("0", "top")),
		Bottom:      key.NewBinding(key.WithKeys("9", "end"), key.WithHelp("9", "bottom")),
		Grow:        key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "more rows")),
		Shrink:      key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "fewer rows")),
		Refresh:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Favorite:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "favorite")),
		Retweet:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "retweet")),
		Delete:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Compose:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "tweet")),
		Mention:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mention")),
		Redraft:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "redraft")),
		Detail:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "detail")),
		Back:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		PrevColumn:  key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev column")),
		NextColumn:  key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next column")),
		CloseColumn: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "close column")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.PageUp, k.PageDown},
		{k.Top, k.Bottom, k.Grow, k.Shrink},
		{k.Favorite, k.Retweet, k.Delete, k.Refresh},
		{k.Compose, k.Mention, k.Redraft},
		{k.Detail, k.Back, k.PrevColumn, k.NextColumn, k.CloseColumn},
	}
}
