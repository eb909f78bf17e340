package timeline

import (
	"fmt"
	"strings"
)

// Kind identifies which provider feed a timeline shows.
type Kind int

const (
	// KindHome is the signed-in account's home feed.
	KindHome Kind = iota
	// KindMentions lists items mentioning the account.
	KindMentions
	// KindList is a curated list feed.
	KindList
	// KindSearch is a search result feed.
	KindSearch
)

// String returns the config name of the kind.
func (k Kind) String() string {
	switch k {
	case KindHome:
		return "home"
	case KindMentions:
		return "mentions"
	case KindList:
		return "list"
	case KindSearch:
		return "search"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind parses a config kind name.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "home", "":
		return KindHome, nil
	case "mentions":
		return KindMentions, nil
	case "list":
		return KindList, nil
	case "search":
		return KindSearch, nil
	default:
		return KindHome, fmt.Errorf("unknown timeline type %q", s)
	}
}
