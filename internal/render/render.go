// Package render prints timeline items as plain text for non-interactive use.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/feedline/internal/feed"
)

// DefaultWidth is used when the output width is unknown.
const DefaultWidth = 80

const (
	indent   = "  "
	minWidth = 20
	ellipsis = "…"
)

// Options controls plain rendering.
type Options struct {
	// Width is the maximum line width in cells.
	Width int
	// Now anchors relative timestamps.
	Now time.Time
}

func (o Options) width() int {
	if o.Width <= 0 {
		return DefaultWidth
	}
	return max(o.Width, minWidth)
}

func (o Options) now() time.Time {
	if o.Now.IsZero() {
		return time.Now()
	}
	return o.Now
}

//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// Column writes a header and every item. total is the number of items
// loaded for the column; it is shown when more than len(items).
func Column(w io.Writer, name string, items []feed.Item, total int, opts Options) error {
	var b strings.Builder
	if total > len(items) {
		printer.Fprintf(&b, "== %s (%d of %d) ==\n\n", name, len(items), total)
	} else {
		printer.Fprintf(&b, "== %s (%d) ==\n\n", name, len(items))
	}

	if len(items) == 0 {
		b.WriteString(indent + "(no items)\n")
	}
	for i, it := range items {
		if i > 0 {
			b.WriteByte('\n')
		}
		_ = Item(&b, it, opts)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Item writes a single item block.
func Item(w io.Writer, it feed.Item, opts Options) error {
	var b strings.Builder
	width := opts.width()

	if it.IsRetweet() {
		b.WriteString(Truncate("RT by "+Byline(*it.RetweetedBy), width))
		b.WriteByte('\n')
	}
	b.WriteString(Truncate(Byline(it.Author)+" ("+Ago(it.CreatedAt, opts.now())+")", width))
	b.WriteByte('\n')

	text := it.Text
	if it.HasMedia {
		text += " (with Media)"
	}
	for _, line := range strings.Split(Wrap(text, width-len(indent)), "\n") {
		b.WriteString(strings.TrimRight(indent+line, " "))
		b.WriteByte('\n')
	}

	b.WriteString(indent + Counts(it))
	b.WriteByte('\n')

	_, err := io.WriteString(w, b.String())
	return err
}

// Byline renders "Name @screen_name", flagging protected accounts.
func Byline(a feed.Author) string {
	s := a.Name + " @" + a.ScreenName
	if a.Protected {
		s += " [protected]"
	}
	return s
}

// Counts renders the repost and favorite counters with the viewer's state.
func Counts(it feed.Item) string {
	s := printer.Sprintf("%d RT  %d fav", it.RetweetCount, it.FavoriteCount)
	var marks []string
	if it.Retweeted {
		marks = append(marks, "retweeted")
	}
	if it.Favorited {
		marks = append(marks, "favorited")
	}
	if len(marks) > 0 {
		s += "  [" + strings.Join(marks, ", ") + "]"
	}
	return s
}

// FormatNumber groups digits the English way: 12345 -> "12,345".
func FormatNumber(n int) string {
	return printer.Sprintf("%d", n)
}

// Wrap word-wraps s to width cells.
func Wrap(s string, width int) string {
	return wordwrap.String(s, max(width, 1))
}

// Truncate shortens s to width cells, ending in an ellipsis when cut.
func Truncate(s string, width int) string {
	return runewidth.Truncate(s, width, ellipsis)
}

// Ago renders the age of t relative to now: "now", "45s", "12m", "3h",
// "6d", then a date.
func Ago(t, now time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	d := now.Sub(t)
	switch {
	case d < time.Second:
		return "now"
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d/time.Second))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d/time.Hour))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd", int(d/(24*time.Hour)))
	case t.Year() == now.Year():
		return t.Format("Jan 2")
	default:
		return t.Format("Jan 2, 2006")
	}
}
