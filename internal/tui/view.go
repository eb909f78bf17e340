package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/feedline/internal/feed"
	"github.com/rshade/feedline/internal/render"
	"github.com/rshade/feedline/internal/timeline"
)

const (
	// frameWidth is the border plus padding an item box adds on each line.
	frameWidth  = 4
	minBoxWidth = 24
	timeLayout  = "2006-01-02 15:04:05"
)

// View renders the current screen.
func (m Model) View() string {
	if m.state == ViewQuitting {
		return ""
	}

	tl := m.columns.Current()
	if tl == nil {
		return DimStyle.Render("No columns configured.") + "\n"
	}

	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	if m.state == ViewDetail {
		b.WriteString(m.renderDetail(tl))
	} else {
		b.WriteString(m.renderItems(tl))
	}
	if m.state == ViewCompose {
		b.WriteString(m.renderCompose())
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatus(tl))
	b.WriteString("\n")
	b.WriteString(m.renderHints(tl))
	return b.String()
}

func (m Model) boxWidth() int {
	return max(m.width-2, minBoxWidth)
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, m.columns.Len())
	current := m.columns.CurrentIndex()
	for i, tl := range m.columns.All() {
		label := tl.Name()
		if tl.Busy() {
			label += " " + m.spinner.View()
		}
		if i == current {
			tabs = append(tabs, ActiveTabStyle.Render(label))
		} else {
			tabs = append(tabs, TabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderItems(tl *timeline.Timeline) string {
	items := tl.Visible()
	if len(items) == 0 {
		if tl.Busy() {
			return m.spinner.View() + " Loading " + tl.Name() + "...\n"
		}
		return DimStyle.Render("  (no items)") + "\n"
	}

	focus := tl.Focus()
	blocks := make([]string, 0, len(items))
	for i, it := range items {
		blocks = append(blocks, m.renderItem(it, i == focus))
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...) + "\n"
}

// renderItem draws one boxed item. Counts are only shown on the focused item.
func (m Model) renderItem(it feed.Item, focused bool) string {
	width := m.boxWidth()
	inner := width - frameWidth

	var lines []string
	if it.IsRetweet() {
		lines = append(lines, DimStyle.Render("RT by ")+
			RetweetNameStyle.Render(render.Truncate(render.Byline(*it.RetweetedBy), max(inner-len("RT by "), 1))))
	}
	ago := " (" + render.Ago(it.CreatedAt, m.now()) + ")"
	byline := render.Truncate(render.Byline(it.Author), max(inner-len(ago), 1))
	lines = append(lines, NameStyle.Render(byline)+DimStyle.Render(ago))
	lines = append(lines, render.Wrap(itemText(it), inner))
	if focused {
		lines = append(lines, renderCounts(it))
	}

	style := ItemStyle
	if focused {
		style = FocusedItemStyle
	}
	return style.Width(width - 2).Render(strings.Join(lines, "\n"))
}

func (m Model) renderDetail(tl *timeline.Timeline) string {
	it, ok := tl.Focused()
	if !ok {
		return DimStyle.Render("  (nothing selected)") + "\n"
	}
	width := m.boxWidth()
	inner := width - frameWidth

	lines := []string{HeaderStyle.Render("Item " + it.ID), ""}
	if it.IsRetweet() {
		lines = append(lines, "Retweeted by "+RetweetNameStyle.Render(render.Byline(*it.RetweetedBy)))
	}
	lines = append(lines,
		"Author:  "+NameStyle.Render(render.Byline(it.Author)),
		"Posted:  "+postedAt(it),
		"",
		render.Wrap(itemText(it), inner),
		"",
		renderCounts(it),
	)
	return FocusedItemStyle.Width(width-2).Render(strings.Join(lines, "\n")) + "\n"
}

func (m Model) renderCompose() string {
	counter := fmt.Sprintf("%d/%d", len([]rune(m.compose.Value())), maxPostLength)
	lines := []string{HeaderStyle.Render("New tweet") + "  " + DimStyle.Render(counter), m.compose.View()}
	if m.confirm {
		lines = append(lines, ResultStyle.Render("Press enter to tweet"))
	}
	return FocusedItemStyle.Width(m.boxWidth()-2).Render(strings.Join(lines, "\n")) + "\n"
}

func (m Model) renderStatus(tl *timeline.Timeline) string {
	pos, total := tl.Position()
	if total == 0 {
		pos = 0
	}
	position := DimStyle.Render(fmt.Sprintf("%s / %s  rows %d",
		render.FormatNumber(pos), render.FormatNumber(total), tl.Size()))

	var status string
	switch {
	case tl.Busy():
		status = m.spinner.View() + " " + processLabel(tl.Process())
	case tl.Err() != "":
		status = ErrorStyle.Render("Error: " + tl.Err())
	case tl.Result() != "":
		status = ResultStyle.Render(tl.Result())
	}
	if status == "" {
		return position
	}
	return position + "  " + status
}

func (m Model) renderHints(tl *timeline.Timeline) string {
	var parts []string
	if h := Hint(hintKeyFor(m.state, tl.Kind(), m.confirm)); h != "" {
		parts = append(parts, HintStyle.Render(h))
	}
	if m.showHelp {
		parts = append(parts, m.help.FullHelpView(m.keys.FullHelp()))
	} else {
		parts = append(parts, m.help.ShortHelpView(m.keys.ShortHelp()))
	}
	return strings.Join(parts, "\n")
}

func renderCounts(it feed.Item) string {
	rt := fmt.Sprintf("%s RT", render.FormatNumber(it.RetweetCount))
	if it.Retweeted {
		rt = RetweetOnStyle.Render(rt)
	}
	fav := fmt.Sprintf("%s fav", render.FormatNumber(it.FavoriteCount))
	if it.Favorited {
		fav = FavoriteOnStyle.Render(fav)
	}
	return rt + "  " + fav
}

func itemText(it feed.Item) string {
	if it.HasMedia {
		return it.Text + " (with Media)"
	}
	return it.Text
}

func postedAt(it feed.Item) string {
	if it.CreatedAt.IsZero() {
		return "unknown"
	}
	return it.CreatedAt.Local().Format(timeLayout)
}

func processLabel(p timeline.Process) string {
	switch p {
	case timeline.ProcessUpdate:
		return "Loading..."
	case timeline.ProcessFavorite:
		return "Updating favorite..."
	case timeline.ProcessRetweet:
		return "Updating retweet..."
	case timeline.ProcessDelete:
		return "Deleting..."
	case timeline.ProcessTweet:
		return "Tweeting..."
	case timeline.ProcessNone:
		return ""
	default:
		return ""
	}
}
