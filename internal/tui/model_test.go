package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/feedline/internal/feed"
	"github.com/rshade/feedline/internal/provider/demo"
	"github.com/rshade/feedline/internal/snowflake"
	"github.com/rshade/feedline/internal/timeline"
)

var testNow = time.Date(2024, time.January, 1, 12, 30, 0, 0, time.UTC)

// drain runs cmd and every command it produces, feeding messages back into
// the model. Spinner ticks are dropped so the loop terminates.
func drain(t *testing.T, m tea.Model, cmd tea.Cmd) tea.Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		switch msg := next().(type) {
		case nil, spinner.TickMsg, tea.QuitMsg:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			var c tea.Cmd
			m, c = m.Update(msg)
			queue = append(queue, c)
		}
	}
	return m
}

func press(t *testing.T, m tea.Model, k string) tea.Model {
	t.Helper()
	var msg tea.KeyMsg
	switch k {
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "pgdown":
		msg = tea.KeyMsg{Type: tea.KeyPgDown}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	m, cmd := m.Update(msg)
	return drain(t, m, cmd)
}

type fixture struct {
	feeds   map[string]*demo.Feed
	columns *timeline.Columns
	model   tea.Model
}

func newFixture(t *testing.T, names ...string) fixture {
	t.Helper()
	f := fixture{feeds: map[string]*demo.Feed{}, columns: timeline.NewColumns()}
	for i, name := range names {
		fd := demo.New(name, demo.WithTotal(30), demo.WithBacklog(0), demo.WithPageSize(5))
		f.feeds[name] = fd
		kind := timeline.KindHome
		if i > 0 {
			kind = timeline.KindMentions
		}
		require.NoError(t, f.columns.Add(timeline.New(name, kind, fd, 3)))
	}

	m := New(context.Background(), f.columns, Options{
		Actions: func(column string) timeline.Actions {
			if fd, ok := f.feeds[column]; ok {
				return fd
			}
			return nil
		},
		Now: func() time.Time { return testNow },
	})
	f.model = drain(t, m, m.Init())
	return f
}

func (f fixture) current() *timeline.Timeline { return f.columns.Current() }

func TestModel_InitLoadsEveryColumn(t *testing.T) {
	f := newFixture(t, "Home", "Mentions")

	for _, tl := range f.columns.All() {
		assert.Equal(t, 5, tl.Len(), tl.Name())
		assert.False(t, tl.Busy())
	}
	view := f.model.View()
	assert.Contains(t, view, "Home")
	assert.Contains(t, view, "Mentions")
	assert.Contains(t, view, "1 / 5")
}

func TestModel_NavigationFetchesOlder(t *testing.T) {
	f := newFixture(t, "Home")
	m := f.model
	tl := f.current()

	// The fifth press hits the loaded tail and fetches instead of moving.
	for range 5 {
		m = press(t, m, "j")
	}
	pos, total := tl.Position()
	assert.Equal(t, 5, pos)
	assert.Equal(t, 10, total)

	m = press(t, m, "j")
	pos, _ = tl.Position()
	assert.Equal(t, 6, pos)

	m = press(t, m, "k")
	pos, _ = tl.Position()
	assert.Equal(t, 5, pos)

	press(t, m, "0")
	assert.Equal(t, 0, tl.Cursor())
	pos, _ = tl.Position()
	assert.Equal(t, 2, pos)
}

func TestModel_GrowAndShrink(t *testing.T) {
	f := newFixture(t, "Home")
	m := press(t, f.model, "+")
	assert.Equal(t, 4, f.current().Size())
	m = press(t, m, "-")
	m = press(t, m, "-")
	assert.Equal(t, 2, f.current().Size())
	assert.Contains(t, m.View(), "rows 2")
}

func TestModel_ColumnSwitching(t *testing.T) {
	f := newFixture(t, "Home", "Mentions")
	m := press(t, f.model, "]")
	assert.Equal(t, "Mentions", f.current().Name())
	m = press(t, m, "j")
	assert.Equal(t, 1, f.current().Focus())

	m = press(t, m, "[")
	assert.Equal(t, "Home", f.current().Name())
	assert.Equal(t, 0, f.current().Focus())
	_ = m
}

func TestModel_Favorite(t *testing.T) {
	f := newFixture(t, "Home")
	before, ok := f.current().Focused()
	require.True(t, ok)
	require.False(t, before.Favorited)

	m := press(t, f.model, "f")

	after, ok := f.current().Focused()
	require.True(t, ok)
	assert.Equal(t, before.ID, after.ID)
	assert.True(t, after.Favorited)
	assert.Equal(t, before.FavoriteCount+1, after.FavoriteCount)
	assert.Contains(t, f.current().Result(), "Successfully favorited: @"+before.Author.ScreenName)
	assert.Contains(t, m.View(), "Successfully favorited")

	press(t, m, "f")
	again, _ := f.current().Focused()
	assert.False(t, again.Favorited)
}

func TestModel_DeleteNeedsConfirmation(t *testing.T) {
	f := newFixture(t, "Home")
	m := f.model
	tl := f.current()

	// Walk to the first own item.
	var own feed.Item
	for range 30 {
		it, ok := tl.Focused()
		require.True(t, ok)
		if it.Author.ScreenName == demo.OwnScreenName {
			own = it
			break
		}
		m = press(t, m, "j")
	}
	require.NotEmpty(t, own.ID, "no own item in feed")
	total := tl.Len()

	m = press(t, m, "d")
	assert.Equal(t, total, tl.Len())
	assert.Contains(t, tl.Result(), "Press d again")

	press(t, m, "d")
	assert.Equal(t, total-1, tl.Len())
	assert.Contains(t, tl.Result(), "Successfully deleted")
}

func TestModel_DeleteOtherAccountFails(t *testing.T) {
	f := newFixture(t, "Home")
	tl := f.current()
	it, ok := tl.Focused()
	require.True(t, ok)
	if it.Author.ScreenName == demo.OwnScreenName {
		t.Skip("newest item is own")
	}

	m := press(t, f.model, "d")
	press(t, m, "d")
	assert.Equal(t, 5, tl.Len())
	assert.Contains(t, tl.Err(), demo.ErrForbidden.Error())
}

func TestModel_DetailView(t *testing.T) {
	f := newFixture(t, "Home")
	it, _ := f.current().Focused()

	m := press(t, f.model, "enter")
	require.Equal(t, ViewDetail, m.(Model).state)
	view := m.View()
	assert.Contains(t, view, "Item "+it.ID)
	assert.Contains(t, view, Hint(HintTimelineDetail))

	// Navigation keys are ignored while the detail is open.
	m = press(t, m, "j")
	assert.Equal(t, 0, f.current().Focus())

	m = press(t, m, "esc")
	assert.Equal(t, ViewTimeline, m.(Model).state)
	assert.Contains(t, m.View(), Hint(HintTimeline))
}

func TestModel_ComposeAndPost(t *testing.T) {
	f := newFixture(t, "Home")
	tl := f.current()
	tl.SetResult("old result")

	m := press(t, f.model, "n")
	require.Equal(t, ViewCompose, m.(Model).state)
	assert.Empty(t, tl.Result())
	assert.Contains(t, m.View(), Hint(HintTimelineNewInput))

	// Letters are typed into the draft, not treated as commands.
	m = press(t, m, "q")
	m = press(t, m, "f")
	m = press(t, m, " hello")
	assert.Equal(t, "qf hello", m.(Model).compose.Value())
	assert.False(t, f.current().Busy())

	m = press(t, m, "enter")
	assert.Contains(t, m.View(), Hint(HintTimelineNewConfirm))
	m = press(t, m, "esc")
	require.Equal(t, ViewCompose, m.(Model).state)
	assert.Contains(t, m.View(), Hint(HintTimelineNewInput))

	m = press(t, m, "enter")
	m = press(t, m, "enter")

	assert.Equal(t, ViewTimeline, m.(Model).state)
	assert.Empty(t, m.(Model).compose.Value())
	assert.Equal(t, `Successfully tweeted: "qf hello"`, tl.Result())

	newest, err := f.feeds["Home"].FetchNewer(context.Background(), snowflake.Zero)
	require.NoError(t, err)
	assert.Equal(t, "qf hello", newest[0].Text)
	assert.Equal(t, demo.OwnScreenName, newest[0].Author.ScreenName)

	// The post arrives with the next refresh.
	press(t, m, "r")
	assert.Equal(t, 6, tl.Len())
}

func TestModel_ComposeEmptyDraftNeedsText(t *testing.T) {
	f := newFixture(t, "Home")
	m := press(t, f.model, "n")
	m = press(t, m, "enter")
	assert.False(t, m.(Model).confirm)
	assert.Contains(t, m.View(), Hint(HintTimelineNewInput))

	m = press(t, m, "esc")
	assert.Equal(t, ViewTimeline, m.(Model).state)

	m = press(t, m, "n")
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, ViewQuitting, next.(Model).state)
}

func TestModel_MentionFromDetail(t *testing.T) {
	f := newFixture(t, "Home")
	it, _ := f.current().Focused()

	m := press(t, f.model, "enter")
	m = press(t, m, "m")

	require.Equal(t, ViewCompose, m.(Model).state)
	assert.Equal(t, "@"+it.Author.ScreenName+" ", m.(Model).compose.Value())
}

func TestModel_RedraftDeletesAndReopens(t *testing.T) {
	f := newFixture(t, "Home")
	m := f.model
	tl := f.current()

	var own feed.Item
	for range 30 {
		it, ok := tl.Focused()
		require.True(t, ok)
		if it.Author.ScreenName == demo.OwnScreenName {
			own = it
			break
		}
		m = press(t, m, "j")
	}
	require.NotEmpty(t, own.ID, "no own item in feed")
	total := tl.Len()

	m = press(t, m, "enter")
	m = press(t, m, "e")

	assert.Equal(t, total-1, tl.Len())
	require.Equal(t, ViewCompose, m.(Model).state)
	assert.Equal(t, own.Text, m.(Model).compose.Value())
}

func TestModel_RedraftOtherAccountStaysInDetail(t *testing.T) {
	f := newFixture(t, "Home")
	it, _ := f.current().Focused()
	if it.Author.ScreenName == demo.OwnScreenName {
		t.Skip("newest item is own")
	}

	m := press(t, f.model, "enter")
	m = press(t, m, "e")

	assert.Equal(t, ViewDetail, m.(Model).state)
	assert.Empty(t, m.(Model).redraft)
	assert.Contains(t, f.current().Err(), demo.ErrForbidden.Error())
}

func TestModel_CloseColumn(t *testing.T) {
	f := newFixture(t, "Home", "Mentions")
	m := press(t, f.model, "]")
	m = press(t, m, "x")

	assert.Equal(t, 1, f.columns.Len())
	assert.Equal(t, "Home", f.current().Name())
	assert.NotContains(t, m.View(), "Mentions")

	press(t, m, "x")
	assert.Equal(t, 1, f.columns.Len())
	assert.Equal(t, ErrLastColumn.Error(), f.current().Err())
}

func TestModel_EscClearsMessages(t *testing.T) {
	f := newFixture(t, "Home")
	f.current().SetError("rate limited")

	press(t, f.model, "esc")
	assert.Empty(t, f.current().Err())
	assert.Empty(t, f.current().Result())
}

func TestModel_Quit(t *testing.T) {
	f := newFixture(t, "Home")
	m, cmd := f.model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, ViewQuitting, m.(Model).state)
	assert.Empty(t, m.View())
}

func TestModel_IgnoresKeysWhileBusy(t *testing.T) {
	f := newFixture(t, "Home")
	m := f.model
	for range 4 {
		m = press(t, m, "j")
	}

	// Reach the bottom without running the fetch.
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	require.NotNil(t, cmd)
	tl := f.current()
	require.True(t, tl.Busy())

	m, again := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Nil(t, again)
	m, fav := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("f")})
	assert.Nil(t, fav)
	assert.Contains(t, m.View(), "Loading...")

	drain(t, m, cmd)
	assert.False(t, tl.Busy())
	assert.Equal(t, 10, tl.Len())
}

func TestModel_FetchErrorShown(t *testing.T) {
	columns := timeline.NewColumns()
	failing := timeline.PaginatorFunc{
		Newer: func(context.Context, string) ([]feed.Item, error) {
			return nil, errors.New("rate limited")
		},
	}
	require.NoError(t, columns.Add(timeline.New("Home", timeline.KindHome, failing, 3)))

	m := New(context.Background(), columns, Options{})
	out := drain(t, m, m.Init())
	assert.Contains(t, out.View(), "Error: rate limited")

	out = press(t, out, "f")
	assert.Equal(t, ErrNoActions.Error(), columns.Current().Err())
}

func TestHintKeyFor(t *testing.T) {
	tests := []struct {
		view    ViewState
		kind    timeline.Kind
		confirm bool
		want    HintKey
	}{
		{ViewTimeline, timeline.KindHome, false, HintTimeline},
		{ViewTimeline, timeline.KindMentions, false, HintTimeline},
		{ViewTimeline, timeline.KindList, false, HintListTimeline},
		{ViewTimeline, timeline.KindSearch, false, HintSearchTimeline},
		{ViewDetail, timeline.KindSearch, false, HintTimelineDetail},
		{ViewCompose, timeline.KindHome, false, HintTimelineNewInput},
		{ViewCompose, timeline.KindList, true, HintTimelineNewConfirm},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, hintKeyFor(tt.view, tt.kind, tt.confirm))
	}
	assert.Empty(t, Hint(HintNone))
	assert.True(t, strings.HasPrefix(Hint(HintTimeline), "[t] retweet"))
}
