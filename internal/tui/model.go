package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/rshade/feedline/internal/logging"
	"github.com/rshade/feedline/internal/timeline"
)

// ViewState is the screen the model is showing.
type ViewState int

// View states.
const (
	ViewTimeline ViewState = iota
	ViewDetail
	ViewCompose
	ViewQuitting
)

const (
	defaultWidth  = 100
	defaultHeight = 40

	// maxPostLength is the longest post the compose box accepts.
	maxPostLength = 280
)

var (
	// ErrNoActions is shown when the columns were built without an action provider.
	ErrNoActions = errors.New("actions are not available for this column")
	// ErrLastColumn is shown when closing the only remaining column.
	ErrLastColumn = errors.New("cannot close the last column")
)

// ActionsFunc returns the action provider for a column, or nil.
type ActionsFunc func(column string) timeline.Actions

// Options configures a Model.
type Options struct {
	// Actions resolves the provider used for item actions and posting.
	Actions ActionsFunc
	// Now anchors relative timestamps. Defaults to time.Now.
	Now func() time.Time
}

// Model is the Bubble Tea model over a set of timeline columns.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type Model struct {
	ctx     context.Context
	columns *timeline.Columns
	actions ActionsFunc
	now     func() time.Time

	state    ViewState
	keys     KeyMap
	help     help.Model
	spinner  spinner.Model
	showHelp bool

	// pendingDelete holds the id awaiting a second delete press.
	pendingDelete string

	compose textinput.Model
	// confirm is set once the draft is accepted and waits for a final enter.
	confirm bool
	// redraft holds the text to reopen in the compose box after a delete.
	redraft string

	width  int
	height int
}

// New creates a model over columns. Every column is fetched on Init.
func New(ctx context.Context, columns *timeline.Columns, opts Options) Model {
	h := help.New()
	h.ShortSeparator = " │ "

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return Model{
		ctx:     ctx,
		columns: columns,
		actions: opts.Actions,
		now:     now,
		state:   ViewTimeline,
		keys:    DefaultKeyMap(),
		help:    h,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(NameStyle)),
		compose: newComposeInput(),
		width:   defaultWidth,
		height:  defaultHeight,
	}
}

func newComposeInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "What's happening?"
	ti.Prompt = "> "
	ti.CharLimit = maxPostLength
	ti.Width = defaultWidth - frameWidth - len(ti.Prompt)
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

// Init starts the spinner and the first fetch of every column.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}
	for _, tl := range m.columns.All() {
		cmds = append(cmds, m.move(tl, timeline.IntentRefresh))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.compose.Width = max(m.boxWidth()-frameWidth-len(m.compose.Prompt), 1)
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case FetchedMsg:
		return m.handleFetched(msg)
	case ActionDoneMsg:
		return m.handleActionDone(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleFetched(msg FetchedMsg) (tea.Model, tea.Cmd) {
	tl := m.columns.Get(msg.Result.Request.Column)
	if tl == nil {
		return m, nil
	}
	added := tl.Apply(msg.Result)
	m.logger().Debug().
		Str("component", "tui").
		Str("column", tl.Name()).
		Int("added", added).
		Int("loaded", tl.Len()).
		Msg("fetch applied")
	return m, nil
}

func (m Model) handleActionDone(msg ActionDoneMsg) (tea.Model, tea.Cmd) {
	tl := m.columns.Get(msg.Result.Request.Column)
	if tl == nil {
		return m, nil
	}
	tl.ApplyAction(msg.Result)

	redraft := m.redraft
	m.redraft = ""
	if msg.Result.Err != nil {
		m.confirm = false
		return m, nil
	}
	switch msg.Result.Request.Process {
	case timeline.ProcessDelete:
		if redraft != "" {
			m.openCompose(redraft)
		} else if m.state == ViewDetail {
			m.state = ViewTimeline
		}
	case timeline.ProcessTweet:
		m.closeCompose()
	case timeline.ProcessNone, timeline.ProcessUpdate, timeline.ProcessFavorite, timeline.ProcessRetweet:
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.state == ViewCompose {
		return m.handleComposeKey(msg)
	}
	if key.Matches(msg, m.keys.Quit) {
		m.state = ViewQuitting
		return m, tea.Quit
	}

	tl := m.columns.Current()
	if tl == nil {
		return m, nil
	}

	pending := m.pendingDelete
	m.pendingDelete = ""

	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil
	case key.Matches(msg, m.keys.Favorite):
		return m, m.action(tl, timeline.ProcessFavorite)
	case key.Matches(msg, m.keys.Retweet):
		return m, m.action(tl, timeline.ProcessRetweet)
	case key.Matches(msg, m.keys.Delete):
		return m.handleDelete(tl, pending)
	}

	if m.state == ViewDetail {
		return m.handleDetailKey(tl, msg)
	}
	return m.handleTimelineKey(tl, msg)
}

func (m Model) handleDetailKey(tl *timeline.Timeline, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	item, ok := tl.Focused()
	switch {
	case key.Matches(msg, m.keys.Back):
		m.state = ViewTimeline
	case key.Matches(msg, m.keys.Mention) && ok:
		tl.ClearMessages()
		m.openCompose("@" + item.Author.ScreenName + " ")
	case key.Matches(msg, m.keys.Redraft) && ok && !tl.Busy():
		cmd := m.action(tl, timeline.ProcessDelete)
		if cmd != nil {
			m.redraft = item.Text
		}
		return m, cmd
	}
	return m, nil
}

// handleComposeKey drives the compose box: the first enter accepts the
// draft, the second posts it. esc steps back one stage.
func (m Model) handleComposeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.state = ViewQuitting
		return m, tea.Quit
	}
	tl := m.columns.Current()
	if tl == nil || tl.Busy() {
		return m, nil
	}

	switch msg.Type {
	case tea.KeyEsc:
		if m.confirm {
			m.confirm = false
			return m, nil
		}
		m.closeCompose()
		return m, nil
	case tea.KeyEnter:
		if !m.confirm {
			m.confirm = strings.TrimSpace(m.compose.Value()) != ""
			return m, nil
		}
		return m, m.post(tl, m.compose.Value())
	}

	if m.confirm {
		return m, nil
	}
	var cmd tea.Cmd
	m.compose, cmd = m.compose.Update(msg)
	return m, cmd
}

func (m *Model) openCompose(text string) {
	m.state = ViewCompose
	m.confirm = false
	m.compose.SetValue(text)
	m.compose.CursorEnd()
	m.compose.Focus()
}

func (m *Model) closeCompose() {
	m.state = ViewTimeline
	m.confirm = false
	m.compose.Reset()
	m.compose.Blur()
}

func (m Model) handleTimelineKey(tl *timeline.Timeline, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Detail):
		if _, ok := tl.Focused(); ok {
			m.state = ViewDetail
		}
		return m, nil
	case key.Matches(msg, m.keys.PrevColumn):
		m.columns.Prev()
		return m, nil
	case key.Matches(msg, m.keys.NextColumn):
		m.columns.Next()
		return m, nil
	case key.Matches(msg, m.keys.CloseColumn):
		if m.columns.Len() < 2 {
			tl.SetError(ErrLastColumn.Error())
			return m, nil
		}
		m.columns.Close(tl.Name())
		return m, nil
	case key.Matches(msg, m.keys.Compose):
		tl.ClearMessages()
		m.openCompose("")
		return m, nil
	case key.Matches(msg, m.keys.Back):
		tl.ClearMessages()
		return m, nil
	}

	intents := []struct {
		binding key.Binding
		intent  timeline.Intent
	}{
		{m.keys.Prev, timeline.IntentPrev},
		{m.keys.Next, timeline.IntentNext},
		{m.keys.PageUp, timeline.IntentPageUp},
		{m.keys.PageDown, timeline.IntentPageDown},
		{m.keys.Top, timeline.IntentTop},
		{m.keys.Bottom, timeline.IntentBottom},
		{m.keys.Grow, timeline.IntentGrow},
		{m.keys.Shrink, timeline.IntentShrink},
		{m.keys.Refresh, timeline.IntentRefresh},
	}
	for _, in := range intents {
		if key.Matches(msg, in.binding) {
			return m, m.move(tl, in.intent)
		}
	}
	return m, nil
}

// handleDelete asks for confirmation on the first press and deletes on the second.
func (m Model) handleDelete(tl *timeline.Timeline, pending string) (tea.Model, tea.Cmd) {
	item, ok := tl.Focused()
	if !ok || tl.Busy() {
		return m, nil
	}
	if pending != item.ID {
		m.pendingDelete = item.ID
		tl.SetResult("Press d again to delete this item")
		return m, nil
	}
	return m, m.action(tl, timeline.ProcessDelete)
}

// move applies intent and returns the fetch command it needs, if any.
func (m Model) move(tl *timeline.Timeline, intent timeline.Intent) tea.Cmd {
	req, err := tl.Move(intent)
	if err != nil {
		if !errors.Is(err, timeline.ErrBusy) {
			tl.SetError(err.Error())
		}
		return nil
	}
	if req == nil {
		return nil
	}
	return fetchCmd(m.ctx, tl, *req)
}

// action starts p on the focused item of tl.
func (m Model) action(tl *timeline.Timeline, p timeline.Process) tea.Cmd {
	return m.run(tl, func() (*timeline.ActionRequest, error) { return tl.BeginAction(p) })
}

// post starts publishing text from the column tl.
func (m Model) post(tl *timeline.Timeline, text string) tea.Cmd {
	return m.run(tl, func() (*timeline.ActionRequest, error) { return tl.BeginPost(text) })
}

func (m Model) run(tl *timeline.Timeline, begin func() (*timeline.ActionRequest, error)) tea.Cmd {
	var actions timeline.Actions
	if m.actions != nil {
		actions = m.actions(tl.Name())
	}
	if actions == nil {
		tl.SetError(ErrNoActions.Error())
		return nil
	}

	req, err := begin()
	if err != nil {
		if !errors.Is(err, timeline.ErrBusy) {
			tl.SetError(err.Error())
		}
		return nil
	}
	return actionCmd(m.ctx, actions, *req)
}

func (m Model) logger() *zerolog.Logger {
	return logging.FromContext(m.ctx)
}

func fetchCmd(ctx context.Context, tl *timeline.Timeline, req timeline.FetchRequest) tea.Cmd {
	return func() tea.Msg {
		return FetchedMsg{Result: tl.Fetch(ctx, req)}
	}
}

func actionCmd(ctx context.Context, actions timeline.Actions, req timeline.ActionRequest) tea.Cmd {
	return func() tea.Msg {
		return ActionDoneMsg{Result: timeline.RunAction(ctx, actions, req)}
	}
}
