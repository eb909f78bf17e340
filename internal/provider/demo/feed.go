package demo

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"math/big"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rshade/feedline/internal/feed"
	"github.com/rshade/feedline/internal/snowflake"
	"github.com/rshade/feedline/internal/timeline"
)

// Defaults used when no option overrides them.
const (
	DefaultTotal    = 300
	DefaultPageSize = 20
	// DefaultBacklog is how many generated items stay unpublished until
	// arrivals reveal them.
	DefaultBacklog = 40

	// OwnScreenName is the account the demo pretends to be signed in as.
	OwnScreenName = "you"

	maxGap   = 50_000
	ownEvery = 11
)

// Errors returned by actions.
var (
	ErrNotFound  = errors.New("item not found")
	ErrForbidden = errors.New("you can only delete your own items")
	ErrEmptyText = errors.New("status text is empty")
)

// baseID is 2^63.
var baseID = new(big.Int).Lsh(big.NewInt(1), 63)

// Feed is an in-memory feed. It is safe for concurrent use.
type Feed struct {
	name     string
	pageSize int
	arrivals int
	latency  time.Duration

	mu sync.Mutex
	// all holds every generated item, newest first.
	all []feed.Item
	// published is the index in all of the newest visible item.
	published int
	deleted   map[string]bool
}

var (
	_ timeline.Paginator = (*Feed)(nil)
	_ timeline.Actions   = (*Feed)(nil)
)

// Option configures a Feed.
type Option func(*options)

type options struct {
	total    int
	backlog  int
	pageSize int
	arrivals int
	latency  time.Duration
	start    time.Time
}

// WithTotal sets how many items are generated.
func WithTotal(n int) Option { return func(o *options) { o.total = n } }

// WithBacklog sets how many of the newest items start unpublished.
func WithBacklog(n int) Option { return func(o *options) { o.backlog = n } }

// WithPageSize sets the maximum number of items per page.
func WithPageSize(n int) Option { return func(o *options) { o.pageSize = n } }

// WithArrivals publishes n backlog items before every FetchNewer.
func WithArrivals(n int) Option { return func(o *options) { o.arrivals = n } }

// WithLatency delays every call, honouring context cancellation.
func WithLatency(d time.Duration) Option { return func(o *options) { o.latency = d } }

// WithStart sets the timestamp of the newest generated item.
func WithStart(t time.Time) Option { return func(o *options) { o.start = t } }

// New generates a feed named name. The same name and options always
// produce the same items.
func New(name string, opts ...Option) *Feed {
	o := options{
		total:    DefaultTotal,
		backlog:  DefaultBacklog,
		pageSize: DefaultPageSize,
		start:    time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC),
	}
	for _, opt := range opts {
		opt(&o)
	}
	o.total = max(o.total, 0)
	o.backlog = min(max(o.backlog, 0), o.total)
	o.pageSize = max(o.pageSize, 1)

	return &Feed{
		name:      name,
		pageSize:  o.pageSize,
		arrivals:  max(o.arrivals, 0),
		latency:   o.latency,
		all:       generate(name, o.total, o.start),
		published: o.backlog,
		deleted:   make(map[string]bool),
	}
}

// Name returns the feed name.
func (f *Feed) Name() string { return f.name }

// publishLocked reveals up to n backlog items and returns how many were revealed.
func (f *Feed) publishLocked(n int) int {
	n = min(max(n, 0), f.published)
	f.published -= n
	return n
}

// FetchNewer returns the newest page of items with ids greater than sinceID.
func (f *Feed) FetchNewer(ctx context.Context, sinceID string) ([]feed.Item, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	if !snowflake.Valid(sinceID) {
		return nil, fmt.Errorf("GET %s: since_id %q: %w", f.name, sinceID, snowflake.ErrInvalidID)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.publishLocked(f.arrivals)

	var page []feed.Item
	for _, it := range f.visibleLocked() {
		if len(page) == f.pageSize {
			break
		}
		if sinceID != snowflake.Zero && !snowflake.Newer(it.ID, sinceID) {
			break
		}
		page = append(page, it)
	}
	return page, nil
}

// FetchOlder returns up to one page of items with ids at most maxID.
// A maxID of "0" starts from the newest item.
func (f *Feed) FetchOlder(ctx context.Context, maxID string) ([]feed.Item, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	if !snowflake.Valid(maxID) {
		return nil, fmt.Errorf("GET %s: max_id %q: %w", f.name, maxID, snowflake.ErrInvalidID)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	var page []feed.Item
	for _, it := range f.visibleLocked() {
		if len(page) == f.pageSize {
			break
		}
		if maxID != snowflake.Zero && snowflake.Newer(it.ID, maxID) {
			continue
		}
		page = append(page, it)
	}
	return page, nil
}

// Favorite marks id as favorited.
func (f *Feed) Favorite(ctx context.Context, id string) (feed.Item, error) {
	return f.update(ctx, "POST favorites/create", id, func(it *feed.Item) {
		if !it.Favorited {
			it.Favorited = true
			it.FavoriteCount++
		}
	})
}

// Unfavorite clears the favorite mark on id.
func (f *Feed) Unfavorite(ctx context.Context, id string) (feed.Item, error) {
	return f.update(ctx, "POST favorites/destroy", id, func(it *feed.Item) {
		if it.Favorited {
			it.Favorited = false
			it.FavoriteCount--
		}
	})
}

// Retweet marks id as reposted.
func (f *Feed) Retweet(ctx context.Context, id string) (feed.Item, error) {
	return f.update(ctx, "POST statuses/retweet", id, func(it *feed.Item) {
		if !it.Retweeted {
			it.Retweeted = true
			it.RetweetCount++
		}
	})
}

// Unretweet clears the repost mark on id.
func (f *Feed) Unretweet(ctx context.Context, id string) (feed.Item, error) {
	return f.update(ctx, "POST statuses/unretweet", id, func(it *feed.Item) {
		if it.Retweeted {
			it.Retweeted = false
			it.RetweetCount--
		}
	})
}

// Delete removes one of the signed-in account's own items.
func (f *Feed) Delete(ctx context.Context, id string) error {
	if err := f.wait(ctx); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	i := f.indexLocked(id)
	if i < 0 {
		return fmt.Errorf("POST statuses/destroy: %w", ErrNotFound)
	}
	if f.all[i].Author.ScreenName != OwnScreenName {
		return fmt.Errorf("POST statuses/destroy: %w", ErrForbidden)
	}
	f.deleted[id] = true
	return nil
}

// Post publishes a new item by the signed-in account. It gets an id two
// above the newest visible item; backlog items are published first when
// there is no room below them.
func (f *Feed) Post(ctx context.Context, text string) (feed.Item, error) {
	if err := f.wait(ctx); err != nil {
		return feed.Item{}, err
	}
	if strings.TrimSpace(text) == "" {
		return feed.Item{}, fmt.Errorf("POST statuses/update: %w", ErrEmptyText)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	for {
		newest := baseID.String()
		if f.published < len(f.all) {
			newest = f.all[f.published].ID
		}
		// Timelines ask for since_id newest+1, so the post must sit above it.
		id := snowflake.MustIncrement(snowflake.MustIncrement(newest))
		if f.published > 0 && !snowflake.Newer(f.all[f.published-1].ID, id) {
			f.publishLocked(1)
			continue
		}

		it := feed.Item{
			ID:        id,
			Text:      text,
			Author:    own,
			CreatedAt: time.Now(),
		}
		f.all = slices.Insert(f.all, f.published, it)
		return it, nil
	}
}

func (f *Feed) update(ctx context.Context, endpoint, id string, apply func(*feed.Item)) (feed.Item, error) {
	if err := f.wait(ctx); err != nil {
		return feed.Item{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	i := f.indexLocked(id)
	if i < 0 {
		return feed.Item{}, fmt.Errorf("%s: %w", endpoint, ErrNotFound)
	}
	apply(&f.all[i])
	return f.all[i], nil
}

func (f *Feed) indexLocked(id string) int {
	for i := f.published; i < len(f.all); i++ {
		if f.all[i].ID == id && !f.deleted[id] {
			return i
		}
	}
	return -1
}

func (f *Feed) visibleLocked() []feed.Item {
	out := make([]feed.Item, 0, len(f.all)-f.published)
	for _, it := range f.all[f.published:] {
		if !f.deleted[it.ID] {
			out = append(out, it)
		}
	}
	return out
}

func (f *Feed) wait(ctx context.Context) error {
	if f.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(f.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// seed derives a per-feed seed from its name.
func seed(name string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(strings.ToLower(name)))
	return h.Sum64()
}
