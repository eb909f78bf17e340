package demo

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/feedline/internal/feed"
	"github.com/rshade/feedline/internal/snowflake"
	"github.com/rshade/feedline/internal/timeline"
)

func TestNew_Deterministic(t *testing.T) {
	a := New("Home", WithTotal(50))
	b := New("Home", WithTotal(50))
	c := New("Mentions", WithTotal(50))

	assert.Equal(t, a.all, b.all)
	assert.NotEqual(t, a.all[0].ID, c.all[0].ID)
}

func TestNew_IDsAboveInt64(t *testing.T) {
	f := New("Home", WithTotal(100))
	limit := new(big.Int).Lsh(big.NewInt(1), 63)

	for i, it := range f.all {
		id, ok := new(big.Int).SetString(it.ID, 10)
		require.True(t, ok, it.ID)
		assert.Positive(t, id.Cmp(limit), "id %s not above 2^63", it.ID)
		if i == 0 {
			continue
		}
		prev, _ := new(big.Int).SetString(f.all[i-1].ID, 10)
		gap := new(big.Int).Sub(prev, id)
		assert.GreaterOrEqual(t, gap.Int64(), int64(2))
	}
}

func TestFeed_Pages(t *testing.T) {
	f := New("Home", WithTotal(30), WithBacklog(0), WithPageSize(10))
	ctx := context.Background()

	first, err := f.FetchOlder(ctx, snowflake.Zero)
	require.NoError(t, err)
	require.Len(t, first, 10)
	assert.Equal(t, f.all[0].ID, first[0].ID)

	// max_id is inclusive upstream: the decremented bound excludes the last item.
	next, err := f.FetchOlder(ctx, snowflake.MustDecrement(first[9].ID))
	require.NoError(t, err)
	require.Len(t, next, 10)
	assert.Equal(t, f.all[10].ID, next[0].ID)

	same, err := f.FetchOlder(ctx, first[9].ID)
	require.NoError(t, err)
	assert.Equal(t, first[9].ID, same[0].ID)

	newer, err := f.FetchNewer(ctx, snowflake.MustIncrement(f.all[3].ID))
	require.NoError(t, err)
	require.Len(t, newer, 3)
	assert.Equal(t, f.all[2].ID, newer[2].ID)

	none, err := f.FetchNewer(ctx, snowflake.MustIncrement(f.all[0].ID))
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = f.FetchOlder(ctx, "abc")
	require.ErrorIs(t, err, snowflake.ErrInvalidID)
}

func TestFeed_Backlog(t *testing.T) {
	f := New("Home", WithTotal(30), WithBacklog(5), WithArrivals(2))
	ctx := context.Background()
	assert.Equal(t, 25, visibleCount(f))

	top, err := f.FetchOlder(ctx, snowflake.Zero)
	require.NoError(t, err)
	assert.Equal(t, f.all[5].ID, top[0].ID)

	newer, err := f.FetchNewer(ctx, snowflake.MustIncrement(top[0].ID))
	require.NoError(t, err)
	require.Len(t, newer, 2)
	assert.Equal(t, f.all[3].ID, newer[0].ID)

	assert.Equal(t, 3, publish(f, 10))
	assert.Equal(t, 0, publish(f, 1))
	assert.Equal(t, 30, visibleCount(f))
}

// Paging a whole demo feed through a Timeline visits every item exactly once.
func TestFeed_TimelineWalk(t *testing.T) {
	f := New("Home", WithTotal(57), WithBacklog(0), WithPageSize(8))
	tl := timeline.New("Home", timeline.KindHome, f, 5)
	ctx := context.Background()

	_, err := tl.Load(ctx)
	require.NoError(t, err)

	seen := map[string]bool{}
	var order []string
	for range 200 {
		it, ok := tl.Focused()
		require.True(t, ok)
		if !seen[it.ID] {
			seen[it.ID] = true
			order = append(order, it.ID)
		}
		req, err := tl.Move(timeline.IntentNext)
		require.NoError(t, err)
		if req != nil {
			tl.Apply(tl.Fetch(ctx, *req))
		}
	}

	assert.Equal(t, 57, tl.Len())
	require.Len(t, order, 57)
	for i, it := range f.all {
		assert.Equal(t, it.ID, order[i])
	}
}

func TestFeed_Actions(t *testing.T) {
	f := New("Home", WithTotal(30), WithBacklog(0))
	ctx := context.Background()
	target := f.all[1]

	fav, err := f.Favorite(ctx, target.ID)
	require.NoError(t, err)
	assert.True(t, fav.Favorited)
	assert.Equal(t, target.FavoriteCount+1, fav.FavoriteCount)

	fav, err = f.Favorite(ctx, target.ID)
	require.NoError(t, err)
	assert.Equal(t, target.FavoriteCount+1, fav.FavoriteCount)

	unfav, err := f.Unfavorite(ctx, target.ID)
	require.NoError(t, err)
	assert.False(t, unfav.Favorited)
	assert.Equal(t, target.FavoriteCount, unfav.FavoriteCount)

	rt, err := f.Retweet(ctx, target.ID)
	require.NoError(t, err)
	assert.True(t, rt.Retweeted)
	rt, err = f.Unretweet(ctx, target.ID)
	require.NoError(t, err)
	assert.False(t, rt.Retweeted)

	_, err = f.Favorite(ctx, "1")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFeed_Delete(t *testing.T) {
	f := New("Home", WithTotal(30), WithBacklog(0))
	ctx := context.Background()

	mine := f.all[0]
	require.Equal(t, OwnScreenName, mine.Author.ScreenName)
	require.NotEqual(t, OwnScreenName, f.all[1].Author.ScreenName)

	require.ErrorIs(t, f.Delete(ctx, f.all[1].ID), ErrForbidden)
	require.NoError(t, f.Delete(ctx, mine.ID))
	require.ErrorIs(t, f.Delete(ctx, mine.ID), ErrNotFound)

	page, err := f.FetchOlder(ctx, snowflake.Zero)
	require.NoError(t, err)
	assert.NotContains(t, ids(page), mine.ID)
	assert.Equal(t, 29, visibleCount(f))
}

func TestFeed_Post(t *testing.T) {
	f := New("Home", WithTotal(10), WithBacklog(2), WithArrivals(0))
	ctx := context.Background()
	visible := visibleCount(f)
	since := snowflake.MustIncrement(f.all[2].ID)

	_, err := f.Post(ctx, "  ")
	require.ErrorIs(t, err, ErrEmptyText)

	var posted []string
	for _, text := range []string{"first", "second", "third"} {
		it, err := f.Post(ctx, text)
		require.NoError(t, err)
		assert.Equal(t, OwnScreenName, it.Author.ScreenName)
		assert.Equal(t, text, it.Text)
		posted = append(posted, it.ID)
	}

	for i := 1; i < len(f.all); i++ {
		require.Truef(t, snowflake.Newer(f.all[i-1].ID, f.all[i].ID), "all[%d]=%s", i, f.all[i].ID)
	}
	assert.GreaterOrEqual(t, visibleCount(f), visible+3)

	// Posts are visible to the next since_id fetch and can be deleted.
	page, err := f.FetchNewer(ctx, since)
	require.NoError(t, err)
	for _, id := range posted {
		assert.Contains(t, ids(page), id)
	}
	require.NoError(t, f.Delete(ctx, posted[0]))
}

func TestFeed_LatencyHonoursContext(t *testing.T) {
	f := New("Home", WithLatency(time.Hour))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.FetchNewer(ctx, snowflake.Zero)
	require.ErrorIs(t, err, context.Canceled)
	_, err = f.Favorite(ctx, "1")
	require.ErrorIs(t, err, context.Canceled)
}

func ids(items []feed.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func publish(f *Feed, n int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.publishLocked(n)
}

func visibleCount(f *Feed) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.visibleLocked())
}
