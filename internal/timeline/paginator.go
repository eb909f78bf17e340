package timeline

import (
	"context"

	"github.com/rshade/feedline/internal/feed"
)

// Paginator fetches pages of a feed. Both methods return items newest first.
// Bounds come from feed.BoundaryOf and already exclude the loaded extremes;
// "0" means unbounded.
type Paginator interface {
	FetchNewer(ctx context.Context, sinceID string) ([]feed.Item, error)
	FetchOlder(ctx context.Context, maxID string) ([]feed.Item, error)
}

// Actions performs side effects on single items. The returned item is the
// provider's refreshed copy.
type Actions interface {
	Favorite(ctx context.Context, id string) (feed.Item, error)
	Unfavorite(ctx context.Context, id string) (feed.Item, error)
	Retweet(ctx context.Context, id string) (feed.Item, error)
	Unretweet(ctx context.Context, id string) (feed.Item, error)
	Delete(ctx context.Context, id string) error
	Post(ctx context.Context, text string) (feed.Item, error)
}

// PaginatorFunc adapts a pair of functions to Paginator.
type PaginatorFunc struct {
	Newer func(ctx context.Context, sinceID string) ([]feed.Item, error)
	Older func(ctx context.Context, maxID string) ([]feed.Item, error)
}

// FetchNewer calls p.Newer.
func (p PaginatorFunc) FetchNewer(ctx context.Context, sinceID string) ([]feed.Item, error) {
	return p.Newer(ctx, sinceID)
}

// FetchOlder calls p.Older.
func (p PaginatorFunc) FetchOlder(ctx context.Context, maxID string) ([]feed.Item, error) {
	return p.Older(ctx, maxID)
}
