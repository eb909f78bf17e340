package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/rshade/feedline/internal/feed"
	"github.com/rshade/feedline/internal/logging"
	"github.com/rshade/feedline/internal/snowflake"
	"github.com/rshade/feedline/internal/timeline"
)

// Paginator serves older pages from a FileStore and delegates everything
// else to the wrapped paginator.
type Paginator struct {
	next      timeline.Paginator
	store     *FileStore
	namespace string
}

var _ timeline.Paginator = (*Paginator)(nil)

// NewPaginator wraps next. namespace separates columns (and accounts) that
// share a store, e.g. "https://api.example.com|home".
func NewPaginator(next timeline.Paginator, store *FileStore, namespace string) *Paginator {
	return &Paginator{next: next, store: store, namespace: namespace}
}

// FetchNewer always goes to the wrapped paginator.
func (p *Paginator) FetchNewer(ctx context.Context, sinceID string) ([]feed.Item, error) {
	return p.next.FetchNewer(ctx, sinceID)
}

// FetchOlder returns the cached page for maxID when present, otherwise
// fetches and stores it. A max_id of "0" means "from the top" and is never
// cached; neither are empty pages.
func (p *Paginator) FetchOlder(ctx context.Context, maxID string) ([]feed.Item, error) {
	if p.store == nil || !p.store.Enabled() || maxID == snowflake.Zero {
		return p.next.FetchOlder(ctx, maxID)
	}

	log := logging.FromContext(ctx).With().
		Str("component", "cache").
		Str("namespace", p.namespace).
		Str("max_id", maxID).
		Logger()
	key := GenerateKey(p.namespace, maxID)

	if items, ok := p.lookup(&log, key); ok {
		return items, nil
	}

	items, err := p.next.FetchOlder(ctx, maxID)
	if err != nil || len(items) == 0 {
		return items, err
	}

	data, err := json.Marshal(items)
	if err == nil {
		err = p.store.Set(key, data)
	}
	if err != nil {
		log.Warn().Err(err).Msg("failed to store page")
	}
	return items, nil
}

func (p *Paginator) lookup(log *zerolog.Logger, key string) ([]feed.Item, bool) {
	entry, err := p.store.Get(key)
	switch {
	case errors.Is(err, ErrCacheNotFound), errors.Is(err, ErrCacheExpired):
		log.Debug().Err(err).Msg("cache miss")
		return nil, false
	case err != nil:
		log.Warn().Err(err).Msg("cache read failed")
		return nil, false
	}

	var items []feed.Item
	if err := json.Unmarshal(entry.Data, &items); err != nil {
		log.Warn().Err(err).Msg("discarding corrupt cache entry")
		_ = p.store.Delete(key)
		return nil, false
	}
	log.Debug().
		Int("items", len(items)).
		Str("age", FormatDuration(entry.Age(time.Now()))).
		Msg("cache hit")
	return items, true
}
