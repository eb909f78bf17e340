package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rshade/feedline/internal/cache"
	"github.com/rshade/feedline/internal/config"
	"github.com/rshade/feedline/internal/logging"
	"github.com/rshade/feedline/internal/provider/demo"
	"github.com/rshade/feedline/internal/provider/httpapi"
	"github.com/rshade/feedline/internal/timeline"
)

// Demo provider pacing for interactive use.
const (
	demoLatency  = 300 * time.Millisecond
	demoArrivals = 2
)

// columnSet is a built set of columns plus the action provider per column.
type columnSet struct {
	columns *timeline.Columns
	actions map[string]timeline.Actions
}

// ActionsFor resolves the action provider for a column.
func (s columnSet) ActionsFor(column string) timeline.Actions {
	return s.actions[column]
}

func (s *columnSet) add(tl *timeline.Timeline, actions timeline.Actions) error {
	if err := s.columns.Add(tl); err != nil {
		return err
	}
	s.actions[tl.Name()] = actions
	return nil
}

func newColumnSet() *columnSet {
	return &columnSet{columns: timeline.NewColumns(), actions: map[string]timeline.Actions{}}
}

// selectColumns returns cols, or only the one named name when it is set.
func selectColumns(cols []config.ColumnConfig, name string) ([]config.ColumnConfig, error) {
	if name == "" {
		return cols, nil
	}
	names := make([]string, 0, len(cols))
	for _, col := range cols {
		if strings.EqualFold(col.Name, name) {
			return []config.ColumnConfig{col}, nil
		}
		names = append(names, col.Name)
	}
	return nil, unknownColumn(name, names)
}

// focus selects the column named name, ignoring case. An empty name keeps
// the first column selected.
func (s *columnSet) focus(name string) error {
	if name == "" {
		return nil
	}
	names := make([]string, 0, s.columns.Len())
	for _, tl := range s.columns.All() {
		if strings.EqualFold(tl.Name(), name) {
			s.columns.Select(tl.Name())
			return nil
		}
		names = append(names, tl.Name())
	}
	return unknownColumn(name, names)
}

func unknownColumn(name string, have []string) error {
	return fmt.Errorf("unknown column %q (have %s)", name, strings.Join(have, ", "))
}

// buildHTTPColumns builds one API-backed timeline per column. Older pages go
// through the file cache when it is enabled.
func buildHTTPColumns(ctx context.Context, cfg *config.Config, cols []config.ColumnConfig, windowSize int) (*columnSet, error) {
	log := logging.FromContext(ctx)

	client, err := httpapi.NewClient(httpapi.Config{
		BaseURL:    cfg.API.BaseURL,
		Token:      cfg.API.Token,
		PageSize:   cfg.API.PageSize,
		Timeout:    cfg.API.Timeout,
		RetryMax:   cfg.API.RetryMax,
		RatePerSec: cfg.API.RatePerSec,
		Burst:      cfg.API.Burst,
	}, *log)
	if err != nil {
		return nil, fmt.Errorf("creating api client: %w", err)
	}

	var store *cache.FileStore
	if cfg.Cache.Enabled {
		store, err = openCache(cfg)
		if err != nil {
			return nil, err
		}
		if err := store.CleanupExpired(); err != nil {
			log.Warn().Str("component", "cli").Err(err).Msg("cache cleanup failed")
		}
	}

	set := newColumnSet()
	for _, col := range cols {
		kind, err := col.Kind()
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", col.Name, err)
		}
		src, err := client.Source(kind, col.ListID, col.Query)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", col.Name, err)
		}

		log.Debug().
			Str("component", "cli").
			Str("column", col.Name).
			Str("endpoint", src.Endpoint()).
			Int("page_size", client.PageSize()).
			Bool("cached", store != nil).
			Msg("column source ready")

		var p timeline.Paginator = src
		if store != nil {
			p = cache.NewPaginator(src, store, cfg.API.BaseURL+"|"+col.Name)
		}
		if err := set.add(timeline.New(col.Name, kind, p, windowSize), client); err != nil {
			return nil, err
		}
	}
	return set, nil
}

// openCache opens the configured page cache directory.
func openCache(cfg *config.Config) (*cache.FileStore, error) {
	dir, err := cfg.CacheDir()
	if err != nil {
		return nil, err
	}
	store, err := cache.NewFileStore(dir, true, cfg.Cache.TTLSeconds)
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}
	return store, nil
}

// buildDemoColumns builds one synthetic feed per column.
func buildDemoColumns(cols []config.ColumnConfig, windowSize int, opts ...demo.Option) (*columnSet, error) {
	set := newColumnSet()
	for _, col := range cols {
		kind, err := col.Kind()
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", col.Name, err)
		}
		f := demo.New(strings.ToLower(col.Name), opts...)
		if err := set.add(timeline.New(col.Name, kind, f, windowSize), f); err != nil {
			return nil, err
		}
	}
	return set, nil
}
