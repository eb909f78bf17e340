package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/feedline/internal/feed"
	"github.com/rshade/feedline/internal/provider/demo"
	"github.com/rshade/feedline/internal/timeline"
)

func TestLoadAll(t *testing.T) {
	columns := timeline.NewColumns(
		timeline.New("Home", timeline.KindHome, demo.New("home", demo.WithBacklog(0)), 5),
		timeline.New("Mentions", timeline.KindMentions, demo.New("mentions", demo.WithBacklog(0)), 5),
	)

	require.NoError(t, LoadAll(context.Background(), columns))
	for _, tl := range columns.All() {
		assert.Equal(t, demo.DefaultPageSize, tl.Len(), tl.Name())
	}
}

func TestLoadAll_FailureKeepsOthers(t *testing.T) {
	boom := errors.New("boom")
	failing := timeline.PaginatorFunc{
		Newer: func(context.Context, string) ([]feed.Item, error) { return nil, boom },
	}
	columns := timeline.NewColumns(
		timeline.New("Home", timeline.KindHome, demo.New("home"), 5),
		timeline.New("Broken", timeline.KindSearch, failing, 5),
	)

	err := LoadAll(context.Background(), columns)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, demo.DefaultPageSize, columns.Get("Home").Len())
	assert.Equal(t, "boom", columns.Get("Broken").Err())
}
