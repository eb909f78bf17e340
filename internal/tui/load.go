package tui

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/rshade/feedline/internal/timeline"
)

// LoadAll fetches the first page of every column concurrently. Each
// timeline is touched by exactly one goroutine. A failing column does not
// cancel the others; the first error is returned once all loads finish.
func LoadAll(ctx context.Context, columns *timeline.Columns) error {
	var g errgroup.Group
	for _, tl := range columns.All() {
		g.Go(func() error {
			_, err := tl.Load(ctx)
			return err
		})
	}
	return g.Wait()
}
