package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/feedline/internal/feed"
	"github.com/rshade/feedline/internal/render"
	"github.com/rshade/feedline/internal/tui"
)

func newFetchCmd(opts *rootOptions) *cobra.Command {
	var (
		column  string
		count   int
		useDemo bool
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Print the newest items of every column",
		Long: `Loads every configured column concurrently and prints the first
page of each as plain text.`,
		Example: `  # Newest items of every column
  feedline fetch

  # Ten items of one column from the generated feeds
  feedline fetch --demo --column Home --count 10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			if count == 0 {
				count = cfg.Timeline.WindowSize
			}
			if count < feed.MinWindowSize || count > feed.MaxWindowSize {
				return fmt.Errorf("--count must be between %d and %d, got %d",
					feed.MinWindowSize, feed.MaxWindowSize, count)
			}

			var set *columnSet
			if useDemo {
				cols, err := selectColumns(demoColumnsFor(cfg), column)
				if err != nil {
					return err
				}
				set, err = buildDemoColumns(cols, count)
				if err != nil {
					return err
				}
			} else {
				if err := cfg.Validate(); err != nil {
					return fmt.Errorf("configuration validation failed: %w", err)
				}
				cols, err := selectColumns(cfg.Columns, column)
				if err != nil {
					return err
				}
				set, err = buildHTTPColumns(cmd.Context(), cfg, cols, count)
				if err != nil {
					return err
				}
			}
			return printColumns(cmd, set)
		},
	}

	cmd.Flags().StringVar(&column, "column", "", "only fetch the named column")
	cmd.Flags().IntVar(&count, "count", 0, "items to print per column (default timeline.window_size)")
	cmd.Flags().BoolVar(&useDemo, "demo", false, "use generated feeds instead of the API")
	return cmd
}

// printColumns loads every column and writes the visible window of each.
// Columns that failed are reported and make the command fail after the
// others were printed.
func printColumns(cmd *cobra.Command, set *columnSet) error {
	ctx := cmd.Context()
	loadErr := tui.LoadAll(ctx, set.columns)

	out := cmd.OutOrStdout()
	opts := render.Options{Width: outputWidth(out)}

	var (
		failed  []error
		printed int
	)
	for _, tl := range set.columns.All() {
		if msg := tl.Err(); msg != "" {
			failed = append(failed, fmt.Errorf("%s: %s", tl.Name(), msg))
			continue
		}
		if printed > 0 {
			if _, err := fmt.Fprintln(out); err != nil {
				return err
			}
		}
		if err := render.Column(out, tl.Name(), tl.Visible(), tl.Len(), opts); err != nil {
			return err
		}
		printed++
	}

	if len(failed) > 0 {
		return fmt.Errorf("fetching columns: %w", errors.Join(failed...))
	}
	return loadErr
}

// outputWidth returns the terminal width of out, or the default width.
func outputWidth(out any) int {
	f, ok := out.(*os.File)
	if !ok || !isTerminal(f) {
		return render.DefaultWidth
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return render.DefaultWidth
	}
	return w
}
