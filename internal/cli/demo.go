package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/feedline/internal/config"
	"github.com/rshade/feedline/internal/provider/demo"
)

func newDemoCmd(opts *rootOptions) *cobra.Command {
	var (
		noLatency bool
		column    string
		total     int
		backlog   int
		pageSize  int
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Open the terminal UI over generated feeds",
		Long: `Runs the terminal UI against deterministic synthetic feeds, one per
configured column. No network access or account is needed. New items arrive
on every refresh.`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationInteractive: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}

			demoOpts := []demo.Option{
				demo.WithArrivals(demoArrivals),
				demo.WithTotal(total),
				demo.WithBacklog(backlog),
				demo.WithPageSize(pageSize),
				demo.WithStart(time.Now()),
			}
			if !noLatency {
				demoOpts = append(demoOpts, demo.WithLatency(demoLatency))
			}
			set, err := buildDemoColumns(demoColumnsFor(cfg), cfg.Timeline.WindowSize, demoOpts...)
			if err != nil {
				return err
			}
			return runColumns(cmd, set, column)
		},
	}

	cmd.Flags().BoolVar(&noLatency, "no-latency", false, "answer fetches immediately")
	cmd.Flags().StringVar(&column, "column", "", "column to focus first")
	cmd.Flags().IntVar(&total, "items", demo.DefaultTotal, "items generated per column")
	cmd.Flags().IntVar(&backlog, "backlog", demo.DefaultBacklog, "items held back to arrive on refresh")
	cmd.Flags().IntVar(&pageSize, "page-size", demo.DefaultPageSize, "items per fetched page")
	return cmd
}

// demoColumnsFor keeps the configured columns when they are valid and
// falls back to the defaults otherwise.
func demoColumnsFor(cfg *config.Config) []config.ColumnConfig {
	for _, col := range cfg.Columns {
		if _, err := col.Kind(); err != nil {
			return config.DefaultColumns()
		}
	}
	return cfg.Columns
}
