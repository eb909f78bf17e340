package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/feedline/internal/cache"
)

func newCacheCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{Use: "cache", Short: "Inspect or clear the older-page cache"}
	cmd.AddCommand(newCacheInfoCmd(opts), newCacheClearCmd(opts))
	return cmd
}

func newCacheInfoCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the cache directory, TTL and entry count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			if !cfg.Cache.Enabled {
				cmd.Println("Cache: disabled")
				return nil
			}
			store, err := openCache(cfg)
			if err != nil {
				return err
			}
			n, err := store.Count()
			if err != nil {
				return fmt.Errorf("counting cache entries: %w", err)
			}
			cmd.Printf("Directory: %s\n", store.Dir())
			cmd.Printf("TTL: %s\n", cache.FormatDuration(store.TTL()))
			cmd.Printf("Entries: %d\n", n)
			return nil
		},
	}
}

func newCacheClearCmd(opts *rootOptions) *cobra.Command {
	var expiredOnly bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove cached pages",
		Example: `  # Remove every cached page
  feedline cache clear

  # Remove only stale pages
  feedline cache clear --expired`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			store, err := openCache(cfg)
			if err != nil {
				return err
			}
			before, err := store.Count()
			if err != nil {
				return fmt.Errorf("counting cache entries: %w", err)
			}

			if expiredOnly {
				err = store.CleanupExpired()
			} else {
				err = store.Clear()
			}
			if err != nil {
				return fmt.Errorf("clearing cache: %w", err)
			}

			after, err := store.Count()
			if err != nil {
				return fmt.Errorf("counting cache entries: %w", err)
			}
			cmd.Printf("Removed %d cached pages from %s\n", before-after, store.Dir())
			return nil
		},
	}

	cmd.Flags().BoolVar(&expiredOnly, "expired", false, "only remove stale pages")
	return cmd
}
