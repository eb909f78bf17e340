package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/feedline/internal/cache"
	"github.com/rshade/feedline/internal/config"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd(opts *rootOptions) *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the configuration file for syntax and semantic correctness.

This includes:
- Version compatibility
- API base URL, page size and retry settings
- Window size bounds
- Column names, types and their list_id or query
- Cache TTL and logging settings`,
		Example: `  # Validate current configuration
  feedline config validate

  # Validate and show detailed information
  feedline config validate --verbose`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			return runConfigValidate(cmd, cfg, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

func runConfigValidate(cmd *cobra.Command, cfg *config.Config, verbose bool) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	cmd.Printf("Configuration is valid\n")
	if cfg.API.Token == "" {
		cmd.Printf("Note: no API token set; only `feedline demo` and `fetch --demo` will work\n")
	}

	if verbose {
		printVerboseDetails(cmd, cfg)
	}
	return nil
}

func printVerboseDetails(cmd *cobra.Command, cfg *config.Config) {
	cmd.Println()
	cmd.Println("Configuration details:")
	cmd.Printf("  File: %s\n", cfg.Path())
	cmd.Printf("  API: %s (page size %d)\n", cfg.API.BaseURL, cfg.API.PageSize)
	cmd.Printf("  Window size: %d\n", cfg.Timeline.WindowSize)
	cmd.Printf("  Logging level: %s\n", cfg.Logging.Level)
	if cfg.Cache.Enabled {
		ttl := time.Duration(cfg.Cache.TTLSeconds) * time.Second
		cmd.Printf("  Cache: enabled, ttl %s\n", cache.FormatDuration(ttl))
	} else {
		cmd.Printf("  Cache: disabled\n")
	}
	cmd.Println("  Columns:")
	for _, col := range cfg.Columns {
		switch {
		case col.ListID != "":
			cmd.Printf("    - %s (%s, list %s)\n", col.Name, col.Type, col.ListID)
		case col.Query != "":
			cmd.Printf("    - %s (%s, %q)\n", col.Name, col.Type, col.Query)
		default:
			cmd.Printf("    - %s (%s)\n", col.Name, col.Type)
		}
	}
}
