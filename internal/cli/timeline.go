package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/feedline/internal/tui"
)

func newTimelineCmd(opts *rootOptions) *cobra.Command {
	var column string

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Open the configured columns in the terminal UI",
		Long: `Opens every configured column (Home and Mentions by default) in a
full-screen view. When stdout is not a terminal the first page of each
column is printed instead.`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationInteractive: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTimeline(cmd, opts, column)
		},
	}

	cmd.Flags().StringVar(&column, "column", "", "column to focus first")
	return cmd
}

func runTimeline(cmd *cobra.Command, opts *rootOptions, column string) error {
	cfg, err := opts.config()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	set, err := buildHTTPColumns(cmd.Context(), cfg, cfg.Columns, cfg.Timeline.WindowSize)
	if err != nil {
		return err
	}
	return runColumns(cmd, set, column)
}

// runColumns starts the terminal UI focused on column, or prints plain
// output when stdout is not a terminal.
func runColumns(cmd *cobra.Command, set *columnSet, column string) error {
	if err := set.focus(column); err != nil {
		return err
	}

	out, ok := cmd.OutOrStdout().(*os.File)
	if !ok || !isTerminal(out) {
		return printColumns(cmd, set)
	}

	ctx := cmd.Context()
	m := tui.New(ctx, set.columns, tui.Options{Actions: set.ActionsFor})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx), tea.WithOutput(out))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running terminal ui: %w", err)
	}
	return nil
}
