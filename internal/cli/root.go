package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/feedline/internal/config"
	"github.com/rshade/feedline/internal/logging"
)

// annotationInteractive marks commands that take over the terminal. Their
// logs go to a file so stderr stays clean.
const annotationInteractive = "feedline/interactive"

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// rootOptions is shared by every subcommand.
type rootOptions struct {
	configPath string
	debug      bool

	cfg     *config.Config
	loadErr error
}

// config returns the loaded configuration, or the error Load reported.
func (o *rootOptions) config() (*config.Config, error) {
	if o.loadErr != nil {
		return nil, o.loadErr
	}
	return o.cfg, nil
}

// NewRootCmd creates the root Cobra command for the feedline CLI.
// Without a subcommand it runs the interactive timeline.
func NewRootCmd(ver string) *cobra.Command {
	var (
		opts      rootOptions
		logResult *logging.LogPathResult
	)

	cmd := &cobra.Command{
		Use:     "feedline",
		Short:   "Terminal reader for paginated social feeds",
		Long:    "feedline: browse home, mentions, list and search timelines in a scrollable terminal window",
		Version: ver,
		Example: rootCmdExample,
		Args:    cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			opts.cfg, opts.loadErr = config.Load(opts.configPath)
			result := setupLogging(cmd, &opts)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
		Annotations:  map[string]string{annotationInteractive: "true"},
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTimeline(cmd, &opts, "")
		},
	}

	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default $FEEDLINE_HOME/config.yaml)")
	cmd.AddCommand(
		newTimelineCmd(&opts),
		newDemoCmd(&opts),
		newFetchCmd(&opts),
		newConfigCmd(&opts),
		newCacheCmd(&opts),
	)

	return cmd
}

const rootCmdExample = `  # Open the configured columns
  feedline

  # Try the interface without an account
  feedline demo

  # Print the newest five items of the Mentions column
  feedline fetch --column Mentions --count 5

  # Write a default configuration file
  feedline config init`

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(
		NewConfigInitCmd(opts), NewConfigValidateCmd(opts), NewConfigShowCmd(opts),
	)
	return cmd
}
