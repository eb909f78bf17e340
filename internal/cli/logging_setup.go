package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/feedline/internal/config"
	"github.com/rshade/feedline/internal/logging"
)

// setupLogging configures logging from the config file, environment and
// flags, then stores the logger and a trace ID on the command context.
func setupLogging(cmd *cobra.Command, opts *rootOptions) logging.LogPathResult {
	cfg := opts.cfg
	if cfg == nil {
		cfg = config.Default()
	}

	interactive := cmd.Annotations[annotationInteractive] == "true"
	loggingCfg := cfg.Logging.ToLoggingConfig()
	if interactive {
		ic, err := cfg.InteractiveLoggingConfig()
		if err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not resolve log file: %v\n", err)
		} else {
			loggingCfg = ic
		}
	}

	if opts.debug {
		loggingCfg.Level = "debug"
		loggingCfg.Caller = true
		if !interactive {
			loggingCfg.Format = logging.FormatConsole
			loggingCfg.Output = logging.OutputStderr
			loggingCfg.File = ""
		}
	}

	result := logging.NewLoggerWithPath(loggingCfg)
	logger = logging.ComponentLogger(result.Logger, "cli")

	if result.UsingFile && opts.debug {
		logging.PrintLogPathMessage(cmd.ErrOrStderr(), result.FilePath)
	} else if result.FallbackUsed {
		logging.PrintFallbackWarning(cmd.ErrOrStderr(), result.FallbackReason)
	}

	ctx := cmd.Context()
	traceID := logging.GetOrGenerateTraceID(ctx)
	ctx = logging.ContextWithTraceID(ctx, traceID)
	ctx = logger.WithContext(ctx)
	cmd.SetContext(ctx)

	logger.Info().Ctx(ctx).Str("command", cmd.Name()).Str(logging.TraceIDField, traceID).Msg("command started")
	if opts.loadErr != nil {
		logger.Warn().Ctx(ctx).Err(opts.loadErr).Msg("config could not be loaded")
	}

	return result
}

// cleanupLogging closes the log file handle.
func cleanupLogging(cmd *cobra.Command, logResult *logging.LogPathResult) error {
	logger.Info().Ctx(cmd.Context()).Str("command", cmd.Name()).Msg("command finished")
	if logResult != nil {
		return logResult.Close()
	}
	return nil
}
