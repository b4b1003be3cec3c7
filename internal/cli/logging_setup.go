package cli

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/medibook/internal/config"
	"github.com/rshade/medibook/internal/logging"
)

// setupLogging configures logging from config and CLI flags, and stores the logger, a trace ID
// and the configuration in the command context.
func setupLogging(cmd *cobra.Command, cfg *config.Config) logging.LogPathResult {
	loggingCfg := cfg.Logging.ToLoggingConfig()

	if isDebug(cmd) {
		loggingCfg.Level = "debug"
		loggingCfg.Format = logging.FormatConsole
	}

	result := logging.NewLoggerWithPath(loggingCfg)

	// A TUI owns the terminal; stderr log lines would corrupt it.
	if !result.UsingFile && takesOverTerminal(cmd, cfg) {
		result.Logger = zerolog.Nop()
	}

	logger = logging.ComponentLogger(result.Logger, "cli")

	if result.UsingFile {
		logging.PrintLogPathMessage(cmd.ErrOrStderr(), result.FilePath)
	} else if result.FallbackUsed {
		logging.PrintFallbackWarning(cmd.ErrOrStderr(), result.FallbackReason)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	traceID := logging.GetOrGenerateTraceID(ctx)
	ctx = logging.ContextWithTraceID(ctx, traceID)
	ctx = logger.WithContext(ctx)
	ctx = contextWithConfig(ctx, cfg)
	cmd.SetContext(ctx)

	logger.Debug().Ctx(ctx).Str("trace_id", traceID).Str("command", cmd.Name()).Msg("command started")

	return result
}

// cleanupLogging closes the log file handle.
func cleanupLogging(logResult *logging.LogPathResult) error {
	if logResult != nil {
		return logResult.Close()
	}
	return nil
}
