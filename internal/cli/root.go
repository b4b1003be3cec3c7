package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/medibook/internal/config"
	"github.com/rshade/medibook/internal/logging"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// Command annotations read by the root pre-run hook.
const (
	// annotationSkipConfig marks commands that load (or write) the config file themselves.
	annotationSkipConfig = "medibook/skip-config"
	// annotationInteractive marks commands that may take over the terminal with a TUI.
	annotationInteractive = "medibook/interactive"
)

// ExitError carries the process exit code for failures that were already reported to the user.
type ExitError struct {
	ExitCode int
	Reason   string
	Err      error
}

func (e *ExitError) Error() string {
	return e.Reason
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode returns the exit code for err: 0 for nil, the carried code for an *ExitError,
// and 1 otherwise. reported is true when the user has already seen the failure.
func ExitCode(err error) (code int, reported bool) {
	if err == nil {
		return 0, false
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode, true
	}
	return 1, false
}

// NewRootCmd creates the root Cobra command for the medibook CLI.
// It loads configuration, wires logging and tracing, and registers the subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:           "medibook",
		Short:         "Terminal client for medibook appointments",
		Long:          "medibook: view booked appointments from the medibook booking service",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Default()
			if cmd.Annotations[annotationSkipConfig] == "" {
				loaded, err := config.Load(configPaths(cmd)...)
				if err != nil {
					return err
				}
				cfg = loaded
			}

			result := setupLogging(cmd, cfg)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return cleanupLogging(logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "config file (default $MEDIBOOK_CONFIG or ~/.medibook/config.yaml)")
	cmd.PersistentFlags().String("project-dir", "",
		"project directory whose .medibook/config.yaml overrides the global config (default: search upward from cwd)")
	cmd.AddCommand(newAppointmentCmd(), newFixturesCmd(), newConfigCmd(), newVersionCmd())

	return cmd
}

// configPath returns the --config flag value, or the default config location.
func configPath(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("config"); p != "" {
		return p
	}
	return config.DefaultPath()
}

// configPaths returns the global config file followed by the project-local one, if any.
// An explicit --config disables project discovery.
func configPaths(cmd *cobra.Command) []string {
	global := configPath(cmd)
	if cmd.Flags().Changed("config") {
		return []string{global}
	}

	projectDir, _ := cmd.Flags().GetString("project-dir")
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	project := config.ResolveProjectConfig(cmd.Context(), projectDir, cwd, global)
	if project == "" {
		return []string{global}
	}
	return []string{global, project}
}

// printErrf writes a formatted line to the command's stderr.
func printErrf(cmd *cobra.Command, format string, args ...any) {
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), format, args...)
}

// isDebug reports whether --debug was given.
func isDebug(cmd *cobra.Command) bool {
	debug, _ := cmd.Flags().GetBool("debug")
	return debug || os.Getenv("MEDIBOOK_DEBUG") != ""
}

const rootCmdExample = `  # Show an appointment (interactive in a terminal, plain text when piped)
  medibook appointment show 65f1c2a9e4b0a1d2c3b4a5f6

  # Show an appointment as JSON
  medibook appointment show abc123 --output json

  # Run the local fixture backend and point the client at it
  medibook fixtures serve --addr :5000
  MEDIBOOK_API_BASE_URL=http://localhost:5000 medibook appointment show abc123

  # Initialize configuration
  medibook config init`
