package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/medibook/internal/apiclient"
	"github.com/rshade/medibook/internal/appointment"
	"github.com/rshade/medibook/internal/config"
	"github.com/rshade/medibook/internal/format"
	"github.com/rshade/medibook/internal/logging"
	"github.com/rshade/medibook/internal/tui"
)

// Output formats accepted by --output.
const (
	outputTable = "table"
	outputJSON  = "json"
)

// showFlags holds the flags of "appointment show".
type showFlags struct {
	output   string
	plain    bool
	noColor  bool
	color    bool
	apiURL   string
	timeout  string
	locale   string
	timezone string
}

// appointmentOutput is the JSON document written by --output json.
type appointmentOutput struct {
	Appointment *appointment.Appointment `json:"appointment"`
	Display     tui.DetailViewModel      `json:"display"`
	Links       map[string]string        `json:"links"`
}

func newAppointmentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "appointment",
		Aliases: []string{"appt"},
		Short:   "Appointment commands",
	}
	cmd.AddCommand(newAppointmentShowCmd())
	return cmd
}

func newAppointmentShowCmd() *cobra.Command {
	var flags showFlags

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one appointment",
		Long: `Fetches one appointment from the booking backend and displays it.

In a terminal the view is interactive: b/esc returns to My Appointments, d opens the doctor
profile, g switches to another appointment and q quits. When output is piped, the view is
written once as plain text; --output json writes the record and its display strings.`,
		Example: `  # Interactive view
  medibook appointment show abc123

  # Plain text for scripts
  medibook appointment show abc123 --plain

  # Against another backend, in Spanish, Madrid time
  medibook appointment show abc123 --api-url https://api.example.org --locale es-ES --timezone Europe/Madrid`,
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{annotationInteractive: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAppointmentShow(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output format: table or json (default from config)")
	cmd.Flags().BoolVar(&flags.plain, "plain", false, "write plain text without styling")
	cmd.Flags().BoolVar(&flags.noColor, "no-color", false, "disable colors")
	cmd.Flags().BoolVar(&flags.color, "color", false, "write the styled view once, even when piped")
	cmd.Flags().StringVar(&flags.apiURL, "api-url", "", "booking backend base URL (overrides api.base_url)")
	cmd.Flags().StringVar(&flags.timeout, "timeout", "", "request timeout, e.g. 5s (overrides api.timeout)")
	cmd.Flags().StringVar(&flags.locale, "locale", "", "display locale, e.g. en-US (overrides display.locale)")
	cmd.Flags().StringVar(&flags.timezone, "timezone", "", "display time zone, e.g. America/Chicago (overrides display.timezone)")

	return cmd
}

// takesOverTerminal reports whether cmd will run a full-screen TUI with these flags.
func takesOverTerminal(cmd *cobra.Command, cfg *config.Config) bool {
	if cmd.Annotations[annotationInteractive] == "" {
		return false
	}
	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = cfg.Output.DefaultFormat
	}
	if output == outputJSON {
		return false
	}
	plain, _ := cmd.Flags().GetBool("plain")
	noColor, _ := cmd.Flags().GetBool("no-color")
	color, _ := cmd.Flags().GetBool("color")
	return tui.DetectOutputMode(color, noColor, plain) == tui.OutputModeInteractive
}

// effectiveConfig applies per-invocation flag overrides to a copy of cfg.
func effectiveConfig(cfg *config.Config, flags showFlags) (*config.Config, error) {
	c := *cfg
	if flags.apiURL != "" {
		c.API.BaseURL = flags.apiURL
	}
	if flags.timeout != "" {
		c.API.Timeout = flags.timeout
	}
	if flags.locale != "" {
		c.Display.Locale = flags.locale
	}
	if flags.timezone != "" {
		c.Display.Timezone = flags.timezone
	}
	if flags.output != "" {
		c.Output.DefaultFormat = flags.output
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func runAppointmentShow(cmd *cobra.Command, id string, flags showFlags) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	cfg, err := effectiveConfig(configFromContext(ctx), flags)
	if err != nil {
		return err
	}
	formatter, err := cfg.Formatter()
	if err != nil {
		return err
	}
	timeout, err := cfg.API.TimeoutDuration()
	if err != nil {
		return err
	}

	client := apiclient.NewClient(cfg.API.BaseURL,
		apiclient.WithTimeout(timeout),
		apiclient.WithLogger(*log),
	)

	if cfg.Output.DefaultFormat == outputJSON {
		return renderAppointmentJSON(ctx, cmd, cfg, client, formatter, id)
	}

	mode := tui.DetectOutputMode(flags.color, flags.noColor, flags.plain)
	log.Debug().Str("appointment_id", id).Int("output_mode", int(mode)).Msg("showing appointment")

	switch mode {
	case tui.OutputModeInteractive:
		return runAppointmentTUI(ctx, cmd, cfg, client, formatter, id)
	case tui.OutputModeStyled:
		printErrf(cmd, "%s\n", tui.RenderLoading())
		return renderAppointmentOnce(ctx, cmd, client, formatter, id, func(w io.Writer, vm tui.DetailViewModel) {
			fmt.Fprint(w, tui.RenderDetail(vm, tui.TerminalWidth()))
		})
	case tui.OutputModePlain:
		fallthrough
	default:
		return renderAppointmentOnce(ctx, cmd, client, formatter, id, func(w io.Writer, vm tui.DetailViewModel) {
			fmt.Fprint(w, tui.RenderPlain(vm))
		})
	}
}

// loadDetail fetches id and builds its view model. On failure it reports the generic
// message on stderr and returns an *ExitError.
func loadDetail(
	ctx context.Context,
	cmd *cobra.Command,
	client apiclient.Client,
	formatter *format.Formatter,
	id string,
) (*appointment.Appointment, tui.DetailViewModel, error) {
	appt, err := client.GetAppointment(ctx, id)
	if err == nil {
		var vm tui.DetailViewModel
		if vm, err = tui.NewDetailViewModel(appt, formatter); err == nil {
			return appt, vm, nil
		}
	}

	logging.FromContext(ctx).Error().Err(err).Str("appointment_id", id).Msg("error fetching appointment details")
	printErrf(cmd, "%s\n", tui.ErrorMessage)
	if isDebug(cmd) {
		printErrf(cmd, "DEBUG: %v\n", err)
	}
	return nil, tui.DetailViewModel{}, &ExitError{ExitCode: 1, Reason: tui.ErrorMessage, Err: err}
}

func renderAppointmentOnce(
	ctx context.Context,
	cmd *cobra.Command,
	client apiclient.Client,
	formatter *format.Formatter,
	id string,
	render func(io.Writer, tui.DetailViewModel),
) error {
	_, vm, err := loadDetail(ctx, cmd, client, formatter, id)
	if err != nil {
		return err
	}
	render(cmd.OutOrStdout(), vm)
	return nil
}

func renderAppointmentJSON(
	ctx context.Context,
	cmd *cobra.Command,
	cfg *config.Config,
	client apiclient.Client,
	formatter *format.Formatter,
	id string,
) error {
	appt, vm, err := loadDetail(ctx, cmd, client, formatter, id)
	if err != nil {
		return err
	}

	links := map[string]string{"back": tui.WebURL(cfg.Web.BaseURL, vm.BackRoute)}
	if vm.HasDoctorAction() {
		links["doctor"] = tui.WebURL(cfg.Web.BaseURL, vm.DoctorRoute)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(appointmentOutput{Appointment: appt, Display: vm, Links: links})
}

func runAppointmentTUI(
	ctx context.Context,
	cmd *cobra.Command,
	cfg *config.Config,
	client apiclient.Client,
	formatter *format.Formatter,
	id string,
) error {
	var target string
	nav := tui.NavigatorFunc(func(route string) {
		target = tui.WebURL(cfg.Web.BaseURL, route)
	})

	model := tui.NewAppointmentDetailModel(ctx, client, formatter, id, tui.WithNavigator(nav))
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run interactive TUI: %w", err)
	}

	if target != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Opening %s\n", target)
	}
	return nil
}
