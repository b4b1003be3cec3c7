package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/rshade/medibook/internal/apiclient"
	"github.com/rshade/medibook/internal/appointment"
	"github.com/rshade/medibook/internal/format"
	"github.com/rshade/medibook/internal/logging"
)

// AppointmentIDChangedMsg switches the view to another appointment.
type AppointmentIDChangedMsg struct {
	ID string
}

// appointmentLoadedMsg carries the result of one fetch, tagged with the request sequence
// that issued it.
type appointmentLoadedMsg struct {
	seq  uint64
	id   string
	appt *appointment.Appointment
	err  error
}

// DetailOption configures an AppointmentDetailModel.
type DetailOption func(*AppointmentDetailModel)

// WithNavigator registers the host that receives navigation requests.
func WithNavigator(n Navigator) DetailOption {
	return func(m *AppointmentDetailModel) {
		m.navigator = n
	}
}

// AppointmentDetailModel is the Bubble Tea model for a single appointment.
//
// Every load bumps seq and cancels the previous request; a response is applied only
// when its seq is still current, so the last requested identifier always wins.
type AppointmentDetailModel struct {
	ctx       context.Context
	client    apiclient.Client
	formatter *format.Formatter
	logger    zerolog.Logger
	navigator Navigator

	id     string
	seq    uint64
	cancel context.CancelFunc
	state  detailState

	loading   *LoadingState
	prompt    textinput.Model
	prompting bool

	quitting   bool
	navigation string

	width  int
	height int
}

// NewAppointmentDetailModel creates a detail model that loads id on Init.
func NewAppointmentDetailModel(
	ctx context.Context,
	client apiclient.Client,
	formatter *format.Formatter,
	id string,
	opts ...DetailOption,
) *AppointmentDetailModel {
	if ctx == nil {
		ctx = context.Background()
	}
	m := &AppointmentDetailModel{
		ctx:       ctx,
		client:    client,
		formatter: formatter,
		logger:    logging.ComponentLogger(*logging.FromContext(ctx), "tui"),
		id:        id,
		state:     loadingState{id: id},
		loading:   NewLoadingState(),
		prompt:    newTextInput(),
		width:     defaultWidth,
		height:    defaultHeight,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Init starts the first load.
func (m *AppointmentDetailModel) Init() tea.Cmd {
	return m.startLoad(m.id)
}

// startLoad supersedes any in-flight request and fetches id.
func (m *AppointmentDetailModel) startLoad(id string) tea.Cmd {
	if m.cancel != nil {
		m.cancel()
	}
	m.seq++
	m.id = id
	m.state = loadingState{id: id}

	reqCtx, cancel := context.WithCancel(m.ctx)
	m.cancel = cancel

	m.logger.Debug().Str("appointment_id", id).Uint64("seq", m.seq).Msg("loading appointment")

	// Capture values so the command does not read model fields concurrently.
	seq := m.seq
	client := m.client
	fetch := func() tea.Msg {
		appt, err := client.GetAppointment(reqCtx, id)
		return appointmentLoadedMsg{seq: seq, id: id, appt: appt, err: err}
	}
	return tea.Batch(m.loading.Init(), fetch)
}

// Update handles messages and updates the model state.
func (m *AppointmentDetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case appointmentLoadedMsg:
		return m.handleLoaded(msg)

	case AppointmentIDChangedMsg:
		return m, m.startLoad(msg.ID)

	case NavigateMsg:
		return m.handleNavigate(msg)

	case spinner.TickMsg:
		if _, ok := m.state.(loadingState); ok {
			return m, m.loading.Update(msg)
		}
		return m, nil

	case tea.KeyMsg:
		if m.prompting {
			return m.handlePromptKey(msg)
		}
		return m.handleKey(msg)
	}

	if m.prompting {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *AppointmentDetailModel) handleLoaded(msg appointmentLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.seq {
		m.logger.Debug().
			Str("appointment_id", msg.id).
			Uint64("seq", msg.seq).
			Uint64("current_seq", m.seq).
			Msg("discarding stale appointment response")
		return m, nil
	}
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}

	if msg.err != nil {
		return m.fail(msg.id, msg.err)
	}
	if msg.appt == nil {
		return m.fail(msg.id, ErrNoAppointment)
	}

	vm, err := NewDetailViewModel(msg.appt, m.formatter)
	if err != nil {
		return m.fail(msg.id, err)
	}

	m.logger.Debug().Str("appointment_id", msg.id).Msg("appointment loaded")
	m.state = readyState{appt: msg.appt, vm: vm}
	return m, nil
}

func (m *AppointmentDetailModel) fail(id string, err error) (tea.Model, tea.Cmd) {
	m.logger.Error().Err(err).Str("appointment_id", id).Msg("error fetching appointment details")
	m.state = errorState{message: ErrorMessage, err: err}
	return m, nil
}

func (m *AppointmentDetailModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyQuit, keyCtrlC:
		return m.quit()

	case keyBack, keyEsc:
		return m, navigate(MyAppointmentsRoute())

	case keyDoc:
		if ready, ok := m.state.(readyState); ok && ready.vm.HasDoctorAction() {
			return m, navigate(ready.vm.DoctorRoute)
		}
		return m, nil

	case keyGoto:
		m.prompting = true
		m.prompt.SetValue("")
		m.prompt.Focus()
		return m, textinput.Blink
	}
	return m, nil
}

func (m *AppointmentDetailModel) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyCtrlC:
		return m.quit()

	case keyEsc:
		m.prompting = false
		m.prompt.Blur()
		return m, nil

	case keyEnter:
		id := strings.TrimSpace(m.prompt.Value())
		m.prompting = false
		m.prompt.Blur()
		if id == "" {
			return m, nil
		}
		return m, func() tea.Msg { return AppointmentIDChangedMsg{ID: id} }
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m *AppointmentDetailModel) handleNavigate(msg NavigateMsg) (tea.Model, tea.Cmd) {
	m.navigation = msg.Route
	m.logger.Debug().Str("route", msg.Route).Msg("navigating away from appointment")
	if m.navigator != nil {
		m.navigator.Navigate(msg.Route)
	}
	return m.quit()
}

func (m *AppointmentDetailModel) quit() (tea.Model, tea.Cmd) {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.quitting = true
	return m, tea.Quit
}

// View renders the current state.
func (m *AppointmentDetailModel) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch s := m.state.(type) {
	case loadingState:
		body = m.loading.View() + "\n"
	case errorState:
		body = RenderError(s.message)
	case readyState:
		body = RenderDetail(s.vm, m.width)
	}

	if m.prompting {
		body += "\n" + m.prompt.View() + "\n"
	}
	return body
}

// ViewState returns the coarse state of the view.
func (m *AppointmentDetailModel) ViewState() ViewState {
	if m.quitting {
		return ViewStateQuitting
	}
	return m.state.viewState()
}

// AppointmentID returns the identifier most recently requested.
func (m *AppointmentDetailModel) AppointmentID() string {
	return m.id
}

// Appointment returns the displayed appointment, or nil outside the detail state.
func (m *AppointmentDetailModel) Appointment() *appointment.Appointment {
	if ready, ok := m.state.(readyState); ok {
		return ready.appt
	}
	return nil
}

// DetailViewModel returns the displayed view model and whether one is displayed.
func (m *AppointmentDetailModel) DetailViewModel() (DetailViewModel, bool) {
	ready, ok := m.state.(readyState)
	return ready.vm, ok
}

// ErrorMessage returns the user-facing error text, or "" outside the error state.
func (m *AppointmentDetailModel) ErrorMessage() string {
	if failed, ok := m.state.(errorState); ok {
		return failed.message
	}
	return ""
}

// Err returns the underlying cause of the error state, or nil.
func (m *AppointmentDetailModel) Err() error {
	if failed, ok := m.state.(errorState); ok {
		return failed.err
	}
	return nil
}

// Navigation returns the route the user left for, or "" if they quit.
func (m *AppointmentDetailModel) Navigation() string {
	return m.navigation
}
