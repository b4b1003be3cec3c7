package fixtures

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// AppointmentsPath is the route the booking backend exposes for single appointments.
const AppointmentsPath = "/api/appointments/:id"

// Server serves fixture records over HTTP.
type Server struct {
	echo    *echo.Echo
	store   *Store
	latency time.Duration
	logger  zerolog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLatency delays every appointment response by d, in addition to any per-record delay.
func WithLatency(d time.Duration) Option {
	return func(s *Server) {
		s.latency = d
	}
}

// WithLogger sets the logger used for request logging.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = logger.With().Str("component", "fixtures").Logger()
	}
}

// NewServer builds a fixture server backed by store.
func NewServer(store *Store, opts ...Option) *Server {
	s := &Server{
		store:  store,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(requestID())
	e.Use(requestLogger(s.logger))
	e.Use(recovery(s.logger))

	e.GET("/healthz", s.health)
	e.GET(AppointmentsPath, s.getAppointment)

	s.echo = e
	return s
}

// Handler exposes the server for httptest and custom listeners.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start listens on addr until Shutdown is called. A clean shutdown returns nil.
func (s *Server) Start(addr string) error {
	s.logger.Info().Str("addr", addr).Int("appointments", s.store.Len()).Msg("fixture server listening")
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":       "ok",
		"appointments": s.store.Len(),
	})
}

func (s *Server) getAppointment(c echo.Context) error {
	id := c.Param("id")
	record, err := s.store.Get(id)
	if errors.Is(err, ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"message": ErrNotFound.Error()})
	}
	if err != nil {
		return err
	}

	if err := wait(c.Request().Context(), s.latency+record.Delay); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, record.Body)
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
