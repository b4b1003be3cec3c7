// Package apiclient fetches appointment records from the booking backend's REST API.
package apiclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rshade/medibook/internal/appointment"
)

// Defaults for NewClient.
const (
	DefaultBaseURL = "http://localhost:5000"
	DefaultTimeout = 10 * time.Second

	appointmentsPath = "/api/appointments/"
	requestIDHeader  = "X-Request-ID"
	// maxErrorBodyBytes bounds how much of a non-2xx body is kept for logging.
	maxErrorBodyBytes = 512
)

// Client fetches a single appointment.
type Client interface {
	GetAppointment(ctx context.Context, id string) (*appointment.Appointment, error)
}

// HTTPClient is the net/http implementation of Client.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
	// timeout overrides the http.Client timeout when set. It is applied after all options.
	timeout *time.Duration
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithTimeout sets the overall request timeout. It takes precedence over the timeout of a
// client passed with WithHTTPClient, regardless of option order.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		c.timeout = &d
	}
}

// WithHTTPClient sets the *http.Client requests are sent with. The client is copied, so
// later options never modify the caller's value.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger used for request and failure logging.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *HTTPClient) {
		c.logger = logger.With().Str("component", "apiclient").Logger()
	}
}

// NewClient creates an HTTPClient for baseURL (DefaultBaseURL when empty).
func NewClient(baseURL string, opts ...Option) *HTTPClient {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	c := &HTTPClient{
		baseURL: trimmed,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	hc := *c.httpClient
	if c.timeout != nil {
		hc.Timeout = *c.timeout
	}
	c.httpClient = &hc
	return c
}

// BaseURL returns the backend base URL without a trailing slash.
func (c *HTTPClient) BaseURL() string { return c.baseURL }

// AppointmentURL returns the endpoint for id.
func (c *HTTPClient) AppointmentURL(id string) string {
	return c.baseURL + appointmentsPath + url.PathEscape(id)
}

// GetAppointment issues exactly one GET for id. It does not retry. Every failure is a
// *FetchError matching ErrFetchFailed; context cancellation is reported as a transport failure.
func (c *HTTPClient) GetAppointment(ctx context.Context, id string) (*appointment.Appointment, error) {
	if strings.TrimSpace(id) == "" {
		return nil, &FetchError{ID: id, Kind: KindTransport, Err: ErrMissingID}
	}

	requestID := uuid.NewString()
	log := c.logger.With().
		Str("appointment_id", id).
		Str("request_id", requestID).
		Logger()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.AppointmentURL(id), nil)
	if err != nil {
		return nil, c.fail(log, &FetchError{ID: id, Kind: KindTransport, Err: err})
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.fail(log, &FetchError{ID: id, Kind: KindTransport, Err: err})
	}
	defer resp.Body.Close()

	log.Debug().
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("appointment response received")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, c.fail(log, &FetchError{
			ID:         id,
			Kind:       KindStatus,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet))),
		})
	}

	appt, err := appointment.Decode(resp.Body)
	if err != nil {
		kind := KindDecode
		if errors.Is(err, appointment.ErrInvalidAppointment) {
			kind = KindSchema
		}
		return nil, c.fail(log, &FetchError{ID: id, Kind: kind, StatusCode: resp.StatusCode, Err: err})
	}
	if !appt.Status.Known() {
		log.Warn().Str("status", appt.Status.String()).Msg("unrecognized appointment status")
	}

	return appt, nil
}

// fail logs fetchErr and returns it. Cancellations are expected when a request is superseded,
// so they are logged at debug.
func (c *HTTPClient) fail(log zerolog.Logger, fetchErr *FetchError) error {
	event := log.Error()
	if errors.Is(fetchErr.Err, context.Canceled) {
		event = log.Debug()
	}
	event.
		Err(fetchErr.Err).
		Str("kind", string(fetchErr.Kind)).
		Int("status", fetchErr.StatusCode).
		Msg("appointment fetch failed")
	return fetchErr
}
