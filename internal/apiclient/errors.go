package apiclient

import (
	"errors"
	"fmt"
)

// ErrFetchFailed matches every error returned by GetAppointment. Callers that only need to
// know the fetch failed (the detail view) compare against it; Kind is for logs.
var ErrFetchFailed = errors.New("fetch failed")

// ErrMissingID is returned when GetAppointment is called with a blank identifier.
var ErrMissingID = errors.New("appointment id is required")

// FailureKind classifies why a fetch failed.
type FailureKind string

// Failure kinds.
const (
	KindTransport FailureKind = "transport"
	KindStatus    FailureKind = "status"
	KindDecode    FailureKind = "decode"
	KindSchema    FailureKind = "schema"
)

// FetchError describes one failed GetAppointment call.
type FetchError struct {
	ID         string
	Kind       FailureKind
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Kind == KindStatus {
		return fmt.Sprintf("fetching appointment %q: backend returned status %d", e.ID, e.StatusCode)
	}
	return fmt.Sprintf("fetching appointment %q: %s: %v", e.ID, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Is makes every FetchError match ErrFetchFailed.
func (e *FetchError) Is(target error) bool {
	return target == ErrFetchFailed
}
