package tui

import "github.com/rshade/medibook/internal/appointment"

// ErrorMessage is the only failure text shown to the user, whatever the cause.
const ErrorMessage = "Failed to load appointment details."

// detailState is the closed set of detail view states. Exactly one holds at a time, so a
// view with both an appointment and an error cannot be represented.
type detailState interface {
	viewState() ViewState
}

type loadingState struct {
	id string
}

type errorState struct {
	message string
	err     error
}

type readyState struct {
	appt *appointment.Appointment
	vm   DetailViewModel
}

func (loadingState) viewState() ViewState { return ViewStateLoading }
func (errorState) viewState() ViewState   { return ViewStateError }
func (readyState) viewState() ViewState   { return ViewStateDetail }
