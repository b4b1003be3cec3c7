package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/medibook/internal/appointment"
	"github.com/rshade/medibook/internal/format"
)

// fakeClient answers from fixed maps and records every call.
type fakeClient struct {
	mu           sync.Mutex
	calls        []string
	appointments map[string]*appointment.Appointment
	errs         map[string]error
	// ignoreCancel returns the canned answer even when the request context is done.
	ignoreCancel bool
}

func (f *fakeClient) GetAppointment(ctx context.Context, id string) (*appointment.Appointment, error) {
	f.mu.Lock()
	f.calls = append(f.calls, id)
	f.mu.Unlock()

	if !f.ignoreCancel && ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err := f.errs[id]; err != nil {
		return nil, err
	}
	return f.appointments[id], nil
}

func (f *fakeClient) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func testFormatter() *format.Formatter {
	return format.MustNew("en-US", "UTC")
}

func pendingAppointment() *appointment.Appointment {
	return &appointment.Appointment{
		ID:                   "abc123",
		AppointmentNumber:    "1042",
		DoctorID:             "doc-7",
		DoctorName:           "Dr. Amara Okafor",
		DoctorSpecialization: "Cardiology",
		Status:               appointment.StatusPending,
		AppointmentDate:      "2024-03-15",
		TimeSlot:             &appointment.TimeSlot{StartTime: "14:30", EndTime: "15:00"},
		CreatedAt:            "2024-03-10T09:15:00Z",
		PatientDetails: &appointment.PatientDetails{
			FullName:       "Jordan Lee",
			PhoneNumber:    "+1 555 0100",
			MedicalConcern: "Chest tightness after exercise",
		},
	}
}

func confirmedAppointment() *appointment.Appointment {
	return &appointment.Appointment{
		ID:                   "conf-001",
		AppointmentNumber:    "APT-2001",
		DoctorID:             "doc-12",
		DoctorName:           "Dr. Lucia Fernández",
		DoctorSpecialization: "Dermatology",
		Status:               appointment.StatusConfirmed,
		AppointmentDate:      "2024-04-02",
		TimeSlot:             &appointment.TimeSlot{StartTime: "09:00", EndTime: "09:30"},
		CreatedAt:            "2024-03-28T16:40:00Z",
		PatientDetails: &appointment.PatientDetails{
			FullName:           "Sam Patel",
			PhoneNumber:        "+44 20 7946 0000",
			Email:              "sam.patel@example.org",
			MedicalConcern:     "Recurring rash on forearms",
			PreviousConditions: "Eczema (childhood)",
			Address:            "221 Baker Street, London",
		},
	}
}

// execCmd runs cmd and any batched commands synchronously, returning every message produced.
func execCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, execCmd(c)...)
		}
		return msgs
	}
	return []tea.Msg{msg}
}

// loadedMsgs keeps only fetch results from msgs.
func loadedMsgs(msgs []tea.Msg) []appointmentLoadedMsg {
	var out []appointmentLoadedMsg
	for _, msg := range msgs {
		if loaded, ok := msg.(appointmentLoadedMsg); ok {
			out = append(out, loaded)
		}
	}
	return out
}

// drive feeds the view's own messages produced by cmd back into m, following the commands
// they return. Spinner ticks, cursor blinks and quit are dropped.
func drive(m *AppointmentDetailModel, cmd tea.Cmd) {
	for _, msg := range execCmd(cmd) {
		switch msg.(type) {
		case appointmentLoadedMsg, AppointmentIDChangedMsg, NavigateMsg:
			_, next := m.Update(msg)
			drive(m, next)
		}
	}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}
