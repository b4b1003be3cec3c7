package tui

import (
	"errors"
	"fmt"

	"github.com/rshade/medibook/internal/appointment"
	"github.com/rshade/medibook/internal/format"
)

// ErrNoAppointment is returned when a view model is requested for a nil appointment.
var ErrNoAppointment = errors.New("no appointment to display")

// DetailViewModel holds every display string of the detail view, computed once per appointment.
type DetailViewModel struct {
	Number    string                   `json:"number"`
	Status    string                   `json:"status"`
	BadgeText string                   `json:"badgeText"`
	Badge     appointment.BadgeVariant `json:"badge"`

	DoctorID       string `json:"doctorId"`
	DoctorName     string `json:"doctorName"`
	Specialization string `json:"specialization"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	BookedOn       string `json:"bookedOn"`

	PatientName        string `json:"patientName"`
	Phone              string `json:"phone"`
	Email              string `json:"email"`
	MedicalConcern     string `json:"medicalConcern"`
	PreviousConditions string `json:"previousConditions"`
	Address            string `json:"address"`

	ShowEmail              bool `json:"showEmail"`
	ShowAdditionalInfo     bool `json:"showAdditionalInfo"`
	ShowPreviousConditions bool `json:"showPreviousConditions"`
	ShowAddress            bool `json:"showAddress"`

	BackRoute   string `json:"backRoute"`
	DoctorRoute string `json:"doctorRoute"`
}

// HasDoctorAction reports whether the doctor profile action can be offered.
func (vm DetailViewModel) HasDoctorAction() bool {
	return vm.DoctorRoute != ""
}

// NewDetailViewModel formats appt for display with f.
func NewDetailViewModel(appt *appointment.Appointment, f *format.Formatter) (DetailViewModel, error) {
	if appt == nil {
		return DetailViewModel{}, ErrNoAppointment
	}
	if appt.TimeSlot == nil || appt.PatientDetails == nil {
		return DetailViewModel{}, appt.Validate()
	}

	date, err := f.Date(appt.AppointmentDate)
	if err != nil {
		return DetailViewModel{}, fmt.Errorf("appointment date: %w", err)
	}
	slot, err := f.ClockRange(appt.TimeSlot.StartTime, appt.TimeSlot.EndTime)
	if err != nil {
		return DetailViewModel{}, fmt.Errorf("time slot: %w", err)
	}
	booked, err := f.Timestamp(appt.CreatedAt)
	if err != nil {
		return DetailViewModel{}, fmt.Errorf("created at: %w", err)
	}

	patient := appt.PatientDetails
	vm := DetailViewModel{
		Number:    appt.AppointmentNumber.String(),
		Status:    appt.Status.String(),
		BadgeText: f.Capitalize(appt.Status.String()),
		Badge:     appt.Status.Badge(),

		DoctorID:       appt.DoctorID,
		DoctorName:     appt.DoctorName,
		Specialization: appt.DoctorSpecialization,
		Date:           date,
		Time:           slot,
		BookedOn:       booked,

		PatientName:        patient.FullName,
		Phone:              patient.PhoneNumber,
		Email:              patient.Email,
		MedicalConcern:     patient.MedicalConcern,
		PreviousConditions: patient.PreviousConditions,
		Address:            patient.Address,

		ShowEmail:              patient.HasEmail(),
		ShowAdditionalInfo:     patient.HasAdditionalInfo(),
		ShowPreviousConditions: patient.HasPreviousConditions(),
		ShowAddress:            patient.HasAddress(),

		BackRoute: MyAppointmentsRoute(),
	}
	if appt.DoctorID != "" {
		vm.DoctorRoute = DoctorDetailsRoute(appt.DoctorID)
	}
	return vm, nil
}
