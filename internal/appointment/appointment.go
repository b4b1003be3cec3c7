// Package appointment defines the appointment record served by the booking backend and the
// strict checks applied before it is displayed.
package appointment

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rshade/medibook/internal/format"
)

// Appointment is a booked time slot between a patient and a doctor.
type Appointment struct {
	ID                   string          `json:"_id,omitempty"`
	AppointmentNumber    Number          `json:"appointmentNumber"`
	DoctorID             string          `json:"doctorId"`
	DoctorName           string          `json:"doctorName"`
	DoctorSpecialization string          `json:"doctorSpecialization"`
	Status               Status          `json:"status"`
	AppointmentDate      string          `json:"appointmentDate"`
	TimeSlot             *TimeSlot       `json:"timeSlot,omitempty"`
	CreatedAt            string          `json:"createdAt"`
	PatientDetails       *PatientDetails `json:"patientDetails,omitempty"`
}

// TimeSlot is the start/end pair of an appointment, as bare times of day.
type TimeSlot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// PatientDetails is the intake information the patient supplied when booking.
// Email, PreviousConditions and Address are optional.
type PatientDetails struct {
	FullName           string `json:"fullName"`
	PhoneNumber        string `json:"phoneNumber"`
	Email              string `json:"email,omitempty"`
	MedicalConcern     string `json:"medicalConcern"`
	PreviousConditions string `json:"previousConditions,omitempty"`
	Address            string `json:"address,omitempty"`
}

// HasEmail reports whether an email address was supplied.
func (p *PatientDetails) HasEmail() bool {
	return p != nil && strings.TrimSpace(p.Email) != ""
}

// HasPreviousConditions reports whether previous conditions were supplied.
func (p *PatientDetails) HasPreviousConditions() bool {
	return p != nil && strings.TrimSpace(p.PreviousConditions) != ""
}

// HasAddress reports whether an address was supplied.
func (p *PatientDetails) HasAddress() bool {
	return p != nil && strings.TrimSpace(p.Address) != ""
}

// HasAdditionalInfo reports whether either optional block field is present.
func (p *PatientDetails) HasAdditionalInfo() bool {
	return p.HasPreviousConditions() || p.HasAddress()
}

// Number is a display identifier that the backend may send as a JSON string or number.
type Number string

// UnmarshalJSON accepts a string, a number or null.
func (n *Number) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case bytes.Equal(trimmed, []byte("null")):
		*n = ""
		return nil
	case len(trimmed) > 0 && trimmed[0] == '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*n = Number(s)
		return nil
	default:
		var num json.Number
		if err := json.Unmarshal(trimmed, &num); err != nil {
			return fmt.Errorf("appointmentNumber must be a string or number: %w", err)
		}
		*n = Number(num.String())
		return nil
	}
}

func (n Number) String() string { return string(n) }

// Decode reads one appointment from r and validates it.
// An empty body or a JSON null yields ErrEmptyBody; schema violations yield *SchemaError.
func Decode(r io.Reader) (*Appointment, error) {
	var appt *Appointment
	if err := json.NewDecoder(r).Decode(&appt); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyBody
		}
		return nil, fmt.Errorf("decoding appointment: %w", err)
	}
	if appt == nil {
		return nil, ErrEmptyBody
	}
	if err := appt.Validate(); err != nil {
		return nil, err
	}
	return appt, nil
}

// Validate fails fast on records the detail view cannot display: a missing timeSlot or
// patientDetails structure, or a date, time or timestamp that cannot be parsed.
// Every offending field is reported in one *SchemaError.
func (a *Appointment) Validate() error {
	if a == nil {
		return ErrEmptyBody
	}

	var fields []FieldError
	addParseErr := func(field string, err error) {
		if err != nil {
			fields = append(fields, FieldError{Field: field, Reason: err.Error()})
		}
	}

	_, _, err := format.ParseDate(a.AppointmentDate)
	addParseErr("appointmentDate", err)

	if a.TimeSlot == nil {
		fields = append(fields, FieldError{Field: "timeSlot", Reason: "missing"})
	} else {
		_, err = format.ParseClock(a.TimeSlot.StartTime, time.UTC)
		addParseErr("timeSlot.startTime", err)
		_, err = format.ParseClock(a.TimeSlot.EndTime, time.UTC)
		addParseErr("timeSlot.endTime", err)
	}

	_, err = format.ParseTimestamp(a.CreatedAt)
	addParseErr("createdAt", err)

	if a.PatientDetails == nil {
		fields = append(fields, FieldError{Field: "patientDetails", Reason: "missing"})
	}

	if len(fields) > 0 {
		return &SchemaError{Fields: fields}
	}
	return nil
}
