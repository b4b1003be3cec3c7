package appointment

import (
	"errors"
	"fmt"
	"strings"
)

// Common decode and validation errors.
var (
	ErrEmptyBody          = errors.New("appointment body is empty")
	ErrInvalidAppointment = errors.New("invalid appointment")
)

// FieldError describes one offending field of a decoded appointment.
type FieldError struct {
	Field  string
	Reason string
}

func (e FieldError) String() string {
	return e.Field + ": " + e.Reason
}

// SchemaError reports every field that prevents an appointment from being displayed.
// It matches ErrInvalidAppointment with errors.Is.
type SchemaError struct {
	Fields []FieldError
}

func (e *SchemaError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.String())
	}
	return fmt.Sprintf("%s: %s", ErrInvalidAppointment, strings.Join(parts, "; "))
}

// Is makes SchemaError match ErrInvalidAppointment.
func (e *SchemaError) Is(target error) bool {
	return target == ErrInvalidAppointment
}

// Has reports whether field is among the offending fields.
func (e *SchemaError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}
