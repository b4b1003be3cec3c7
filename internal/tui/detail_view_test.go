package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPlain(t *testing.T) {
	t.Run("hides absent optional rows", func(t *testing.T) {
		vm, err := NewDetailViewModel(pendingAppointment(), testFormatter())
		require.NoError(t, err)

		out := RenderPlain(vm)

		assert.Contains(t, out, "Appointment Details\n")
		assert.Contains(t, out, "Appointment #1042\n")
		assert.Contains(t, out, "Status: Pending\n")
		assert.Contains(t, out, "Doctor: Dr. Amara Okafor\n")
		assert.Contains(t, out, "Specialization: Cardiology\n")
		assert.Contains(t, out, "Date: Friday, March 15, 2024\n")
		assert.Contains(t, out, "Time: 2:30 PM - 3:00 PM\n")
		assert.Contains(t, out, "Name: Jordan Lee\n")
		assert.Contains(t, out, "Medical Concern: Chest tightness after exercise\n")
		assert.NotContains(t, out, "Email:")
		assert.NotContains(t, out, "Additional Information")
		assert.Contains(t, out, "Back to My Appointments: /my-appointments\n")
		assert.Contains(t, out, "View Doctor Profile: /doctordetails/doc-7\n")
	})

	t.Run("shows present optional rows", func(t *testing.T) {
		vm, err := NewDetailViewModel(confirmedAppointment(), testFormatter())
		require.NoError(t, err)

		out := RenderPlain(vm)

		assert.Contains(t, out, "Email: sam.patel@example.org\n")
		assert.Contains(t, out, "Additional Information\n")
		assert.Contains(t, out, "Previous Conditions: Eczema (childhood)\n")
		assert.Contains(t, out, "Address: 221 Baker Street, London\n")
	})
}

func TestRenderDetail(t *testing.T) {
	vm, err := NewDetailViewModel(confirmedAppointment(), testFormatter())
	require.NoError(t, err)

	for _, width := range []int{20, 60, 120} {
		out := RenderDetail(vm, width)

		assert.Contains(t, out, "Appointment Details")
		assert.Contains(t, out, "Appointment #APT-2001")
		assert.Contains(t, out, "Confirmed")
		assert.Contains(t, out, "Appointment Information")
		assert.Contains(t, out, "Patient Information")
		assert.Contains(t, out, "Additional Information")
		assert.Contains(t, out, "View Doctor Profile")
	}

	vm, err = NewDetailViewModel(pendingAppointment(), testFormatter())
	require.NoError(t, err)
	out := RenderDetail(vm, 120)
	assert.NotContains(t, out, "Email")
	assert.NotContains(t, out, "Additional Information")
}

func TestRenderError(t *testing.T) {
	out := RenderError(ErrorMessage)

	assert.Contains(t, out, "Failed to load appointment details.")
	assert.Contains(t, out, "Back to My Appointments")
}

func TestBadgeColor(t *testing.T) {
	vm, err := NewDetailViewModel(pendingAppointment(), testFormatter())
	require.NoError(t, err)
	assert.Equal(t, ColorBadgeYellow, BadgeColor(vm.Badge))

	vm, err = NewDetailViewModel(confirmedAppointment(), testFormatter())
	require.NoError(t, err)
	assert.Equal(t, ColorBadgeGreen, BadgeColor(vm.Badge))
}
