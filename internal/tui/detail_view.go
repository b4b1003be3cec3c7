package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Section titles and labels of the detail view.
const (
	titleDetails      = "Appointment Details"
	titleAppointment  = "Appointment Information"
	titlePatient      = "Patient Information"
	titleAdditional   = "Additional Information"
	actionBackLabel   = "Back to My Appointments"
	actionDoctorLabel = "View Doctor Profile"
	columnGap         = 2
	twoColumnMinWidth = 72
)

type field struct {
	label string
	value string
}

func (vm DetailViewModel) numberLine() string {
	return "Appointment #" + vm.Number
}

func (vm DetailViewModel) appointmentFields() []field {
	return []field{
		{"Doctor", vm.DoctorName},
		{"Specialization", vm.Specialization},
		{"Date", vm.Date},
		{"Time", vm.Time},
		{"Booked On", vm.BookedOn},
	}
}

func (vm DetailViewModel) patientFields() []field {
	fields := []field{
		{"Name", vm.PatientName},
		{"Phone", vm.Phone},
	}
	if vm.ShowEmail {
		fields = append(fields, field{"Email", vm.Email})
	}
	return append(fields, field{"Medical Concern", vm.MedicalConcern})
}

func (vm DetailViewModel) additionalFields() []field {
	var fields []field
	if vm.ShowPreviousConditions {
		fields = append(fields, field{"Previous Conditions", vm.PreviousConditions})
	}
	if vm.ShowAddress {
		fields = append(fields, field{"Address", vm.Address})
	}
	return fields
}

// RenderDetail renders the styled detail view at the given terminal width.
func RenderDetail(vm DetailViewModel, width int) string {
	if width < minWidth {
		width = minWidth
	}

	header := lipgloss.JoinVertical(lipgloss.Left,
		SubtleStyle.Render("← "+actionBackLabel+" ("+keyBack+")"),
		"",
		TitleStyle.Render(titleDetails),
		lipgloss.JoinHorizontal(lipgloss.Center,
			ValueStyle.Render(vm.numberLine()),
			"  ",
			BadgeStyle(vm.Badge).Render(vm.BadgeText),
		),
	)

	sections := []string{header, renderColumns(vm, width)}

	if vm.ShowAdditionalInfo {
		sections = append(sections, renderBox(titleAdditional, vm.additionalFields(), width-borderWidth))
	}

	sections = append(sections, renderActions(vm))
	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

// borderWidth is the horizontal space taken by a rounded border plus padding.
const borderWidth = 4

func renderColumns(vm DetailViewModel, width int) string {
	if width < twoColumnMinWidth {
		boxWidth := width - borderWidth
		return lipgloss.JoinVertical(lipgloss.Left,
			renderBox(titleAppointment, vm.appointmentFields(), boxWidth),
			renderBox(titlePatient, vm.patientFields(), boxWidth),
		)
	}

	colWidth := (width-columnGap)/2 - borderWidth
	return lipgloss.JoinHorizontal(lipgloss.Top,
		renderBox(titleAppointment, vm.appointmentFields(), colWidth),
		strings.Repeat(" ", columnGap),
		renderBox(titlePatient, vm.patientFields(), colWidth),
	)
}

func renderBox(title string, fields []field, width int) string {
	var content strings.Builder
	content.WriteString(HeaderStyle.Render(title))
	for _, f := range fields {
		content.WriteString("\n")
		content.WriteString(LabelStyle.Render(f.label + ": "))
		content.WriteString(ValueStyle.Render(f.value))
	}
	return BoxStyle.Width(width).Render(content.String())
}

func renderActions(vm DetailViewModel) string {
	parts := []string{KeyStyle.Render("["+keyBack+"]") + " " + actionBackLabel}
	if vm.HasDoctorAction() {
		parts = append(parts, KeyStyle.Render("["+keyDoc+"]")+" "+actionDoctorLabel)
	}
	parts = append(parts, KeyStyle.Render("["+keyGoto+"]")+" Open another", KeyStyle.Render("["+keyQuit+"]")+" Quit")
	return strings.Join(parts, "   ")
}

// RenderPlain renders the detail view as unstyled "Label: value" lines.
func RenderPlain(vm DetailViewModel) string {
	var b strings.Builder
	b.WriteString(titleDetails + "\n")
	b.WriteString(vm.numberLine() + "\n")
	b.WriteString("Status: " + vm.BadgeText + "\n")

	writeSection := func(title string, fields []field) {
		b.WriteString("\n" + title + "\n")
		for _, f := range fields {
			b.WriteString(f.label + ": " + f.value + "\n")
		}
	}
	writeSection(titleAppointment, vm.appointmentFields())
	writeSection(titlePatient, vm.patientFields())
	if vm.ShowAdditionalInfo {
		writeSection(titleAdditional, vm.additionalFields())
	}

	actions := []field{{actionBackLabel, vm.BackRoute}}
	if vm.HasDoctorAction() {
		actions = append(actions, field{actionDoctorLabel, vm.DoctorRoute})
	}
	writeSection("Actions", actions)
	return b.String()
}

// RenderError renders the error panel with its back action.
func RenderError(message string) string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		CriticalStyle.Render(message),
		"",
		KeyStyle.Render("["+keyBack+"]")+" "+actionBackLabel+"   "+KeyStyle.Render("["+keyQuit+"]")+" Quit",
	)
	return ErrorBoxStyle.Render(body) + "\n"
}
