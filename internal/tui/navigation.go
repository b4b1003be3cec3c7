package tui

import (
	"net/url"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Routes of the booking web application this view links to.
const (
	myAppointmentsPath = "/my-appointments"
	doctorDetailsPath  = "/doctordetails/"
)

// MyAppointmentsRoute is the back-navigation target.
func MyAppointmentsRoute() string {
	return myAppointmentsPath
}

// DoctorDetailsRoute is the doctor profile route for doctorID.
func DoctorDetailsRoute(doctorID string) string {
	return doctorDetailsPath + url.PathEscape(doctorID)
}

// NavigateMsg asks the host to leave this view for Route.
type NavigateMsg struct {
	Route string
}

// Navigator receives navigation requests. The CLI records them and prints the web URL;
// tests record them for assertions.
type Navigator interface {
	Navigate(route string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(route string)

// Navigate calls f(route).
func (f NavigatorFunc) Navigate(route string) { f(route) }

// WebURL joins a web application base URL and a route.
func WebURL(baseURL, route string) string {
	return strings.TrimRight(baseURL, "/") + route
}

func navigate(route string) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Route: route} }
}
