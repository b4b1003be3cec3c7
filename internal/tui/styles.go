package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/medibook/internal/appointment"
)

// Colour palette.
var (
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#60A5FA"}
	ColorSubtle  = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	ColorBorder  = lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#4B5563"}
	ColorError   = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"}

	ColorBadgeYellow = lipgloss.Color("#CA8A04")
	ColorBadgeGreen  = lipgloss.Color("#16A34A")
	ColorBadgeRed    = lipgloss.Color("#DC2626")
	ColorBadgeBlue   = lipgloss.Color("#2563EB")
)

// Text styles.
var (
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)

	LabelStyle = lipgloss.NewStyle().Foreground(ColorSubtle)

	ValueStyle = lipgloss.NewStyle().Bold(true)

	SubtleStyle = lipgloss.NewStyle().Foreground(ColorSubtle).Italic(true)

	InfoStyle = lipgloss.NewStyle().Foreground(ColorPrimary)

	CriticalStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorError)

	SpinnerStyle = lipgloss.NewStyle().Foreground(ColorPrimary)

	KeyStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
)

// Container styles.
var (
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	ErrorBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorError).
			Padding(1, 2)

	badgeBase = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Foreground(lipgloss.Color("#FFFFFF"))
)

// BadgeColor returns the background colour of a badge variant.
func BadgeColor(v appointment.BadgeVariant) lipgloss.Color {
	switch v {
	case appointment.BadgePending:
		return ColorBadgeYellow
	case appointment.BadgeConfirmed:
		return ColorBadgeGreen
	case appointment.BadgeCancelled:
		return ColorBadgeRed
	case appointment.BadgeOther:
		return ColorBadgeBlue
	default:
		return ColorBadgeBlue
	}
}

// BadgeStyle returns the style for a status badge.
func BadgeStyle(v appointment.BadgeVariant) lipgloss.Style {
	return badgeBase.Background(BadgeColor(v))
}
