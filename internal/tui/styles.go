package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("#018EEE")
	colorAccent  = lipgloss.Color("#52B0FF")
	colorDim     = lipgloss.Color("#666666")
	colorText    = lipgloss.Color("#EEEEEE")
	colorSuccess = lipgloss.Color("#2ECC71")
	colorWarn    = lipgloss.Color("#F5A623")
	colorError   = lipgloss.Color("#EF2929")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(1, 2)

	messageStyle = lipgloss.NewStyle().
			Foreground(colorText)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	successStyle = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(colorWarn)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)
)

// Success renders a confirmation line.
func Success(s string) string { return successStyle.Render("✓ " + s) }

// Warn renders a fallback or retry notice.
func Warn(s string) string { return warnStyle.Render("! " + s) }

// Error renders a failure line.
func Error(s string) string { return errorStyle.Render("✗ " + s) }

// Dim renders secondary text.
func Dim(s string) string { return dimStyle.Render(s) }
