package console

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	PrimaryColor   = lipgloss.Color("#A78BFA") // Purple
	SecondaryColor = lipgloss.Color("#10B981") // Green
	WarningColor   = lipgloss.Color("#F59E0B") // Amber
	ErrorColor     = lipgloss.Color("#F87171") // Red
	MutedColor     = lipgloss.Color("#9CA3AF") // Gray

	// Convenience styles for colors
	Primary   = lipgloss.NewStyle().Foreground(PrimaryColor)
	Secondary = lipgloss.NewStyle().Foreground(SecondaryColor)
	Warning   = lipgloss.NewStyle().Foreground(WarningColor)
	Error     = lipgloss.NewStyle().Foreground(ErrorColor)
	Muted     = lipgloss.NewStyle().Foreground(MutedColor)

	// Title style for the run banner
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(PrimaryColor)

	// Success style for terminal summary lines
	Success = lipgloss.NewStyle().
		Bold(true).
		Foreground(SecondaryColor)

	// Failure style for terminal summary lines
	Failure = lipgloss.NewStyle().
		Bold(true).
		Foreground(ErrorColor)
)
