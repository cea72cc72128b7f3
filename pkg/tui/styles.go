package tui

import "github.com/charmbracelet/lipgloss"

// Base styles shared across screens
var (
	BaseStyle = lipgloss.NewStyle().
			Background(ColorBg).
			Foreground(ColorFg)

	// Header bar style
	HeaderStyle = lipgloss.NewStyle().
			Background(ColorBgDark).
			Foreground(ColorFg).
			Padding(0, 1).
			Bold(true)

	// Footer bar style
	FooterStyle = lipgloss.NewStyle().
			Background(ColorBgDark).
			Foreground(ColorMuted).
			Padding(0, 1)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Padding(0, 1)

	// Text styles
	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorFgDim)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// Status styles
	StatusError = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	StatusInfo = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// List item styles
	SelectedStyle = lipgloss.NewStyle().
			Background(ColorBgLight).
			Foreground(ColorFg).
			Bold(true)

	UnselectedStyle = lipgloss.NewStyle().
			Foreground(ColorFgDim)

	// Help styles
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)
)
