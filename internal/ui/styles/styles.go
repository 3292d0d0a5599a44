package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Shared styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorCritical)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorSelectedFg).
			Background(ColorSelectedBg)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("236"))

	PanelBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorder).
				Padding(0, 1)

	// EmptyStateStyle renders the distinct marker shown when filters
	// match nothing, so an empty result is never a blank panel.
	EmptyStateStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true).
			Padding(1, 2)
)
