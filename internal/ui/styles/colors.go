// Package styles provides centralized Lipgloss styling for the vigil UI.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vigilops/vigil/internal/alerts"
	"github.com/vigilops/vigil/internal/connectivity"
	"github.com/vigilops/vigil/internal/notify"
)

// Color palette for the vigil UI
var (
	// Severity colors
	ColorCritical = lipgloss.Color("9")   // Red
	ColorWarning  = lipgloss.Color("11")  // Yellow
	ColorInfo     = lipgloss.Color("12")  // Blue
	ColorSuccess  = lipgloss.Color("10")  // Green

	// Connectivity colors
	ColorNominal  = lipgloss.Color("10")  // Green - live feed
	ColorDegraded = lipgloss.Color("11")  // Yellow - polling fallback
	ColorOffline  = lipgloss.Color("9")   // Red - no network

	// UI element colors
	ColorBorder = lipgloss.Color("240") // Gray - all borders
	ColorAccent = lipgloss.Color("6")   // Cyan - titles, highlights
	ColorMuted  = lipgloss.Color("8")   // Dark gray - secondary text

	// Selection colors
	ColorSelectedFg = lipgloss.Color("229") // Light yellow text
	ColorSelectedBg = lipgloss.Color("57")  // Purple background
)

// severityColors maps each severity to its display color. A lookup table
// keeps the mapping exhaustive in one place instead of scattered branches.
var severityColors = map[alerts.Severity]lipgloss.Color{
	alerts.SeverityCritical: ColorCritical,
	alerts.SeverityWarning:  ColorWarning,
	alerts.SeverityInfo:     ColorInfo,
}

// SeverityColor returns the display color for an alert severity.
func SeverityColor(s alerts.Severity) lipgloss.Color {
	if c, ok := severityColors[s]; ok {
		return c
	}
	return ColorMuted
}

// notificationColors maps each notification type to its accent color.
var notificationColors = map[notify.Type]lipgloss.Color{
	notify.TypeSuccess: ColorSuccess,
	notify.TypeError:   ColorCritical,
	notify.TypeWarning: ColorWarning,
	notify.TypeInfo:    ColorInfo,
}

// NotificationColor returns the accent color for a notification type.
func NotificationColor(t notify.Type) lipgloss.Color {
	if c, ok := notificationColors[t]; ok {
		return c
	}
	return ColorMuted
}

// statusColors maps each connectivity status to its indicator color.
var statusColors = map[connectivity.Status]lipgloss.Color{
	connectivity.StatusNominal:  ColorNominal,
	connectivity.StatusDegraded: ColorDegraded,
	connectivity.StatusOffline:  ColorOffline,
}

// StatusColor returns the indicator color for a connectivity status.
func StatusColor(s connectivity.Status) lipgloss.Color {
	if c, ok := statusColors[s]; ok {
		return c
	}
	return ColorMuted
}
