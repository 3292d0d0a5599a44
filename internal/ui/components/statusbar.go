package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/vigilops/vigil/internal/connectivity"
	"github.com/vigilops/vigil/internal/logger"
	"github.com/vigilops/vigil/internal/ui/styles"
)

// StatusBar renders the one-line footer: connectivity, unread alerts, feed
// latency, and the clock.
type StatusBar struct {
	width int

	status     connectivity.Status
	timestamp  time.Time
	dateFormat string

	reconnecting         bool
	reconnectAttempt     int
	reconnectMaxAttempts int

	unreadAlerts int
	feedLatency  time.Duration
}

// NewStatusBar creates a new status bar component
func NewStatusBar() *StatusBar {
	return &StatusBar{
		dateFormat: "2006-01-02 15:04:05",
		status:     connectivity.StatusDegraded,
	}
}

// SetSize sets the width of the status bar
func (s *StatusBar) SetSize(width int) {
	s.width = width
}

// SetStatus sets the reconciled connectivity status.
func (s *StatusBar) SetStatus(status connectivity.Status) {
	s.status = status
}

// SetTimestamp sets the current timestamp
func (s *StatusBar) SetTimestamp(timestamp time.Time) {
	s.timestamp = timestamp
}

// SetDateFormat sets the date format string
func (s *StatusBar) SetDateFormat(format string) {
	s.dateFormat = format
}

// SetReconnecting sets the feed reconnection progress display.
func (s *StatusBar) SetReconnecting(reconnecting bool, attempt, maxAttempts int) {
	s.reconnecting = reconnecting
	s.reconnectAttempt = attempt
	s.reconnectMaxAttempts = maxAttempts
}

// SetUnreadAlerts sets the unread alert count.
func (s *StatusBar) SetUnreadAlerts(count int) {
	s.unreadAlerts = count
}

// SetFeedLatency sets the smoothed heartbeat latency display.
func (s *StatusBar) SetFeedLatency(d time.Duration) {
	s.feedLatency = d
}

// View renders the status bar
func (s *StatusBar) View() string {
	indicator := s.statusIndicator()

	timestamp := s.timestamp.Format(s.dateFormat)

	var alertSection string
	if s.unreadAlerts > 0 {
		alertSection = " | " + styles.WarningStyle.Render(fmt.Sprintf("⚠ %d unread", s.unreadAlerts))
	}

	var latencySection string
	if s.feedLatency > 0 && s.status == connectivity.StatusNominal {
		latencySection = " | " + styles.MutedStyle.Render(fmt.Sprintf("%dms", s.feedLatency.Milliseconds()))
	}

	// Debug indicator (warning/error counts), only shown in debug mode
	var debugSection string
	if logger.IsDebugEnabled() {
		warnCount, errCount := logger.Counts()
		if warnCount > 0 {
			debugSection += " " + styles.WarningStyle.Render(fmt.Sprintf("⚠ %d", warnCount))
		}
		if errCount > 0 {
			debugSection += " " + styles.ErrorStyle.Render(fmt.Sprintf("✕ %d", errCount))
		}
		if debugSection != "" {
			debugSection = " |" + debugSection
		}
	}

	line := fmt.Sprintf("%s | %s%s%s%s",
		indicator,
		timestamp,
		alertSection,
		latencySection,
		debugSection,
	)

	if s.width > 0 {
		return lipgloss.NewStyle().Width(s.width).Render(line)
	}
	return styles.StatusBarStyle.Render(line)
}

// statusIndicator renders the connectivity glyph and caption.
func (s *StatusBar) statusIndicator() string {
	if s.reconnecting {
		return styles.WarningStyle.Render(
			fmt.Sprintf("● Reconnecting (%d/%d)", s.reconnectAttempt, s.reconnectMaxAttempts))
	}
	style := lipgloss.NewStyle().Foreground(styles.StatusColor(s.status))
	return style.Render("● " + s.status.Label())
}
