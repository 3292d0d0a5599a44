package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"

	"github.com/vigilops/vigil/internal/alerts"
	"github.com/vigilops/vigil/internal/connectivity"
	"github.com/vigilops/vigil/internal/logger"
	"github.com/vigilops/vigil/internal/ui/styles"
)

// DashboardView is the landing screen: connectivity at a glance plus the
// most recent high-severity alerts.
type DashboardView struct {
	width  int
	height int

	status connectivity.Status
	alerts []alerts.Alert
}

// NewDashboard creates the dashboard view.
func NewDashboard() *DashboardView {
	return &DashboardView{status: connectivity.StatusDegraded}
}

// SetSize sets the view dimensions.
func (v *DashboardView) SetSize(width, height int) {
	v.width = width
	v.height = height
}

// SetStatus sets the reconciled connectivity status.
func (v *DashboardView) SetStatus(status connectivity.Status) {
	v.status = status
}

// SetAlerts updates the alert set the summary is computed from.
func (v *DashboardView) SetAlerts(list []alerts.Alert) {
	v.alerts = list
}

// View renders the dashboard.
func (v *DashboardView) View() string {
	title := styles.TitleStyle.Render("vigil — operations")

	statusStyle := lipgloss.NewStyle().Foreground(styles.StatusColor(v.status))
	statusLine := "Feed: " + statusStyle.Render(v.status.Label())

	counts := map[alerts.Severity]int{}
	unread := 0
	for i := range v.alerts {
		counts[v.alerts[i].Severity]++
		if !v.alerts[i].Read {
			unread++
		}
	}
	summary := fmt.Sprintf("Alerts: %d critical, %d warning, %d info (%d unread)",
		counts[alerts.SeverityCritical],
		counts[alerts.SeverityWarning],
		counts[alerts.SeverityInfo],
		unread,
	)

	lines := []string{title, "", statusLine, summary, ""}

	recent := alerts.Rank(v.alerts, alerts.Filter{Severity: alerts.FilterCritical})
	if len(recent) == 0 {
		lines = append(lines, styles.SuccessStyle.Render("No critical alerts"))
	} else {
		lines = append(lines, styles.ErrorStyle.Render("Critical"))
		max := 5
		if len(recent) < max {
			max = len(recent)
		}
		for _, a := range recent[:max] {
			row := "  ● " + a.Title
			if !a.Timestamp.IsZero() {
				row += " " + styles.MutedStyle.Render(humanize.Time(a.Timestamp))
			}
			lines = append(lines, ansi.Truncate(row, maxWidth(v.width), "…"))
		}
	}

	// Recent problem log entries, only while debugging.
	if logger.IsDebugEnabled() {
		if entries := logger.Entries(); len(entries) > 0 {
			tail := entries
			if len(tail) > 3 {
				tail = tail[len(tail)-3:]
			}
			lines = append(lines, "", styles.MutedStyle.Render("Recent problems"))
			for _, e := range tail {
				lines = append(lines, styles.MutedStyle.Render("  "+e.Format()))
			}
		}
	}

	lines = append(lines, "", styles.MutedStyle.Render("a alerts · 2 orders · q quit"))

	return strings.Join(lines, "\n")
}

func maxWidth(w int) int {
	if w <= 0 {
		return 80
	}
	return w - 2
}
