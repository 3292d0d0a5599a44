package views

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/vigilops/vigil/internal/alerts"
	"github.com/vigilops/vigil/internal/logger"
)

func TestDashboardCalmWithoutCriticalAlerts(t *testing.T) {
	d := NewDashboard()
	d.SetSize(80, 24)
	d.SetAlerts([]alerts.Alert{
		{ID: "a1", Title: "routine", Severity: alerts.SeverityInfo},
	})

	out := d.View()
	if !strings.Contains(out, "No critical alerts") {
		t.Error("dashboard should state that no critical alerts are active")
	}
}

func TestDashboardDebugShowsRecentProblems(t *testing.T) {
	logger.Init(logger.LevelDebug, filepath.Join(t.TempDir(), "vigil.log"))
	defer logger.Close()
	logger.Warn("feed connection lost")

	d := NewDashboard()
	d.SetSize(80, 24)

	out := d.View()
	if !strings.Contains(out, "Recent problems") {
		t.Error("debug mode should surface the recent problem section")
	}
	if !strings.Contains(out, "feed connection lost") {
		t.Error("captured warning should render on the dashboard")
	}
}
