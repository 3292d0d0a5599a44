package components

import (
	"strings"
	"testing"
	"time"

	"github.com/vigilops/vigil/internal/alerts"
)

func panelWith(list []alerts.Alert) *AlertPanel {
	p := NewAlertPanel()
	p.SetSize(80, 24)
	p.SetAlerts(list)
	p.Show()
	return p
}

func TestPanelEmptyStateMarker(t *testing.T) {
	p := panelWith(nil)

	out := p.View()
	if !strings.Contains(out, "No alerts match the current filters") {
		t.Error("empty result must render the explicit empty-state marker")
	}
}

func TestPanelEmptyAfterFiltering(t *testing.T) {
	p := panelWith([]alerts.Alert{
		{ID: "a1", Title: "info only", Severity: alerts.SeverityInfo},
	})
	p.CycleSeverity() // all -> critical

	if !strings.Contains(p.View(), "No alerts match the current filters") {
		t.Error("filtered-to-nothing must still show the empty-state marker")
	}
}

func TestPanelSelectionFollowsRanking(t *testing.T) {
	p := panelWith([]alerts.Alert{
		{ID: "w", Title: "warning", Severity: alerts.SeverityWarning, Timestamp: time.UnixMilli(300)},
		{ID: "c", Title: "critical", Severity: alerts.SeverityCritical, Timestamp: time.UnixMilli(200)},
	})

	a, ok := p.Selected()
	if !ok || a.ID != "c" {
		t.Fatalf("cursor should start on the top-ranked alert, got %v", a.ID)
	}

	p.CursorDown()
	a, _ = p.Selected()
	if a.ID != "w" {
		t.Errorf("cursor should move to the warning alert, got %s", a.ID)
	}

	// Bottom of the list clamps.
	p.CursorDown()
	a, _ = p.Selected()
	if a.ID != "w" {
		t.Errorf("cursor should clamp at the last row, got %s", a.ID)
	}
}

func TestPanelCursorClampsWhenSetShrinks(t *testing.T) {
	p := panelWith([]alerts.Alert{
		{ID: "a", Title: "one", Severity: alerts.SeverityInfo},
		{ID: "b", Title: "two", Severity: alerts.SeverityInfo},
		{ID: "c", Title: "three", Severity: alerts.SeverityInfo},
	})
	p.CursorDown()
	p.CursorDown()

	p.SetAlerts([]alerts.Alert{{ID: "a", Title: "one", Severity: alerts.SeverityInfo}})

	a, ok := p.Selected()
	if !ok || a.ID != "a" {
		t.Errorf("cursor should clamp into the shrunken set, got %v ok=%v", a.ID, ok)
	}
}

func TestPanelUnreadToggle(t *testing.T) {
	p := panelWith([]alerts.Alert{
		{ID: "r", Title: "seen", Severity: alerts.SeverityInfo, Read: true},
		{ID: "u", Title: "fresh", Severity: alerts.SeverityInfo},
	})

	p.ToggleUnreadOnly()
	ranked := p.Ranked()
	if len(ranked) != 1 || ranked[0].ID != "u" {
		t.Fatalf("unread-only should keep just the unread alert, got %v", ranked)
	}

	p.ToggleUnreadOnly()
	if len(p.Ranked()) != 2 {
		t.Error("toggling back should restore the full set")
	}
}

func TestPanelStatusRendersWithSpaces(t *testing.T) {
	p := panelWith([]alerts.Alert{
		{
			ID: "a1", Title: "pod pending", Severity: alerts.SeverityWarning,
			Metadata: alerts.Metadata{OrderRef: "PO-7", Status: "awaiting_final_pod"},
		},
	})

	out := p.View()
	if strings.Contains(out, "awaiting_final_pod") {
		t.Error("status underscores must render as spaces")
	}
	if !strings.Contains(out, "awaiting final pod") {
		t.Error("display status missing from the selected row detail")
	}
}

func TestPanelHidePreservesFilter(t *testing.T) {
	p := panelWith([]alerts.Alert{
		{ID: "a1", Title: "t", Severity: alerts.SeverityCritical},
	})
	p.CycleSeverity() // all -> critical
	p.Hide()

	if p.View() != "" {
		t.Error("hidden panel should render nothing")
	}
	p.Show()
	if p.Filter().Severity != alerts.FilterCritical {
		t.Error("hide/show cycle should keep the filter configuration")
	}
}
