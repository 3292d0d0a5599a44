package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
	"github.com/mitchellh/go-wordwrap"

	"github.com/vigilops/vigil/internal/alerts"
	"github.com/vigilops/vigil/internal/ui/styles"
)

// severityIcons maps each severity to its list glyph.
var severityIcons = map[alerts.Severity]string{
	alerts.SeverityCritical: "●",
	alerts.SeverityWarning:  "●",
	alerts.SeverityInfo:     "○",
}

// AlertPanel is the triage overlay: a filterable, ranked list of the active
// alerts with per-row actions. Filtering and ordering are delegated to
// alerts.Rank; the panel owns only filter state, the cursor, and rendering.
type AlertPanel struct {
	width  int
	height int

	visible bool

	filter    alerts.Filter
	searching bool
	search    textinput.Model

	source []alerts.Alert
	ranked []alerts.Alert
	cursor int
}

// NewAlertPanel creates a hidden alert panel with the pass-everything filter.
func NewAlertPanel() *AlertPanel {
	search := textinput.New()
	search.Placeholder = "search title or description"
	search.CharLimit = 80
	search.Width = 32

	return &AlertPanel{
		filter: alerts.DefaultFilter(),
		search: search,
	}
}

// SetSize sets the panel dimensions.
func (p *AlertPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// Show opens the panel.
func (p *AlertPanel) Show() {
	p.visible = true
}

// Hide closes the panel and leaves the filter configuration intact.
func (p *AlertPanel) Hide() {
	p.visible = false
	p.searching = false
	p.search.Blur()
}

// IsVisible returns whether the panel is open.
func (p *AlertPanel) IsVisible() bool {
	return p.visible
}

// SetAlerts updates the backing alert set and recomputes the projection.
func (p *AlertPanel) SetAlerts(list []alerts.Alert) {
	p.source = list
	p.recompute()
}

// Filter returns the current filter configuration.
func (p *AlertPanel) Filter() alerts.Filter {
	return p.filter
}

// Ranked returns the current filtered, ordered projection.
func (p *AlertPanel) Ranked() []alerts.Alert {
	return p.ranked
}

// recompute re-runs the pure projection and clamps the cursor.
func (p *AlertPanel) recompute() {
	p.filter.Search = p.search.Value()
	p.ranked = alerts.Rank(p.source, p.filter)
	if p.cursor >= len(p.ranked) {
		p.cursor = len(p.ranked) - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

// CursorUp moves the selection up.
func (p *AlertPanel) CursorUp() {
	if p.cursor > 0 {
		p.cursor--
	}
}

// CursorDown moves the selection down.
func (p *AlertPanel) CursorDown() {
	if p.cursor < len(p.ranked)-1 {
		p.cursor++
	}
}

// Selected returns the alert under the cursor.
func (p *AlertPanel) Selected() (alerts.Alert, bool) {
	if p.cursor < 0 || p.cursor >= len(p.ranked) {
		return alerts.Alert{}, false
	}
	return p.ranked[p.cursor], true
}

// CycleSeverity advances the severity filter to its next value.
func (p *AlertPanel) CycleSeverity() {
	p.filter.Severity = p.filter.Severity.Next()
	p.recompute()
}

// ToggleUnreadOnly flips the unread-only predicate.
func (p *AlertPanel) ToggleUnreadOnly() {
	p.filter.UnreadOnly = !p.filter.UnreadOnly
	p.recompute()
}

// StartSearch focuses the search input.
func (p *AlertPanel) StartSearch() tea.Cmd {
	p.searching = true
	return p.search.Focus()
}

// StopSearch blurs the search input, keeping its text as the active filter.
func (p *AlertPanel) StopSearch() {
	p.searching = false
	p.search.Blur()
	p.recompute()
}

// IsSearching returns whether the search input has focus.
func (p *AlertPanel) IsSearching() bool {
	return p.searching
}

// Update forwards input to the focused search field.
func (p *AlertPanel) Update(msg tea.Msg) tea.Cmd {
	if !p.searching {
		return nil
	}
	var cmd tea.Cmd
	p.search, cmd = p.search.Update(msg)
	p.recompute()
	return cmd
}

// View renders the panel.
func (p *AlertPanel) View() string {
	if !p.visible {
		return ""
	}

	contentWidth := p.width - 6
	if contentWidth < 40 {
		contentWidth = 40
	}

	header := p.renderHeader(contentWidth)

	var body string
	if len(p.ranked) == 0 {
		// Explicit empty-state marker, never a bare empty list.
		body = styles.EmptyStateStyle.Render("No alerts match the current filters")
	} else {
		rows := make([]string, 0, len(p.ranked))
		for i := range p.ranked {
			rows = append(rows, p.renderRow(i, contentWidth))
		}
		body = strings.Join(rows, "\n")
	}

	footer := styles.MutedStyle.Render("enter open · m mark read · x dismiss · s severity · u unread · / search · esc close")

	content := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)

	// Border turns critical red when any visible alert is critical.
	border := styles.PanelBorderStyle
	for i := range p.ranked {
		if p.ranked[i].IsCritical() {
			border = border.BorderForeground(styles.ColorCritical)
			break
		}
	}

	return border.Width(p.width - 2).Render(content)
}

// renderHeader renders the title line with the active filter summary.
func (p *AlertPanel) renderHeader(width int) string {
	title := styles.TitleStyle.Render("Alerts")

	var parts []string
	if p.filter.Severity != alerts.FilterAll {
		parts = append(parts, p.filter.Severity.String())
	}
	if p.filter.UnreadOnly {
		parts = append(parts, "unread")
	}

	var filterSummary string
	if len(parts) > 0 {
		filterSummary = styles.MutedStyle.Render(" [" + strings.Join(parts, ", ") + "]")
	}

	line := title + filterSummary
	if p.searching || p.search.Value() != "" {
		line += "  " + p.search.View()
	}
	return ansi.Truncate(line, width, "…")
}

// renderRow renders one alert line, expanding the selected row with its
// description and metadata.
func (p *AlertPanel) renderRow(i, width int) string {
	a := p.ranked[i]

	icon, ok := severityIcons[a.Severity]
	if !ok {
		icon = "○"
	}
	iconStyle := lipgloss.NewStyle().Foreground(styles.SeverityColor(a.Severity)).Bold(true)

	readMark := "•"
	if a.Read {
		readMark = " "
	}

	var age string
	if !a.Timestamp.IsZero() {
		age = humanize.Time(a.Timestamp)
	}

	line := fmt.Sprintf("%s %s %s", iconStyle.Render(icon), readMark, a.Title)
	if age != "" {
		line += " " + styles.MutedStyle.Render(age)
	}
	line = ansi.Truncate(line, width, "…")

	if i != p.cursor {
		return line
	}

	// Selected row: show detail beneath it.
	detail := p.renderDetail(&a, width)
	selected := styles.SelectedStyle.Render(ansi.Strip(line))
	if detail == "" {
		return selected
	}
	return selected + "\n" + detail
}

// renderDetail renders the description and metadata of the selected alert.
func (p *AlertPanel) renderDetail(a *alerts.Alert, width int) string {
	var lines []string

	if a.Description != "" {
		wrapped := wordwrap.WrapString(a.Description, uint(width-4))
		for _, l := range strings.Split(wrapped, "\n") {
			lines = append(lines, "    "+l)
		}
	}

	if !a.Metadata.IsZero() {
		var meta []string
		if a.Metadata.OrderRef != "" {
			meta = append(meta, "order "+a.Metadata.OrderRef)
		}
		if a.Metadata.Supplier != "" {
			meta = append(meta, a.Metadata.Supplier)
		}
		if a.Metadata.Product != "" {
			meta = append(meta, a.Metadata.Product)
		}
		if a.Metadata.Week != "" {
			meta = append(meta, "wk "+a.Metadata.Week)
		}
		if a.Metadata.Status != "" {
			meta = append(meta, a.Metadata.DisplayStatus())
		}
		if a.Metadata.FinalPOD != "" {
			meta = append(meta, "POD "+a.Metadata.FinalPOD)
		}
		if len(meta) > 0 {
			lines = append(lines, "    "+styles.MutedStyle.Render(ansi.Truncate(strings.Join(meta, " · "), width-4, "…")))
		}
	}
	if a.HasOrderRef() {
		lines = append(lines, "    "+styles.MutedStyle.Render("enter → open order"))
	}

	return strings.Join(lines, "\n")
}
