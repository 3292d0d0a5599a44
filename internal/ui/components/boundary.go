package components

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vigilops/vigil/internal/logger"
	"github.com/vigilops/vigil/internal/ui/styles"
)

// Boundary contains rendering faults from a view subtree. A panic during
// the wrapped render is recovered, counted, and replaced by a recovery view
// instead of taking the whole session down. Once the count passes the
// threshold the recovery view adds an escalation notice recommending a full
// restart; the boundary itself never restarts anything.
type Boundary struct {
	name      string
	threshold int

	width int

	faulted    bool
	faultCount int
	lastFault  string
	lastStack  string
}

// NewBoundary creates a boundary around the named subtree. threshold is how
// many faults it tolerates before escalating.
func NewBoundary(name string, threshold int) *Boundary {
	if threshold < 1 {
		threshold = 3
	}
	return &Boundary{name: name, threshold: threshold}
}

// SetWidth sets the available width for the recovery view.
func (b *Boundary) SetWidth(width int) {
	b.width = width
}

// Render runs the wrapped render function, trading any panic for the
// recovery view. While faulted it short-circuits to the recovery view until
// Retry re-attempts the subtree.
func (b *Boundary) Render(view func() string) (out string) {
	if b.faulted {
		return b.recoveryView()
	}

	defer func() {
		if r := recover(); r != nil {
			b.faulted = true
			b.faultCount++
			b.lastFault = fmt.Sprint(r)
			b.lastStack = string(debug.Stack())
			logger.Error("render fault contained",
				"boundary", b.name,
				"fault", b.lastFault,
				"count", b.faultCount,
			)
			out = b.recoveryView()
		}
	}()

	return view()
}

// Faulted returns whether the boundary is showing its recovery view.
func (b *Boundary) Faulted() bool {
	return b.faulted
}

// FaultCount returns the number of faults in the current window.
func (b *Boundary) FaultCount() int {
	return b.faultCount
}

// Escalated returns whether the fault count has passed the threshold.
func (b *Boundary) Escalated() bool {
	return b.faultCount > b.threshold
}

// Retry clears the faulted state so the next Render re-attempts the
// original subtree. The fault count keeps accumulating across ordinary
// retries so a subtree that faults on every attempt still reaches
// escalation; retrying from the escalated state starts a fresh window.
func (b *Boundary) Retry() {
	if b.Escalated() {
		b.faultCount = 0
	}
	b.faulted = false
	b.lastFault = ""
	b.lastStack = ""
}

// recoveryView renders the fallback shown in place of the faulted subtree.
func (b *Boundary) recoveryView() string {
	var lines []string

	lines = append(lines, styles.ErrorStyle.Bold(true).Render("Something went wrong"))
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("The %s view failed to render.", b.name))

	if b.Escalated() {
		lines = append(lines, "")
		lines = append(lines, styles.WarningStyle.Render(
			"This keeps happening. Restart vigil, and contact support if the problem persists."))
	}

	// Diagnostics only outside production-style runs.
	if logger.IsDebugEnabled() && b.lastFault != "" {
		lines = append(lines, "")
		lines = append(lines, styles.MutedStyle.Render("fault: "+b.lastFault))
		// First lines of the stack are enough on screen; the log has
		// the full trace.
		stackLines := strings.SplitN(b.lastStack, "\n", 8)
		if len(stackLines) == 8 {
			stackLines = stackLines[:7]
		}
		lines = append(lines, styles.MutedStyle.Render(strings.Join(stackLines, "\n")))
	}

	lines = append(lines, "")
	lines = append(lines, styles.MutedStyle.Render("[r] try again   [1] go to dashboard"))

	width := 60
	if b.width > 0 && b.width-4 < width {
		width = b.width - 4
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.ColorCritical).
		Padding(1, 2).
		Width(width).
		Render(strings.Join(lines, "\n"))
}
