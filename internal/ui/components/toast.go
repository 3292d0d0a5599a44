package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vigilops/vigil/internal/notify"
	"github.com/vigilops/vigil/internal/ui/styles"
)

// toastIcons maps each notification type to its glyph.
var toastIcons = map[notify.Type]string{
	notify.TypeSuccess: "✓",
	notify.TypeError:   "✕",
	notify.TypeWarning: "⚠",
	notify.TypeInfo:    "ℹ",
}

// ToastStack renders active notifications as a vertical overlay in the top
// right corner. An empty queue renders nothing at all; the stack never
// paints an empty shell over the view beneath it.
type ToastStack struct {
	width      int
	maxVisible int
}

// NewToastStack creates a toast stack. maxVisible caps how many
// notifications render at once; older ones keep their timers and surface as
// slots free up.
func NewToastStack(maxVisible int) *ToastStack {
	if maxVisible < 1 {
		maxVisible = 5
	}
	return &ToastStack{maxVisible: maxVisible}
}

// SetWidth sets the available width for the overlay.
func (t *ToastStack) SetWidth(width int) {
	t.width = width
}

// View renders the stacked notifications, newest last.
func (t *ToastStack) View(items []notify.Notification) string {
	if len(items) == 0 {
		return ""
	}

	visible := items
	hidden := 0
	if len(visible) > t.maxVisible {
		hidden = len(visible) - t.maxVisible
		visible = visible[:t.maxVisible]
	}

	toastWidth := 40
	if t.width > 0 && t.width-4 < toastWidth {
		toastWidth = t.width - 4
	}

	var rendered []string
	for _, n := range visible {
		rendered = append(rendered, t.renderToast(n, toastWidth))
	}
	if hidden > 0 {
		rendered = append(rendered,
			styles.MutedStyle.Render(lipgloss.PlaceHorizontal(toastWidth, lipgloss.Right,
				fmt.Sprintf("… and %d more", hidden))))
	}

	return lipgloss.JoinVertical(lipgloss.Right, rendered...)
}

// renderToast renders one notification with its type accent.
func (t *ToastStack) renderToast(n notify.Notification, width int) string {
	icon, ok := toastIcons[n.Type]
	if !ok {
		icon = toastIcons[notify.TypeInfo]
	}

	color := styles.NotificationColor(n.Type)
	iconStyle := lipgloss.NewStyle().Foreground(color).Bold(true)

	msg := runewidth.Truncate(strings.ReplaceAll(n.Message, "\n", " "), width-6, "…")

	body := iconStyle.Render(icon) + " " + msg

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 1).
		Render(body)
}
