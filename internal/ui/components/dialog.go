package components

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vigilops/vigil/internal/ui/styles"
)

// DialogResolvedMsg is delivered exactly once per dialog instance, after the
// exit delay has elapsed. The owner unmounts the dialog and acts on the
// outcome when it arrives.
type DialogResolvedMsg struct {
	ID        string
	Confirmed bool
}

// dialogAutoCloseMsg forces the cancel path when the dialog's auto-close
// countdown elapses. It carries the generation it was armed under; a
// resolution bumps the generation, so a tick that lost the race arrives
// stale and is ignored.
type dialogAutoCloseMsg struct {
	id  string
	gen int
}

// ConfirmDialog is a confirmation prompt with a two-phase exit: a confirm or
// cancel request immediately flips the visual state into its closing
// transition, and the resolution message follows after a fixed delay so the
// owner never clips the fade by unmounting early. Exactly one of
// confirm/cancel resolves a given instance.
type ConfirmDialog struct {
	id    string
	title string
	body  string

	width int

	closing  bool
	resolved bool

	gen int

	exitDelay time.Duration
	autoClose time.Duration
}

// NewConfirmDialog creates an open dialog. exitDelay is the fade-out time
// before resolution is delivered; autoClose of zero disables the forced
// cancel countdown.
func NewConfirmDialog(id, title, body string, exitDelay, autoClose time.Duration) *ConfirmDialog {
	if exitDelay <= 0 {
		exitDelay = 200 * time.Millisecond
	}
	return &ConfirmDialog{
		id:        id,
		title:     title,
		body:      body,
		exitDelay: exitDelay,
		autoClose: autoClose,
	}
}

// Init arms the auto-close countdown, if configured.
func (d *ConfirmDialog) Init() tea.Cmd {
	if d.autoClose <= 0 {
		return nil
	}
	id, gen := d.id, d.gen
	return tea.Tick(d.autoClose, func(time.Time) tea.Msg {
		return dialogAutoCloseMsg{id: id, gen: gen}
	})
}

// Update handles dialog-internal messages.
func (d *ConfirmDialog) Update(msg tea.Msg) tea.Cmd {
	if m, ok := msg.(dialogAutoCloseMsg); ok {
		if m.id == d.id && m.gen == d.gen {
			return d.Cancel()
		}
	}
	return nil
}

// Confirm requests the confirmed resolution.
func (d *ConfirmDialog) Confirm() tea.Cmd {
	return d.resolve(true)
}

// Cancel requests the cancelled resolution.
func (d *ConfirmDialog) Cancel() tea.Cmd {
	return d.resolve(false)
}

// resolve transitions to the closing state and schedules the deferred
// resolution message. The second and later requests are no-ops: resolution
// fires exactly once.
func (d *ConfirmDialog) resolve(confirmed bool) tea.Cmd {
	if d.resolved {
		return nil
	}
	d.resolved = true
	d.closing = true
	// Invalidate any auto-close tick still in flight.
	d.gen++

	id := d.id
	return tea.Tick(d.exitDelay, func(time.Time) tea.Msg {
		return DialogResolvedMsg{ID: id, Confirmed: confirmed}
	})
}

// ID returns the dialog's identifier.
func (d *ConfirmDialog) ID() string {
	return d.id
}

// IsClosing returns whether the dialog is in its exit transition.
func (d *ConfirmDialog) IsClosing() bool {
	return d.closing
}

// IsResolved returns whether a resolution has been requested.
func (d *ConfirmDialog) IsResolved() bool {
	return d.resolved
}

// SetWidth sets the available width.
func (d *ConfirmDialog) SetWidth(width int) {
	d.width = width
}

// View renders the dialog. The owner unmounts the instance when its
// resolution message arrives, so the dialog renders as long as it exists.
// During the closing transition the content dims, standing in for the fade a
// terminal cannot animate.
func (d *ConfirmDialog) View() string {
	titleStyle := styles.TitleStyle.MarginBottom(1)
	promptStyle := lipgloss.NewStyle().MarginTop(1).Bold(true)
	body := d.body
	borderColor := styles.ColorAccent

	if d.closing {
		titleStyle = styles.MutedStyle.Bold(true).MarginBottom(1)
		promptStyle = styles.MutedStyle.MarginTop(1)
		body = styles.MutedStyle.Render(body)
		borderColor = styles.ColorMuted
	}

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render(d.title),
		body,
		promptStyle.Render("[y] Confirm  [n] Cancel"),
	)

	width := 50
	if d.width > 0 && d.width-4 < width {
		width = d.width - 4
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(1, 2).
		Width(width).
		Render(content)
}
