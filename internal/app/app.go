// Package app wires the feed, the alert store, the notification queue, and
// the connectivity monitor into the root Bubbletea model.
package app

import (
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vigilops/vigil/internal/alerts"
	"github.com/vigilops/vigil/internal/config"
	"github.com/vigilops/vigil/internal/connectivity"
	"github.com/vigilops/vigil/internal/feed"
	"github.com/vigilops/vigil/internal/logger"
	"github.com/vigilops/vigil/internal/notify"
	"github.com/vigilops/vigil/internal/sound"
	"github.com/vigilops/vigil/internal/ui"
	"github.com/vigilops/vigil/internal/ui/components"
	"github.com/vigilops/vigil/internal/ui/views"
)

// dialogQuit identifies the quit confirmation dialog.
const dialogQuit = "quit"

// App is the root model.
type App struct {
	cfg  *config.Config
	keys ui.KeyMap
	help help.Model

	width  int
	height int

	store   *alerts.Store
	queue   *notify.Queue
	monitor *connectivity.Monitor
	feed    *feed.Client
	player  sound.Player

	activeView views.ViewType
	dashboard  *views.DashboardView
	orders     *views.OrdersView
	boundaries map[views.ViewType]*components.Boundary

	panel     *components.AlertPanel
	statusBar *components.StatusBar
	toasts    *components.ToastStack
	dialog    *components.ConfirmDialog

	// events carries messages pushed by background goroutines into the
	// update loop. done unblocks pushers during teardown.
	events chan tea.Msg
	done   chan struct{}

	cleanupOnce sync.Once
}

// New builds the application model. The network source and sound player are
// injected so tests can substitute fakes.
func New(cfg *config.Config, source connectivity.NetworkSource, player sound.Player) *App {
	a := &App{
		cfg:        cfg,
		keys:       ui.DefaultKeyMap(),
		help:       help.New(),
		store:      alerts.NewStore(),
		player:     player,
		activeView: views.ViewDashboard,
		dashboard:  views.NewDashboard(),
		orders:     views.NewOrders(),
		panel:      components.NewAlertPanel(),
		statusBar:  components.NewStatusBar(),
		toasts:     components.NewToastStack(cfg.Notifications.MaxVisible),
		events:     make(chan tea.Msg, 64),
		done:       make(chan struct{}),
	}

	a.boundaries = map[views.ViewType]*components.Boundary{
		views.ViewDashboard: components.NewBoundary("dashboard", cfg.Alerts.FaultThreshold),
		views.ViewOrders:    components.NewBoundary("orders", cfg.Alerts.FaultThreshold),
	}

	a.statusBar.SetDateFormat(cfg.UI.DateFormat)

	a.queue = notify.NewQueue(cfg.Notifications.DefaultDuration, func(id string) {
		a.push(NotificationExpiredMsg{ID: id})
	})

	a.monitor = connectivity.NewMonitor(source, func(s connectivity.Status) {
		a.push(ConnectivityChangedMsg{Status: s})
	})

	a.feed = feed.NewClient(cfg.Feed.URL, cfg.Feed.ReconnectMaxAttempts, cfg.Notifications.AutoClose, feed.Callbacks{
		OnSnapshot: func(list []alerts.Alert) {
			a.push(FeedSnapshotMsg{Alerts: list})
		},
		OnAlert: func(alert alerts.Alert) {
			a.push(FeedAlertMsg{Alert: alert})
		},
		OnNotification: func(n notify.Notification) {
			a.push(FeedNotificationMsg{Notification: n})
		},
		OnSocketState: func(connected bool) {
			a.push(SocketStateMsg{Connected: connected})
		},
		OnReconnecting: func(attempt, max int) {
			a.push(FeedReconnectingMsg{Attempt: attempt, MaxAttempts: max})
		},
		OnExhausted: func(err error) {
			a.push(FeedExhaustedMsg{Err: err})
		},
		OnLatency: func(avg time.Duration) {
			a.push(FeedLatencyMsg{Average: avg})
		},
	})

	return a
}

// push hands a message to the update loop without wedging the caller's
// goroutine if the program is already tearing down.
func (a *App) push(msg tea.Msg) {
	select {
	case a.events <- msg:
	case <-a.done:
	}
}

// Cleanup releases background resources. Safe to call more than once; main
// runs it after the program exits.
func (a *App) Cleanup() {
	a.cleanupOnce.Do(func() {
		close(a.done)
		a.feed.Close()
		a.monitor.Close()
		a.queue.Close()
		logger.Info("application shutdown complete")
	})
}

// Init starts the connectivity monitor and the feed client.
func (a *App) Init() tea.Cmd {
	a.monitor.Start()
	a.statusBar.SetStatus(a.monitor.Status())
	a.dashboard.SetStatus(a.monitor.Status())
	a.statusBar.SetTimestamp(time.Now())
	a.feed.Start()

	return tea.Batch(listenForEvents(a.events), tickStatusBar())
}

// Update routes messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.setSize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case StatusTickMsg:
		a.statusBar.SetTimestamp(time.Time(msg))
		return a, tickStatusBar()

	case FeedSnapshotMsg:
		a.store.Replace(msg.Alerts)
		a.refreshAlerts()
		return a, listenForEvents(a.events)

	case FeedAlertMsg:
		a.store.Upsert(msg.Alert)
		if msg.Alert.IsCritical() && !msg.Alert.Read {
			sound.PlayAsync(a.player, sound.CueCriticalAlert)
		}
		a.refreshAlerts()
		return a, listenForEvents(a.events)

	case FeedNotificationMsg:
		a.queue.Add(msg.Notification)
		return a, listenForEvents(a.events)

	case SocketStateMsg:
		a.monitor.SetSocketConnected(msg.Connected)
		if msg.Connected {
			a.statusBar.SetReconnecting(false, 0, 0)
		}
		a.syncStatus()
		return a, listenForEvents(a.events)

	case FeedReconnectingMsg:
		a.statusBar.SetReconnecting(true, msg.Attempt, msg.MaxAttempts)
		return a, listenForEvents(a.events)

	case FeedExhaustedMsg:
		a.statusBar.SetReconnecting(false, 0, 0)
		a.queue.Add(notify.Notification{
			Type:      notify.TypeError,
			Message:   "Alert feed unavailable. Restart vigil to reconnect.",
			AutoClose: false,
		})
		return a, listenForEvents(a.events)

	case FeedLatencyMsg:
		a.statusBar.SetFeedLatency(msg.Average)
		return a, listenForEvents(a.events)

	case ConnectivityChangedMsg:
		a.statusBar.SetStatus(msg.Status)
		a.dashboard.SetStatus(msg.Status)
		return a, listenForEvents(a.events)

	case NotificationExpiredMsg:
		// The queue already dropped the entry; delivery alone re-renders.
		return a, listenForEvents(a.events)

	case components.DialogResolvedMsg:
		return a.handleDialogResolved(msg)
	}

	// Dialog-internal messages (auto-close ticks).
	if a.dialog != nil {
		if cmd := a.dialog.Update(msg); cmd != nil {
			return a, cmd
		}
	}

	if a.panel.IsSearching() {
		return a, a.panel.Update(msg)
	}

	return a, nil
}

// handleDialogResolved unmounts the dialog and acts on its outcome.
func (a *App) handleDialogResolved(msg components.DialogResolvedMsg) (tea.Model, tea.Cmd) {
	if a.dialog == nil || a.dialog.ID() != msg.ID {
		return a, nil
	}
	a.dialog = nil

	if msg.ID == dialogQuit && msg.Confirmed {
		return a, tea.Quit
	}
	return a, nil
}

// handleKey routes keyboard input. A modal dialog contains all keys; the
// alert panel contains its action keys while open.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.dialog != nil {
		return a.handleDialogKey(msg)
	}

	if b := a.activeBoundary(); b.Faulted() {
		return a.handleFaultedKey(msg, b)
	}

	if a.panel.IsVisible() {
		return a.handlePanelKey(msg)
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, a.openQuitDialog()

	case key.Matches(msg, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll
		return a, nil

	case key.Matches(msg, a.keys.JumpToDashboard):
		a.activeView = views.ViewDashboard
		return a, nil

	case key.Matches(msg, a.keys.JumpToOrders):
		a.activeView = views.ViewOrders
		return a, nil

	case key.Matches(msg, a.keys.ToggleAlerts):
		a.panel.Show()
		return a, nil

	case key.Matches(msg, a.keys.CloseDialog):
		if a.activeView == views.ViewOrders {
			a.orders.Clear()
		}
		return a, nil

	case key.Matches(msg, a.keys.DismissToast):
		a.dismissOldestToast()
		return a, nil
	}

	return a, nil
}

// handleDialogKey handles input while a confirmation dialog is up. Every key
// is contained here so nothing leaks into the view beneath.
func (a *App) handleDialogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.dialog.IsResolved() {
		// Exit transition in progress; input no longer changes the outcome.
		return a, nil
	}

	switch {
	case key.Matches(msg, a.keys.Confirm):
		return a, a.dialog.Confirm()
	case key.Matches(msg, a.keys.Cancel), key.Matches(msg, a.keys.CloseDialog):
		return a, a.dialog.Cancel()
	}
	return a, nil
}

// handleFaultedKey handles input while the active view's boundary shows its
// recovery view.
func (a *App) handleFaultedKey(msg tea.KeyMsg, b *components.Boundary) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Retry):
		b.Retry()
		return a, nil
	case key.Matches(msg, a.keys.JumpToDashboard):
		a.activeView = views.ViewDashboard
		return a, nil
	case key.Matches(msg, a.keys.Quit):
		return a, a.openQuitDialog()
	}
	return a, nil
}

// handlePanelKey handles input while the alert panel is open.
func (a *App) handlePanelKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.panel.IsSearching() {
		switch {
		case key.Matches(msg, a.keys.CloseDialog), key.Matches(msg, a.keys.Select):
			a.panel.StopSearch()
			return a, nil
		}
		return a, a.panel.Update(msg)
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, a.openQuitDialog()

	case key.Matches(msg, a.keys.CloseDialog), key.Matches(msg, a.keys.ToggleAlerts):
		a.panel.Hide()
		return a, nil

	case key.Matches(msg, a.keys.Up):
		a.panel.CursorUp()
		return a, nil

	case key.Matches(msg, a.keys.Down):
		a.panel.CursorDown()
		return a, nil

	case key.Matches(msg, a.keys.Select):
		a.openSelectedAlert()
		return a, nil

	case key.Matches(msg, a.keys.MarkRead):
		if alert, ok := a.panel.Selected(); ok {
			a.store.MarkRead(alert.ID)
			a.refreshAlerts()
		}
		return a, nil

	case key.Matches(msg, a.keys.DismissAlert):
		if alert, ok := a.panel.Selected(); ok {
			a.store.Dismiss(alert.ID)
			a.refreshAlerts()
		}
		return a, nil

	case key.Matches(msg, a.keys.CycleSeverity):
		a.panel.CycleSeverity()
		return a, nil

	case key.Matches(msg, a.keys.ToggleUnread):
		a.panel.ToggleUnreadOnly()
		return a, nil

	case key.Matches(msg, a.keys.Search):
		return a, a.panel.StartSearch()

	case key.Matches(msg, a.keys.DismissToast):
		a.dismissOldestToast()
		return a, nil
	}

	return a, nil
}

// openSelectedAlert runs the alert navigation sequence as one step: mark the
// alert read, pre-fill the order search, switch views, and close the panel.
func (a *App) openSelectedAlert() {
	alert, ok := a.panel.Selected()
	if !ok {
		return
	}

	// Optimistic: the read flag sticks locally regardless of what the feed
	// later says about this alert.
	a.store.MarkRead(alert.ID)

	if alert.HasOrderRef() {
		a.orders.SetSearchTerm(alert.Metadata.OrderRef)
		a.activeView = views.ViewOrders
	}

	a.panel.Hide()
	a.refreshAlerts()
	logger.Debug("alert opened", "id", alert.ID, "order_ref", alert.Metadata.OrderRef)
}

// openQuitDialog mounts the quit confirmation and plays its cue.
func (a *App) openQuitDialog() tea.Cmd {
	a.dialog = components.NewConfirmDialog(
		dialogQuit,
		"Quit vigil?",
		"The alert feed disconnects when you quit.",
		a.cfg.Alerts.DialogExitDelay,
		a.cfg.Alerts.DialogAutoClose,
	)
	a.dialog.SetWidth(a.width)
	sound.PlayAsync(a.player, sound.CueDialogOpen)
	return a.dialog.Init()
}

// dismissOldestToast removes the toast at the top of the stack.
func (a *App) dismissOldestToast() {
	items := a.queue.Active()
	if len(items) > 0 {
		a.queue.Remove(items[0].ID)
	}
}

// refreshAlerts re-projects the store into every consumer.
func (a *App) refreshAlerts() {
	list := a.store.All()
	a.panel.SetAlerts(list)
	a.dashboard.SetAlerts(list)
	a.statusBar.SetUnreadAlerts(a.store.UnreadCount())
}

// syncStatus pulls the derived status into the displays that cache it.
func (a *App) syncStatus() {
	status := a.monitor.Status()
	a.statusBar.SetStatus(status)
	a.dashboard.SetStatus(status)
}

// setSize propagates the terminal dimensions.
func (a *App) setSize(width, height int) {
	a.width = width
	a.height = height
	a.help.Width = width

	bodyHeight := height - 2
	a.dashboard.SetSize(width, bodyHeight)
	a.orders.SetSize(width, bodyHeight)
	a.panel.SetSize(width, bodyHeight)
	a.statusBar.SetSize(width)
	a.toasts.SetWidth(width)
	for _, b := range a.boundaries {
		b.SetWidth(width)
	}
	if a.dialog != nil {
		a.dialog.SetWidth(width)
	}
}

// activeBoundary returns the fault boundary wrapping the active view.
func (a *App) activeBoundary() *components.Boundary {
	return a.boundaries[a.activeView]
}

// View renders the application.
func (a *App) View() string {
	var body string
	switch {
	case a.dialog != nil:
		body = a.dialog.View()
	case a.panel.IsVisible():
		body = a.panel.View()
	default:
		body = a.activeBoundary().Render(a.renderActiveView)
	}

	sections := []string{}
	if overlay := a.toasts.View(a.queue.Active()); overlay != "" {
		sections = append(sections, lipgloss.PlaceHorizontal(a.width, lipgloss.Right, overlay))
	}
	sections = append(sections, body)

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	if a.height > 2 {
		content = lipgloss.Place(a.width, a.height-2, lipgloss.Left, lipgloss.Top, content)
	}

	footer := a.help.View(a.keys)
	return lipgloss.JoinVertical(lipgloss.Left, content, footer, a.statusBar.View())
}

// renderActiveView renders the active screen inside its fault boundary.
func (a *App) renderActiveView() string {
	switch a.activeView {
	case views.ViewOrders:
		return a.orders.View()
	default:
		return a.dashboard.View()
	}
}
