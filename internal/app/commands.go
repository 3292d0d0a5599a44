package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// tickStatusBar schedules the next status bar clock update.
func tickStatusBar() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return StatusTickMsg(t)
	})
}

// listenForEvents waits for the next message pushed by a background
// goroutine (feed callbacks, connectivity changes, notification expiry) and
// delivers it into the update loop. The returned command re-arms itself from
// Update after every delivery.
func listenForEvents(ch <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}
