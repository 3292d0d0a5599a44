package components

import (
	"testing"
	"time"
)

func TestDialogResolvesExactlyOnce(t *testing.T) {
	d := NewConfirmDialog("quit", "Quit", "Really quit?", 50*time.Millisecond, 0)

	cmd := d.Confirm()
	if cmd == nil {
		t.Fatal("first confirm should schedule the resolution")
	}
	if !d.IsClosing() || !d.IsResolved() {
		t.Error("confirm should enter the closing state immediately")
	}

	if d.Confirm() != nil {
		t.Error("second confirm must be a no-op")
	}
	if d.Cancel() != nil {
		t.Error("cancel after confirm must be a no-op")
	}
}

func TestDialogResolutionDeferredByExitDelay(t *testing.T) {
	exitDelay := 60 * time.Millisecond
	d := NewConfirmDialog("quit", "Quit", "Really quit?", exitDelay, 0)

	cmd := d.Confirm()

	// tea.Tick commands block until the deadline; executing the command
	// here measures the deferral directly.
	start := time.Now()
	msg := cmd()
	elapsed := time.Since(start)

	resolved, ok := msg.(DialogResolvedMsg)
	if !ok {
		t.Fatalf("expected DialogResolvedMsg, got %T", msg)
	}
	if !resolved.Confirmed {
		t.Error("confirm should resolve confirmed")
	}
	if resolved.ID != "quit" {
		t.Errorf("resolution should carry the dialog id, got %q", resolved.ID)
	}
	if elapsed < exitDelay-5*time.Millisecond {
		t.Errorf("resolution fired before the exit delay: %v < %v", elapsed, exitDelay)
	}
}

func TestDialogCancelResolvesUnconfirmed(t *testing.T) {
	d := NewConfirmDialog("dismiss", "Dismiss alert", "Remove it?", 20*time.Millisecond, 0)

	msg := d.Cancel()()
	resolved, ok := msg.(DialogResolvedMsg)
	if !ok {
		t.Fatalf("expected DialogResolvedMsg, got %T", msg)
	}
	if resolved.Confirmed {
		t.Error("cancel should resolve unconfirmed")
	}
}

func TestDialogAutoCloseForcesCancel(t *testing.T) {
	d := NewConfirmDialog("quit", "Quit", "Really quit?", 20*time.Millisecond, 40*time.Millisecond)

	tick := d.Init()
	if tick == nil {
		t.Fatal("auto-close should arm a countdown")
	}

	// Let the countdown elapse, then deliver the tick as the runtime would.
	autoMsg := tick()
	cmd := d.Update(autoMsg)
	if cmd == nil {
		t.Fatal("in-date auto-close tick should trigger the cancel path")
	}

	msg := cmd()
	resolved, ok := msg.(DialogResolvedMsg)
	if !ok {
		t.Fatalf("expected DialogResolvedMsg, got %T", msg)
	}
	if resolved.Confirmed {
		t.Error("auto-close must resolve through the cancel path")
	}
}

func TestDialogUserResolutionBeatsAutoClose(t *testing.T) {
	d := NewConfirmDialog("quit", "Quit", "Really quit?", 20*time.Millisecond, 30*time.Millisecond)

	tick := d.Init()
	// User confirms before the countdown fires.
	if d.Confirm() == nil {
		t.Fatal("confirm should schedule the resolution")
	}

	// The countdown tick arrives late, carrying a stale generation.
	autoMsg := tick()
	if cmd := d.Update(autoMsg); cmd != nil {
		t.Error("stale auto-close tick must be ignored: no duplicate resolution")
	}
}

func TestDialogAutoCloseDisabledByDefault(t *testing.T) {
	d := NewConfirmDialog("quit", "Quit", "Really quit?", 20*time.Millisecond, 0)
	if d.Init() != nil {
		t.Error("zero auto-close should arm nothing")
	}
}
