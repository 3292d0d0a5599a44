package components

import (
	"strings"
	"testing"
)

func boom() string {
	panic("render exploded")
}

func TestBoundaryContainsPanic(t *testing.T) {
	b := NewBoundary("dashboard", 3)

	out := b.Render(boom)
	if out == "" {
		t.Fatal("recovery view should replace the faulted subtree")
	}
	if !b.Faulted() {
		t.Error("boundary should be faulted")
	}
	if b.FaultCount() != 1 {
		t.Errorf("expected fault count 1, got %d", b.FaultCount())
	}
	if !strings.Contains(out, "Something went wrong") {
		t.Error("recovery view should carry the generic message")
	}
}

func TestBoundaryShortCircuitsWhileFaulted(t *testing.T) {
	b := NewBoundary("dashboard", 3)
	b.Render(boom)

	calls := 0
	b.Render(func() string {
		calls++
		return "ok"
	})
	if calls != 0 {
		t.Error("faulted boundary must not re-attempt the subtree without Retry")
	}
}

func TestBoundaryRetryReattemptsSubtree(t *testing.T) {
	b := NewBoundary("dashboard", 3)
	b.Render(boom)
	b.Retry()

	if b.Faulted() {
		t.Error("retry should clear the faulted state")
	}
	out := b.Render(func() string { return "healthy again" })
	if out != "healthy again" {
		t.Errorf("expected original subtree after retry, got %q", out)
	}
}

func TestBoundaryEscalatesPastThreshold(t *testing.T) {
	b := NewBoundary("dashboard", 3)

	// Four successive faults, each followed by an ordinary retry.
	for i := 0; i < 4; i++ {
		b.Render(boom)
		if i < 3 {
			if b.Escalated() {
				t.Fatalf("escalation too early at fault %d", i+1)
			}
			b.Retry()
		}
	}

	if !b.Escalated() {
		t.Fatal("fourth fault should pass a threshold of 3")
	}
	if !strings.Contains(b.Render(boom), "contact support") {
		t.Error("escalated recovery view should surface the support notice")
	}
}

func TestBoundaryRetryFromEscalationResetsWindow(t *testing.T) {
	b := NewBoundary("dashboard", 3)
	for i := 0; i < 4; i++ {
		b.Render(boom)
		b.Retry()
	}

	// The retry from the escalated state opened a fresh window.
	if b.FaultCount() != 0 {
		t.Errorf("expected fault count reset to 0, got %d", b.FaultCount())
	}
	b.Render(boom)
	if b.Escalated() {
		t.Error("a single fault in the new window must not escalate")
	}
}

func TestBoundaryPassesThroughHealthyRender(t *testing.T) {
	b := NewBoundary("dashboard", 3)
	if out := b.Render(func() string { return "fine" }); out != "fine" {
		t.Errorf("healthy subtree should render untouched, got %q", out)
	}
	if b.Faulted() || b.FaultCount() != 0 {
		t.Error("healthy render must not touch fault state")
	}
}
