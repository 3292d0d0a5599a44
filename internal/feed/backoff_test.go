package feed

import (
	"testing"
	"time"
)

func TestBackoffDelaysDoubleAndCap(t *testing.T) {
	r := NewReconnectState(10)

	want := []time.Duration{
		2 * time.Second,
		4 * time.Second,
		8 * time.Second,
		16 * time.Second,
		30 * time.Second,
		30 * time.Second,
	}

	for i, w := range want {
		r.NextAttempt()
		if r.NextDelay != w {
			t.Errorf("attempt %d: expected delay %v, got %v", i+1, w, r.NextDelay)
		}
	}
}

func TestBackoffBudget(t *testing.T) {
	r := NewReconnectState(3)

	for i := 0; i < 3; i++ {
		if !r.NextAttempt() {
			t.Fatalf("attempt %d should be within budget", i+1)
		}
	}
	if r.NextAttempt() {
		t.Error("fourth attempt should exceed a budget of 3")
	}
}

func TestBackoffResetAfterSuccess(t *testing.T) {
	r := NewReconnectState(5)
	r.NextAttempt()
	r.NextAttempt()

	r.Reset()

	if r.Attempt != 0 || r.NextDelay != time.Second {
		t.Errorf("reset should restore initial state, got attempt=%d delay=%v", r.Attempt, r.NextDelay)
	}
}
