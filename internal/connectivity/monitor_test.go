package connectivity

import (
	"testing"
)

// fakeSource implements NetworkSource for testing.
type fakeSource struct {
	online      bool
	fn          func(bool)
	subscribed  int
	cancelCalls int
}

func (f *fakeSource) Online() bool {
	return f.online
}

func (f *fakeSource) Subscribe(fn func(online bool)) (cancel func()) {
	f.fn = fn
	f.subscribed++
	return func() {
		f.cancelCalls++
		f.fn = nil
	}
}

func (f *fakeSource) flip(online bool) {
	f.online = online
	if f.fn != nil {
		f.fn(online)
	}
}

func TestDeriveTruthTable(t *testing.T) {
	cases := []struct {
		network bool
		socket  bool
		want    Status
	}{
		{false, false, StatusOffline},
		{false, true, StatusOffline},
		{true, false, StatusDegraded},
		{true, true, StatusNominal},
	}

	for _, tc := range cases {
		if got := Derive(tc.network, tc.socket); got != tc.want {
			t.Errorf("Derive(%v, %v) = %s, want %s", tc.network, tc.socket, got, tc.want)
		}
	}
}

func TestMonitorInitialStateReadSynchronously(t *testing.T) {
	src := &fakeSource{online: false}
	m := NewMonitor(src, nil)
	m.Start()
	defer m.Close()

	if m.Status() != StatusOffline {
		t.Errorf("initial status should reflect the source, got %s", m.Status())
	}
}

func TestMonitorNoSocketSignalMeansDegraded(t *testing.T) {
	src := &fakeSource{online: true}
	m := NewMonitor(src, nil)
	m.Start()
	defer m.Close()

	// Socket never reported: fail safe to degraded, not nominal.
	if m.Status() != StatusDegraded {
		t.Errorf("expected degraded before any socket signal, got %s", m.Status())
	}
}

func TestMonitorDerivesOnEveryInputChange(t *testing.T) {
	src := &fakeSource{online: true}
	var changes []Status
	m := NewMonitor(src, func(s Status) { changes = append(changes, s) })
	m.Start()
	defer m.Close()

	m.SetSocketConnected(true)
	src.flip(false)
	src.flip(true)

	want := []Status{StatusNominal, StatusOffline, StatusNominal}
	if len(changes) != len(want) {
		t.Fatalf("expected %d changes, got %d: %v", len(want), len(changes), changes)
	}
	for i := range want {
		if changes[i] != want[i] {
			t.Errorf("change %d: expected %s, got %s", i, want[i], changes[i])
		}
	}
}

func TestMonitorNoNotifyWithoutStatusChange(t *testing.T) {
	src := &fakeSource{online: true}
	calls := 0
	m := NewMonitor(src, func(Status) { calls++ })
	m.Start()
	defer m.Close()

	// Already degraded; repeating the same inputs must stay silent.
	m.SetSocketConnected(false)
	m.SetSocketConnected(false)

	if calls != 0 {
		t.Errorf("expected no change notifications, got %d", calls)
	}
}

func TestMonitorCloseReleasesSubscription(t *testing.T) {
	src := &fakeSource{online: true}
	m := NewMonitor(src, nil)
	m.Start()
	m.Close()

	if src.cancelCalls != 1 {
		t.Errorf("expected 1 cancel call, got %d", src.cancelCalls)
	}

	// Double close must not cancel twice.
	m.Close()
	if src.cancelCalls != 1 {
		t.Errorf("double close should be a no-op, got %d cancels", src.cancelCalls)
	}
}

// racingSource closes the monitor from inside Subscribe, standing in for a
// teardown that lands while Start is still registering.
type racingSource struct {
	fakeSource
	m *Monitor
}

func (r *racingSource) Subscribe(fn func(online bool)) (cancel func()) {
	cancelFn := r.fakeSource.Subscribe(fn)
	r.m.Close()
	return cancelFn
}

func TestMonitorCloseDuringStartReleasesSubscription(t *testing.T) {
	src := &racingSource{fakeSource: fakeSource{online: true}}
	m := NewMonitor(src, nil)
	src.m = m

	m.Start()

	if src.cancelCalls != 1 {
		t.Errorf("a close landing mid-start must still release the subscription, got %d cancels", src.cancelCalls)
	}
	m.Close()
	if src.cancelCalls != 1 {
		t.Errorf("later close must not cancel again, got %d cancels", src.cancelCalls)
	}
}

func TestMonitorOfflineRegardlessOfSocket(t *testing.T) {
	src := &fakeSource{online: false}
	m := NewMonitor(src, nil)
	m.Start()
	defer m.Close()

	m.SetSocketConnected(true)
	if m.Status() != StatusOffline {
		t.Errorf("offline network must dominate socket state, got %s", m.Status())
	}
}
