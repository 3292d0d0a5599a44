package connectivity

import (
	"sync"

	"github.com/vigilops/vigil/internal/logger"
)

// NetworkSource supplies network reachability. Implementations must support
// a synchronous read of the current state and edge-triggered change
// notification with an explicit cancel, so subscribers can guarantee release
// on every teardown path.
type NetworkSource interface {
	// Online returns the current reachability synchronously.
	Online() bool

	// Subscribe registers a change callback and returns a cancel function.
	// The callback may be invoked from the source's own goroutine.
	Subscribe(fn func(online bool)) (cancel func())
}

// Monitor tracks the two raw connectivity inputs and notifies when the
// derived status changes. The derived status is always recomputed from the
// inputs, never cached.
type Monitor struct {
	mu sync.Mutex

	networkOnline   bool
	socketConnected bool

	source      NetworkSource
	unsubscribe func()
	onChange    func(Status)
	started     bool
}

// NewMonitor creates a monitor backed by the given network source. onChange
// is invoked with the new derived status whenever it differs from the
// previous one; it may be called from the source's goroutine.
func NewMonitor(source NetworkSource, onChange func(Status)) *Monitor {
	return &Monitor{
		source:   source,
		onChange: onChange,
		// No socket signal yet means not connected: fail safe to
		// degraded rather than nominal.
		socketConnected: false,
	}
}

// Start reads the initial network state synchronously and subscribes to
// changes. Calling Start twice is a no-op.
func (m *Monitor) Start() {
	m.mu.Lock()
	if m.started {
		m.mu.Unlock()
		return
	}
	m.started = true
	online := m.source.Online()
	m.networkOnline = online
	m.mu.Unlock()

	// Subscribe outside the lock: the source may deliver the callback
	// synchronously, and setNetworkOnline takes the same mutex.
	unsub := m.source.Subscribe(m.setNetworkOnline)

	m.mu.Lock()
	if !m.started {
		// Close won the race; release the subscription ourselves.
		m.mu.Unlock()
		unsub()
		return
	}
	m.unsubscribe = unsub
	m.mu.Unlock()

	logger.Debug("connectivity monitor started", "network_online", online)
}

// Close releases the network subscription. Safe to call more than once and
// before Start.
func (m *Monitor) Close() {
	m.mu.Lock()
	unsub := m.unsubscribe
	m.unsubscribe = nil
	m.started = false
	m.mu.Unlock()

	if unsub != nil {
		unsub()
	}
}

// SetSocketConnected records the realtime transport's health signal.
func (m *Monitor) SetSocketConnected(connected bool) {
	m.mu.Lock()
	before := Derive(m.networkOnline, m.socketConnected)
	m.socketConnected = connected
	after := Derive(m.networkOnline, m.socketConnected)
	m.mu.Unlock()

	m.notify(before, after)
}

func (m *Monitor) setNetworkOnline(online bool) {
	m.mu.Lock()
	before := Derive(m.networkOnline, m.socketConnected)
	m.networkOnline = online
	after := Derive(m.networkOnline, m.socketConnected)
	m.mu.Unlock()

	m.notify(before, after)
}

func (m *Monitor) notify(before, after Status) {
	if before == after || m.onChange == nil {
		return
	}
	logger.Info("connectivity status changed", "from", before, "to", after)
	m.onChange(after)
}

// Status returns the current derived status.
func (m *Monitor) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Derive(m.networkOnline, m.socketConnected)
}

// NetworkOnline returns the raw network signal.
func (m *Monitor) NetworkOnline() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.networkOnline
}

// SocketConnected returns the raw socket signal.
func (m *Monitor) SocketConnected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.socketConnected
}
