// Package connectivity reconciles two independent health signals, network
// reachability and the realtime feed socket, into one displayed status.
package connectivity

// Status is the reconciled connectivity state.
type Status string

const (
	// StatusNominal means both network and feed socket are healthy.
	StatusNominal Status = "nominal"
	// StatusDegraded means the network is reachable but the realtime
	// socket is down, so data falls back to periodic refresh.
	StatusDegraded Status = "degraded-polling"
	// StatusOffline means the network itself is unreachable.
	StatusOffline Status = "offline"
)

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// Label returns the status bar caption for the status.
func (s Status) Label() string {
	switch s {
	case StatusNominal:
		return "Live"
	case StatusDegraded:
		return "Polling"
	case StatusOffline:
		return "Offline"
	default:
		return "Unknown"
	}
}

// Derive computes the reconciled status from the two raw signals. The result
// is never stored; callers recompute it whenever either input changes so the
// displayed value cannot drift.
func Derive(networkOnline, socketConnected bool) Status {
	if !networkOnline {
		return StatusOffline
	}
	if !socketConnected {
		return StatusDegraded
	}
	return StatusNominal
}
