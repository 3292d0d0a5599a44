package feed

import (
	"time"

	"github.com/vigilops/vigil/internal/logger"
)

// ReconnectState tracks automatic reconnection attempts against the feed.
type ReconnectState struct {
	Attempt     int           // Current attempt number (1-based)
	LastAttempt time.Time     // Timestamp of last attempt
	NextDelay   time.Duration // Delay until next attempt
	MaxAttempts int           // Maximum attempts before giving up
}

// NewReconnectState creates a reconnect state with the given attempt budget.
func NewReconnectState(maxAttempts int) *ReconnectState {
	return &ReconnectState{
		MaxAttempts: maxAttempts,
		NextDelay:   time.Second,
	}
}

// CalculateNextDelay returns the exponential backoff delay for the current
// attempt: 1s, 2s, 4s, 8s, 16s, capped at 30s.
func (r *ReconnectState) CalculateNextDelay() time.Duration {
	delay := time.Duration(1<<uint(r.Attempt)) * time.Second
	if delay > 30*time.Second {
		delay = 30 * time.Second
	}
	return delay
}

// NextAttempt advances to the next attempt and reports whether it is within
// budget.
func (r *ReconnectState) NextAttempt() bool {
	r.Attempt++
	r.LastAttempt = time.Now()
	r.NextDelay = r.CalculateNextDelay()

	logger.Debug("preparing feed reconnection attempt",
		"attempt", r.Attempt,
		"max_attempts", r.MaxAttempts,
		"next_delay", r.NextDelay,
	)

	return r.Attempt <= r.MaxAttempts
}

// Reset clears the state after a successful connection.
func (r *ReconnectState) Reset() {
	r.Attempt = 0
	r.NextDelay = time.Second
}
