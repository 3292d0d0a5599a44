package app

import (
	"time"

	"github.com/vigilops/vigil/internal/alerts"
	"github.com/vigilops/vigil/internal/connectivity"
	"github.com/vigilops/vigil/internal/notify"
)

// FeedSnapshotMsg carries a full alert snapshot from the feed.
type FeedSnapshotMsg struct {
	Alerts []alerts.Alert
}

// FeedAlertMsg carries a single incremental alert from the feed.
type FeedAlertMsg struct {
	Alert alerts.Alert
}

// FeedNotificationMsg carries a server-pushed notification.
type FeedNotificationMsg struct {
	Notification notify.Notification
}

// SocketStateMsg reports a realtime transport transition.
type SocketStateMsg struct {
	Connected bool
}

// FeedReconnectingMsg reports reconnection progress.
type FeedReconnectingMsg struct {
	Attempt     int
	MaxAttempts int
}

// FeedExhaustedMsg reports that the feed gave up reconnecting.
type FeedExhaustedMsg struct {
	Err error
}

// FeedLatencyMsg carries the smoothed heartbeat latency.
type FeedLatencyMsg struct {
	Average time.Duration
}

// ConnectivityChangedMsg reports a change in the derived connectivity status.
type ConnectivityChangedMsg struct {
	Status connectivity.Status
}

// NotificationExpiredMsg reports a timer-driven notification removal. The
// queue has already dropped the entry; the message exists so the overlay
// re-renders without the expired toast.
type NotificationExpiredMsg struct {
	ID string
}

// StatusTickMsg drives the status bar clock.
type StatusTickMsg time.Time
