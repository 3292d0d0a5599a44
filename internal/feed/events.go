// Package feed owns the realtime transport: a websocket client that
// delivers alert and notification events to the UI and reports the socket's
// boolean health signal on every transition.
package feed

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/vigilops/vigil/internal/alerts"
	"github.com/vigilops/vigil/internal/notify"
)

// Event kinds on the wire.
const (
	EventSnapshot     = "snapshot"
	EventAlert        = "alert"
	EventNotification = "notification"
	EventHeartbeat    = "heartbeat"
)

// Envelope is the outer wire frame. Exactly one payload field is set,
// matching Type.
type Envelope struct {
	Type string `json:"type"`

	Alerts       []wireAlert       `json:"alerts,omitempty"`
	Alert        *wireAlert        `json:"alert,omitempty"`
	Notification *wireNotification `json:"notification,omitempty"`

	// Sent is the server timestamp of a heartbeat frame, used for the
	// round-trip latency estimate.
	Sent int64 `json:"sent,omitempty"`
}

// wireAlert is the feed's alert shape. Timestamps travel as epoch
// milliseconds; zero or absent means unknown and sorts last in the panel.
type wireAlert struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Severity    string            `json:"severity"`
	Read        bool              `json:"read,omitempty"`
	Timestamp   int64             `json:"timestamp,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// wireNotification is the feed's notification shape. AutoClose is a pointer
// so "absent" is distinguishable from an explicit false; absent takes the
// configured default. DurationMS of zero takes the configured default.
type wireNotification struct {
	ID         string `json:"id,omitempty"`
	Type       string `json:"type"`
	Message    string `json:"message"`
	AutoClose  *bool  `json:"autoClose,omitempty"`
	DurationMS int64  `json:"duration,omitempty"`
}

// toAlert converts a wire alert to the domain model. Recognized metadata
// keys map to typed fields; the rest land in Extra.
func (w wireAlert) toAlert() alerts.Alert {
	a := alerts.Alert{
		ID:          w.ID,
		Title:       w.Title,
		Description: w.Description,
		Severity:    alerts.Severity(w.Severity),
		Read:        w.Read,
	}
	if w.Timestamp > 0 {
		a.Timestamp = time.UnixMilli(w.Timestamp)
	}
	for k, v := range w.Metadata {
		switch k {
		case "orderRef":
			a.Metadata.OrderRef = v
		case "supplier":
			a.Metadata.Supplier = v
		case "product":
			a.Metadata.Product = v
		case "week":
			a.Metadata.Week = v
		case "status":
			a.Metadata.Status = v
		case "finalPod":
			a.Metadata.FinalPOD = v
		default:
			if a.Metadata.Extra == nil {
				a.Metadata.Extra = make(map[string]string)
			}
			a.Metadata.Extra[k] = v
		}
	}
	return a
}

// toNotification converts a wire notification, resolving the autoClose
// pointer: absent takes defaultAutoClose, explicit values win.
func (w wireNotification) toNotification(defaultAutoClose bool) notify.Notification {
	autoClose := defaultAutoClose
	if w.AutoClose != nil {
		autoClose = *w.AutoClose
	}
	return notify.Notification{
		ID:        w.ID,
		Type:      notify.Type(w.Type),
		Message:   w.Message,
		AutoClose: autoClose,
		Duration:  time.Duration(w.DurationMS) * time.Millisecond,
	}
}

// Decode parses a raw frame into an Envelope.
func Decode(data []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("malformed feed frame: %w", err)
	}
	if env.Type == "" {
		return nil, fmt.Errorf("feed frame missing type")
	}
	return &env, nil
}
