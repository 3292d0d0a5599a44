// Package notify manages the lifecycle of ephemeral toast notifications:
// creation with defaults, independent auto-expiry timers, and idempotent
// removal shared between timer expiry and manual dismissal.
package notify

import (
	"time"

	"github.com/google/uuid"
)

// Type is the notification kind, used only for presentation.
type Type string

const (
	TypeSuccess Type = "success"
	TypeError   Type = "error"
	TypeWarning Type = "warning"
	TypeInfo    Type = "info"
)

// String returns the string representation of the type.
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the type is recognized.
func (t Type) IsValid() bool {
	switch t {
	case TypeSuccess, TypeError, TypeWarning, TypeInfo:
		return true
	default:
		return false
	}
}

// DefaultDuration is the auto-close countdown applied when the host omits
// one and no queue-level default overrides it.
const DefaultDuration = 5 * time.Second

// Notification is a short-lived UI message pushed by the host. Unlike alerts
// it carries no severity ranking and no persistence.
type Notification struct {
	ID        string        `json:"id"`
	Type      Type          `json:"type"`
	Message   string        `json:"message"`
	AutoClose bool          `json:"autoClose"`
	Duration  time.Duration `json:"duration"`
}

// normalize fills omitted fields: an empty ID gets a generated one, an
// unknown type renders as info, a non-positive duration takes the default.
// AutoClose is a plain bool here; hosts that need "unset means true" resolve
// that before calling Add (the feed decoder does).
func (n Notification) normalize(defaultDuration time.Duration) Notification {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if !n.Type.IsValid() {
		n.Type = TypeInfo
	}
	if n.Duration <= 0 {
		n.Duration = defaultDuration
	}
	return n
}
