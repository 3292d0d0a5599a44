// Package alerts holds the alert model, the externally fed alert store, and
// the pure filter/rank projection the alert panel renders from.
package alerts

import (
	"strings"
	"time"
)

// Severity is the alert severity level.
type Severity string

const (
	// SeverityCritical is the highest severity.
	SeverityCritical Severity = "critical"
	// SeverityWarning sits between critical and info.
	SeverityWarning Severity = "warning"
	// SeverityInfo is the lowest severity.
	SeverityInfo Severity = "info"
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	return string(s)
}

// Rank returns the numeric ordering weight: critical=3, warning=2, info=1.
// Unrecognized severities rank below info.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 3
	case SeverityWarning:
		return 2
	case SeverityInfo:
		return 1
	default:
		return 0
	}
}

// IsValid returns true if the severity is a recognized level.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityCritical, SeverityWarning, SeverityInfo:
		return true
	default:
		return false
	}
}

// Metadata carries the business-record linkage of an alert. Recognized keys
// are typed fields; anything else the feed sends lands in Extra so unknown
// keys survive a round trip without special handling.
type Metadata struct {
	OrderRef string `json:"orderRef,omitempty"`
	Supplier string `json:"supplier,omitempty"`
	Product  string `json:"product,omitempty"`
	Week     string `json:"week,omitempty"`
	Status   string `json:"status,omitempty"`
	FinalPOD string `json:"finalPod,omitempty"`

	Extra map[string]string `json:"extra,omitempty"`
}

// DisplayStatus returns the status with underscore tokens replaced by spaces.
func (m Metadata) DisplayStatus() string {
	return strings.ReplaceAll(m.Status, "_", " ")
}

// IsZero returns true if no metadata field is set.
func (m Metadata) IsZero() bool {
	return m.OrderRef == "" && m.Supplier == "" && m.Product == "" &&
		m.Week == "" && m.Status == "" && m.FinalPOD == "" && len(m.Extra) == 0
}

// Alert is a discrete operational event surfaced to the operator.
//
// Alerts are created and retired by the feed; this package only reads them
// and flags Read. ID is unique within the active set and stable across
// re-renders.
type Alert struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Severity    Severity  `json:"severity"`
	Read        bool      `json:"read"`
	Timestamp   time.Time `json:"timestamp,omitempty"`
	Metadata    Metadata  `json:"metadata,omitempty"`
}

// IsCritical returns true if the alert severity is critical.
func (a *Alert) IsCritical() bool {
	return a.Severity == SeverityCritical
}

// HasOrderRef returns true if the alert links to an order record.
func (a *Alert) HasOrderRef() bool {
	return a.Metadata.OrderRef != ""
}

// sortKey returns the timestamp as epoch milliseconds. The zero time maps to
// 0 so alerts without a timestamp sort last within their severity tier.
func (a *Alert) sortKey() int64 {
	if a.Timestamp.IsZero() {
		return 0
	}
	return a.Timestamp.UnixMilli()
}
