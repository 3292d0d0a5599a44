package alerts

import (
	"sort"
	"strings"
)

// SeverityFilter selects which severities pass the filter.
type SeverityFilter string

const (
	// FilterAll passes every severity.
	FilterAll SeverityFilter = "all"
	// FilterCritical passes only critical alerts.
	FilterCritical SeverityFilter = "critical"
	// FilterWarning passes only warning alerts.
	FilterWarning SeverityFilter = "warning"
	// FilterInfo passes only info alerts.
	FilterInfo SeverityFilter = "info"
)

// String returns the string representation of the filter.
func (f SeverityFilter) String() string {
	return string(f)
}

// Next cycles to the following filter value, wrapping back to all.
func (f SeverityFilter) Next() SeverityFilter {
	switch f {
	case FilterAll:
		return FilterCritical
	case FilterCritical:
		return FilterWarning
	case FilterWarning:
		return FilterInfo
	default:
		return FilterAll
	}
}

// Filter is the alert panel's filter configuration.
type Filter struct {
	// Severity passes only the matching severity; FilterAll disables it.
	Severity SeverityFilter

	// UnreadOnly passes only unread alerts when set.
	UnreadOnly bool

	// Search is matched case-insensitively against title and description.
	// Whitespace-only search text disables the predicate.
	Search string
}

// DefaultFilter returns the filter configuration that passes everything.
func DefaultFilter() Filter {
	return Filter{Severity: FilterAll}
}

// Matches reports whether the alert passes every active predicate.
func (f Filter) Matches(a *Alert) bool {
	if f.Severity != FilterAll && string(a.Severity) != string(f.Severity) {
		return false
	}
	if f.UnreadOnly && a.Read {
		return false
	}
	if needle := strings.ToLower(strings.TrimSpace(f.Search)); needle != "" {
		haystack := strings.ToLower(a.Title + " " + a.Description)
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}

// Rank filters and orders alerts for display: every alert passing all active
// predicates, sorted by descending severity rank, then descending timestamp
// (missing timestamps sort last within a tier). The sort is stable for equal
// keys and the input slice is never mutated.
func Rank(alerts []Alert, f Filter) []Alert {
	out := make([]Alert, 0, len(alerts))
	for i := range alerts {
		if f.Matches(&alerts[i]) {
			out = append(out, alerts[i])
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := out[i].Severity.Rank(), out[j].Severity.Rank()
		if ri != rj {
			return ri > rj
		}
		return out[i].sortKey() > out[j].sortKey()
	})

	return out
}
