package alerts

import (
	"sync"
)

// Store holds the current alert set. The feed owns the set's contents; the
// UI only reads it and flags alerts read or dismissed. Safe for concurrent
// use from the feed goroutine and the UI loop.
type Store struct {
	mu     sync.RWMutex
	alerts map[string]*Alert
	order  []string
}

// NewStore creates an empty alert store.
func NewStore() *Store {
	return &Store{
		alerts: make(map[string]*Alert),
	}
}

// Replace swaps the active set for a feed snapshot. Read flags already set
// locally are preserved for alerts that survive the swap, since the feed is
// the source of truth for existence but not for local triage state.
func (s *Store) Replace(incoming []Alert) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.alerts
	s.alerts = make(map[string]*Alert, len(incoming))
	s.order = s.order[:0]
	for i := range incoming {
		a := incoming[i]
		if old, ok := prev[a.ID]; ok && old.Read {
			a.Read = true
		}
		if _, dup := s.alerts[a.ID]; dup {
			continue
		}
		s.alerts[a.ID] = &a
		s.order = append(s.order, a.ID)
	}
}

// Upsert inserts or updates a single alert. An update keeps the local read
// flag unless the incoming alert is explicitly marked read.
func (s *Store) Upsert(a Alert) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.alerts[a.ID]; ok {
		a.Read = a.Read || old.Read
		s.alerts[a.ID] = &a
		return
	}
	s.alerts[a.ID] = &a
	s.order = append(s.order, a.ID)
}

// MarkRead flags an alert as read. Idempotent: marking an already-read or
// unknown id reports false and changes nothing.
func (s *Store) MarkRead(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.alerts[id]
	if !ok || a.Read {
		return false
	}
	a.Read = true
	return true
}

// Dismiss removes an alert from the active set. Idempotent: dismissing an
// unknown id is a no-op reporting false.
func (s *Store) Dismiss(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.alerts[id]; !ok {
		return false
	}
	delete(s.alerts, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Get returns a copy of the alert with the given id.
func (s *Store) Get(id string) (Alert, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.alerts[id]
	if !ok {
		return Alert{}, false
	}
	return *a, true
}

// All returns a copy of the active set in insertion order.
func (s *Store) All() []Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Alert, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.alerts[id])
	}
	return out
}

// Len returns the number of active alerts.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.alerts)
}

// UnreadCount returns the number of unread alerts.
func (s *Store) UnreadCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, a := range s.alerts {
		if !a.Read {
			n++
		}
	}
	return n
}
