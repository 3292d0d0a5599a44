package notify

import (
	"sync"
	"time"

	"github.com/vigilops/vigil/internal/logger"
)

// Queue holds the active notifications in insertion order. Every auto-close
// notification owns an independent countdown timer; expiry and manual
// dismissal share the one removal path, so racing the two is safe and a
// second removal of the same id is a no-op.
type Queue struct {
	mu sync.Mutex

	entries map[string]*entry
	order   []string

	defaultDuration time.Duration

	// onExpire is invoked after a timer-driven removal, outside the lock.
	// The UI uses it to trigger a re-render from the timer goroutine.
	onExpire func(id string)

	closed bool
}

type entry struct {
	notification Notification
	timer        *time.Timer
}

// NewQueue creates a queue. defaultDuration applies to notifications pushed
// without one; zero falls back to DefaultDuration. onExpire may be nil.
func NewQueue(defaultDuration time.Duration, onExpire func(id string)) *Queue {
	if defaultDuration <= 0 {
		defaultDuration = DefaultDuration
	}
	return &Queue{
		entries:         make(map[string]*entry),
		defaultDuration: defaultDuration,
		onExpire:        onExpire,
	}
}

// Add normalizes and enqueues a notification, arming its expiry timer when
// AutoClose is set. Adding an id that is already active replaces the message
// and restarts its countdown. Returns the normalized notification.
func (q *Queue) Add(n Notification) Notification {
	n = n.normalize(q.defaultDuration)

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return n
	}

	if old, ok := q.entries[n.ID]; ok {
		if old.timer != nil {
			old.timer.Stop()
		}
	} else {
		q.order = append(q.order, n.ID)
	}

	e := &entry{notification: n}
	if n.AutoClose {
		id := n.ID
		e.timer = time.AfterFunc(n.Duration, func() {
			q.expire(id)
		})
	}
	q.entries[n.ID] = e

	logger.Debug("notification added", "id", n.ID, "type", n.Type, "auto_close", n.AutoClose)
	return n
}

// expire is the timer path into Remove.
func (q *Queue) expire(id string) {
	if !q.Remove(id) {
		// Lost the race against a manual dismissal; nothing to do.
		return
	}
	if q.onExpire != nil {
		q.onExpire(id)
	}
}

// Remove dismisses a notification and cancels any pending timer. Unknown
// ids are a no-op reporting false: the queue is externally driven and races
// between expiry and manual dismissal are expected.
func (q *Queue) Remove(id string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	e, ok := q.entries[id]
	if !ok {
		return false
	}
	if e.timer != nil {
		e.timer.Stop()
	}
	delete(q.entries, id)
	for i, oid := range q.order {
		if oid == id {
			q.order = append(q.order[:i], q.order[i+1:]...)
			break
		}
	}
	return true
}

// Active returns the live notifications in insertion order.
func (q *Queue) Active() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]Notification, 0, len(q.order))
	for _, id := range q.order {
		out = append(out, q.entries[id].notification)
	}
	return out
}

// Len returns the number of active notifications.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

// Close cancels every pending timer and drops all entries. Further Adds are
// ignored.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.closed = true
	for _, e := range q.entries {
		if e.timer != nil {
			e.timer.Stop()
		}
	}
	q.entries = make(map[string]*entry)
	q.order = nil
}
