package feed

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/VividCortex/ewma"
	"github.com/gorilla/websocket"

	"github.com/vigilops/vigil/internal/alerts"
	"github.com/vigilops/vigil/internal/logger"
	"github.com/vigilops/vigil/internal/notify"
)

// Callbacks receive decoded feed traffic and transport transitions. All
// callbacks are invoked from the client's goroutine; nil callbacks are
// skipped. OnSocketState fires on every transport transition, including each
// reconnection attempt's failure, so the UI's connected signal never goes
// stale.
type Callbacks struct {
	OnSnapshot     func([]alerts.Alert)
	OnAlert        func(alerts.Alert)
	OnNotification func(notify.Notification)
	OnSocketState  func(connected bool)
	OnReconnecting func(attempt, maxAttempts int)
	OnExhausted    func(err error)
	OnLatency      func(avg time.Duration)
}

// Client maintains the websocket connection to the alert feed.
type Client struct {
	url       string
	callbacks Callbacks
	reconnect *ReconnectState

	// defaultAutoClose resolves notifications that arrive without an
	// explicit autoClose flag.
	defaultAutoClose bool

	ctx    context.Context
	cancel context.CancelFunc

	mu   sync.Mutex
	conn *websocket.Conn
	wg   sync.WaitGroup

	latency ewma.MovingAverage
	log     *slog.Logger
}

// NewClient creates a feed client. It does not connect until Start.
// defaultAutoClose applies to notifications whose frames omit the flag.
func NewClient(url string, maxReconnectAttempts int, defaultAutoClose bool, cb Callbacks) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	return &Client{
		url:              url,
		callbacks:        cb,
		reconnect:        NewReconnectState(maxReconnectAttempts),
		defaultAutoClose: defaultAutoClose,
		ctx:              ctx,
		cancel:           cancel,
		latency:          ewma.NewMovingAverage(),
		log:              logger.With("component", "feed"),
	}
}

// Start launches the connect/read loop in its own goroutine.
func (c *Client) Start() {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.run()
	}()
}

// Close tears the connection down and waits for the loop to exit. Safe to
// call more than once.
func (c *Client) Close() {
	c.cancel()
	c.mu.Lock()
	if c.conn != nil {
		c.conn.Close()
	}
	c.mu.Unlock()
	c.wg.Wait()
}

func (c *Client) run() {
	for {
		if c.ctx.Err() != nil {
			return
		}

		conn, err := c.dial()
		if err != nil {
			if !c.backoff(err) {
				return
			}
			continue
		}

		c.reconnect.Reset()
		c.setConn(conn)
		c.notifySocket(true)
		c.log.Info("feed connected", "url", c.url)

		err = c.readLoop(conn)
		c.setConn(nil)
		c.notifySocket(false)

		if c.ctx.Err() != nil {
			return
		}
		c.log.Warn("feed connection lost", "error", err)
		if !c.backoff(err) {
			return
		}
	}
}

func (c *Client) dial() (*websocket.Conn, error) {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(c.ctx, c.url, nil)
	return conn, err
}

// backoff waits before the next attempt and reports whether to keep trying.
func (c *Client) backoff(cause error) bool {
	if !c.reconnect.NextAttempt() {
		c.log.Error("feed reconnection attempts exhausted",
			"max_attempts", c.reconnect.MaxAttempts, "error", cause)
		if c.callbacks.OnExhausted != nil {
			c.callbacks.OnExhausted(cause)
		}
		return false
	}

	if c.callbacks.OnReconnecting != nil {
		c.callbacks.OnReconnecting(c.reconnect.Attempt, c.reconnect.MaxAttempts)
	}

	select {
	case <-c.ctx.Done():
		return false
	case <-time.After(c.reconnect.NextDelay):
		return true
	}
}

func (c *Client) readLoop(conn *websocket.Conn) error {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		c.dispatch(data)
	}
}

// dispatch decodes one frame and routes it. A malformed frame is logged and
// dropped; it never tears the connection down.
func (c *Client) dispatch(data []byte) {
	env, err := Decode(data)
	if err != nil {
		c.log.Warn("dropping malformed feed frame", "error", err)
		return
	}

	switch env.Type {
	case EventSnapshot:
		if c.callbacks.OnSnapshot != nil {
			out := make([]alerts.Alert, 0, len(env.Alerts))
			for _, w := range env.Alerts {
				out = append(out, w.toAlert())
			}
			c.callbacks.OnSnapshot(out)
		}

	case EventAlert:
		if env.Alert != nil && c.callbacks.OnAlert != nil {
			c.callbacks.OnAlert(env.Alert.toAlert())
		}

	case EventNotification:
		if env.Notification != nil && c.callbacks.OnNotification != nil {
			c.callbacks.OnNotification(env.Notification.toNotification(c.defaultAutoClose))
		}

	case EventHeartbeat:
		if env.Sent > 0 {
			sample := time.Since(time.UnixMilli(env.Sent))
			if sample > 0 {
				c.latency.Add(float64(sample.Milliseconds()))
				if c.callbacks.OnLatency != nil {
					c.callbacks.OnLatency(time.Duration(c.latency.Value()) * time.Millisecond)
				}
			}
		}

	default:
		c.log.Debug("ignoring unknown feed event", "type", env.Type)
	}
}

func (c *Client) setConn(conn *websocket.Conn) {
	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()
}

func (c *Client) notifySocket(connected bool) {
	if c.callbacks.OnSocketState != nil {
		c.callbacks.OnSocketState(connected)
	}
}
