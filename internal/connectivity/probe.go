package connectivity

import (
	"net"
	"net/url"
	"sync"
	"time"

	"github.com/vigilops/vigil/internal/logger"
)

// Probe is the default NetworkSource: it checks reachability by dialing the
// feed host on an interval and notifies subscribers on state edges. The very
// first check runs synchronously in NewProbe so Online never guesses.
type Probe struct {
	addr     string
	interval time.Duration
	timeout  time.Duration

	mu     sync.Mutex
	online bool
	subs   map[int]func(bool)
	nextID int
	done   chan struct{}
	once   sync.Once
}

// NewProbe creates and starts a reachability probe against the host of the
// given websocket URL. The initial state is read synchronously.
func NewProbe(feedURL string, interval, timeout time.Duration) (*Probe, error) {
	addr, err := probeAddr(feedURL)
	if err != nil {
		return nil, err
	}

	p := &Probe{
		addr:     addr,
		interval: interval,
		timeout:  timeout,
		subs:     make(map[int]func(bool)),
		done:     make(chan struct{}),
	}
	p.online = p.check()

	go p.loop()
	return p, nil
}

// probeAddr derives a host:port dial target from a ws:// or wss:// URL.
func probeAddr(feedURL string) (string, error) {
	u, err := url.Parse(feedURL)
	if err != nil {
		return "", err
	}
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		if u.Scheme == "wss" {
			port = "443"
		} else {
			port = "80"
		}
	}
	return net.JoinHostPort(host, port), nil
}

func (p *Probe) check() bool {
	conn, err := net.DialTimeout("tcp", p.addr, p.timeout)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

func (p *Probe) loop() {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.done:
			return
		case <-ticker.C:
			online := p.check()

			p.mu.Lock()
			changed := online != p.online
			p.online = online
			var fns []func(bool)
			if changed {
				fns = make([]func(bool), 0, len(p.subs))
				for _, fn := range p.subs {
					fns = append(fns, fn)
				}
			}
			p.mu.Unlock()

			if changed {
				logger.Info("network reachability changed", "addr", p.addr, "online", online)
				for _, fn := range fns {
					fn(online)
				}
			}
		}
	}
}

// Online returns the most recent reachability result.
func (p *Probe) Online() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.online
}

// Subscribe registers a change callback. The returned cancel removes it.
func (p *Probe) Subscribe(fn func(online bool)) (cancel func()) {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.subs[id] = fn
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		delete(p.subs, id)
		p.mu.Unlock()
	}
}

// Close stops the probe loop. Safe to call more than once.
func (p *Probe) Close() {
	p.once.Do(func() {
		close(p.done)
	})
}
