package http

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Client limiter defaults.
const (
	DefaultMaxClients = 10000
	clientTTL         = 10 * time.Minute
	sweepInterval     = time.Minute
)

// ClientLimiter applies an independent token bucket to each client key.
// Buckets idle for longer than the TTL are dropped by a periodic sweep.
// At most maxClients buckets are kept; requests from new clients are
// rejected while the table is full.
type ClientLimiter struct {
	mu         sync.Mutex
	clients    map[string]*clientBucket
	rps        rate.Limit
	burst      int
	maxClients int
	lastSweep  time.Time
	now        func() time.Time
}

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LimiterOption configures a ClientLimiter.
type LimiterOption func(*ClientLimiter)

// WithMaxClients caps the number of tracked clients.
func WithMaxClients(n int) LimiterOption {
	return func(l *ClientLimiter) {
		if n > 0 {
			l.maxClients = n
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) LimiterOption {
	return func(l *ClientLimiter) {
		l.now = now
	}
}

// NewClientLimiter creates a limiter allowing rps requests per second per
// client with the given burst.
func NewClientLimiter(rps float64, burst int, opts ...LimiterOption) *ClientLimiter {
	if burst < 1 {
		burst = 1
	}
	l := &ClientLimiter{
		clients:    make(map[string]*clientBucket),
		rps:        rate.Limit(rps),
		burst:      burst,
		maxClients: DefaultMaxClients,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.lastSweep = l.now()
	return l
}

// Allow reports whether client may make a request now.
func (l *ClientLimiter) Allow(client string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= sweepInterval {
		l.sweep(now)
	}

	b, ok := l.clients[client]
	if !ok {
		if len(l.clients) >= l.maxClients {
			l.sweep(now)
			if len(l.clients) >= l.maxClients {
				return false
			}
		}
		b = &clientBucket{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.clients[client] = b
	}
	b.lastSeen = now
	return b.limiter.AllowN(now, 1)
}

// Len returns the number of tracked clients.
func (l *ClientLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// sweep must be called with mu held.
func (l *ClientLimiter) sweep(now time.Time) {
	for k, b := range l.clients {
		if now.Sub(b.lastSeen) > clientTTL {
			delete(l.clients, k)
		}
	}
	l.lastSweep = now
}
