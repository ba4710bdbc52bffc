// ratelimit.go implements a per-IP token-bucket rate limiter for abuse-prone
// endpoints (login, register, invite redemption). Buckets live in memory;
// good enough for a single-instance self-hosted deployment.
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// Sweep cadence for idle bucket eviction.
const (
	sweepInterval = time.Minute
	idleEntryTTL  = 10 * time.Minute
)

// ipLimiter tracks a token bucket per client IP with last-seen timestamps
// so idle entries can be evicted.
type ipLimiter struct {
	mu       sync.Mutex
	limiters map[string]*ipEntry
	rate     rate.Limit
	burst    int
	stop     chan struct{}
}

type ipEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// newIPLimiter creates a limiter allowing r events/second with the given
// burst, and starts a background sweep of idle entries. The sweep runs until
// close is called.
func newIPLimiter(r rate.Limit, burst int) *ipLimiter {
	l := &ipLimiter{
		limiters: make(map[string]*ipEntry),
		rate:     r,
		burst:    burst,
		stop:     make(chan struct{}),
	}
	go l.sweep()
	return l
}

// sweep evicts idle entries once per sweepInterval until stopped.
func (l *ipLimiter) sweep() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-l.stop:
			return
		case now := <-ticker.C:
			l.evictIdle(now.Add(-idleEntryTTL))
		}
	}
}

// evictIdle removes entries not seen since cutoff.
func (l *ipLimiter) evictIdle(cutoff time.Time) {
	l.mu.Lock()
	for ip, entry := range l.limiters {
		if entry.lastSeen.Before(cutoff) {
			delete(l.limiters, ip)
		}
	}
	l.mu.Unlock()
}

// close stops the background sweep. Limiters created through RateLimit live
// for the process; close exists so other users can clean up.
func (l *ipLimiter) close() {
	close(l.stop)
}

// allow reports whether a request from ip may proceed.
func (l *ipLimiter) allow(ip string) bool {
	l.mu.Lock()
	entry, ok := l.limiters[ip]
	if !ok {
		entry = &ipEntry{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.limiters[ip] = entry
	}
	entry.lastSeen = time.Now()
	l.mu.Unlock()

	return entry.limiter.Allow()
}

// RateLimit returns middleware that limits each IP to maxRequests within the
// given window (expressed as a token bucket refilling at maxRequests/window
// with a burst of maxRequests). Returns 429 when exceeded.
func RateLimit(maxRequests int, window time.Duration) echo.MiddlewareFunc {
	limiter := newIPLimiter(rate.Every(window/time.Duration(maxRequests)), maxRequests)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !limiter.allow(c.RealIP()) {
				return echo.NewHTTPError(http.StatusTooManyRequests,
					"too many requests, please slow down")
			}
			return next(c)
		}
	}
}
