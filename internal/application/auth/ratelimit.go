package auth

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// LoginLimiter bounds login attempts per source address. State is
// process-wide, reset on restart, and not shared across replicas.
type LoginLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	every     rate.Limit
	burst     int
	ttl       time.Duration
	lastPrune time.Time
	now       func() time.Time
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewLoginLimiter creates a limiter allowing maxAttempts per window from one
// address. Attempts refill evenly over the window once the initial burst is
// spent.
func NewLoginLimiter(maxAttempts int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{
		visitors: make(map[string]*visitor),
		every:    rate.Every(window / time.Duration(maxAttempts)),
		burst:    maxAttempts,
		ttl:      window,
		now:      time.Now,
	}
}

// Allow reports whether another attempt from addr is permitted right now.
func (l *LoginLimiter) Allow(addr string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.pruneLocked(now)

	v, ok := l.visitors[addr]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.every, l.burst)}
		l.visitors[addr] = v
	}
	v.lastSeen = now

	return v.limiter.AllowN(now, 1)
}

// pruneLocked drops addresses idle for a full window. Runs at most once per
// window to keep Allow cheap.
func (l *LoginLimiter) pruneLocked(now time.Time) {
	if now.Sub(l.lastPrune) < l.ttl {
		return
	}
	l.lastPrune = now

	for addr, v := range l.visitors {
		if now.Sub(v.lastSeen) > l.ttl {
			delete(l.visitors, addr)
		}
	}
}
