package blog

import (
	"sync"
	"time"
)

// LoginLimiter rate-limits admin login attempts per IP address.
type LoginLimiter struct {
	mu       sync.Mutex
	attempts map[string][]time.Time
	max      int
	window   time.Duration
	stop     chan struct{}
	once     sync.Once
}

// NewLoginLimiter creates a LoginLimiter that allows max attempts per window.
func NewLoginLimiter(max int, window time.Duration) *LoginLimiter {
	l := &LoginLimiter{
		attempts: make(map[string][]time.Time),
		max:      max,
		window:   window,
		stop:     make(chan struct{}),
	}
	go l.cleanup()
	return l
}

// Stop ends the background cleanup.
func (l *LoginLimiter) Stop() {
	l.once.Do(func() { close(l.stop) })
}

func (l *LoginLimiter) cleanup() {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()
	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
		}
		l.mu.Lock()
		for ip := range l.attempts {
			l.pruneLocked(ip)
		}
		l.mu.Unlock()
	}
}

func (l *LoginLimiter) pruneLocked(ip string) int {
	cutoff := time.Now().Add(-l.window)
	hits := l.attempts[ip]
	kept := hits[:0]
	for _, t := range hits {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		delete(l.attempts, ip)
		return 0
	}
	l.attempts[ip] = kept
	return len(kept)
}

// Check reports whether ip may attempt another login. It does not record
// anything; call Record after a failed attempt.
func (l *LoginLimiter) Check(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pruneLocked(ip) < l.max
}

// Record registers a failed login attempt for ip.
func (l *LoginLimiter) Record(ip string) {
	l.mu.Lock()
	l.attempts[ip] = append(l.attempts[ip], time.Now())
	l.mu.Unlock()
}
