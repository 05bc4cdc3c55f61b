// internal/app/system/ratelimit/ratelimit.go
package ratelimit

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dalemusser/clubsphere/internal/app/system/auth"
	"github.com/dalemusser/clubsphere/internal/app/system/respond"
	"golang.org/x/time/rate"
)

// Limiter keeps one token bucket per key. It is safe for concurrent use.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	limit   rate.Limit
	burst   int
	idle    time.Duration // buckets unused this long are dropped

	stopCh chan struct{}
	once   sync.Once
}

type bucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// New creates a limiter allowing perMinute sustained requests per key with
// bursts of up to burst. Call Stop to end the cleanup goroutine.
func New(perMinute, burst int) *Limiter {
	if burst < 1 {
		burst = 1
	}
	l := &Limiter{
		buckets: make(map[string]*bucket),
		limit:   rate.Limit(float64(perMinute) / 60.0),
		burst:   burst,
		idle:    10 * time.Minute,
		stopCh:  make(chan struct{}),
	}
	go l.cleanupLoop()
	return l
}

func (l *Limiter) get(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{lim: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[key] = b
	}
	b.lastSeen = time.Now()
	return b.lim
}

// Allow reports whether a request for key may proceed now.
func (l *Limiter) Allow(key string) bool {
	return l.get(key).Allow()
}

// reserveDelay returns how long key must wait for its next token, without
// consuming one.
func (l *Limiter) reserveDelay(key string) time.Duration {
	r := l.get(key).Reserve()
	d := r.Delay()
	r.Cancel()
	return d
}

// Reset forgets the bucket for key.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.buckets, key)
}

// Stop ends the cleanup goroutine.
func (l *Limiter) Stop() {
	l.once.Do(func() { close(l.stopCh) })
}

// cleanupLoop periodically removes idle buckets to prevent memory leaks.
func (l *Limiter) cleanupLoop() {
	ticker := time.NewTicker(l.idle)
	defer ticker.Stop()

	for {
		select {
		case <-l.stopCh:
			return
		case <-ticker.C:
			l.mu.Lock()
			cutoff := time.Now().Add(-l.idle)
			for key, b := range l.buckets {
				if b.lastSeen.Before(cutoff) {
					delete(l.buckets, key)
				}
			}
			l.mu.Unlock()
		}
	}
}

// Key identifies the caller: the verified principal's email when present,
// otherwise the client IP.
func Key(r *http.Request) string {
	if p, ok := auth.CurrentPrincipal(r); ok {
		return "user:" + p.Email
	}
	return "ip:" + ClientIP(r)
}

// Middleware rejects callers that exceed their bucket with 429.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := Key(r)
		if !l.Allow(key) {
			wait := l.reserveDelay(key)
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
			respond.JSON(w, http.StatusTooManyRequests, map[string]string{
				"error":   "RateLimited",
				"message": "too many requests, try again later",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ClientIP extracts the client IP from an HTTP request.
// It checks X-Forwarded-For and X-Real-IP headers first (for proxied requests),
// then falls back to RemoteAddr.
func ClientIP(r *http.Request) string {
	// Check X-Forwarded-For header (comma-separated list, first is client)
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		if ip := strings.TrimSpace(parts[0]); ip != "" {
			return ip
		}
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	// Fall back to RemoteAddr (strip port)
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
