package middlewares

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// RateLimiter applies a fixed-window per-client request cap.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*windowCount
	limit   int
	window  time.Duration
}

type windowCount struct {
	requests int
	start    time.Time
}

func NewRateLimiter(limit int, window, sweepEvery time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*windowCount),
		limit:   limit,
		window:  window,
	}

	go func() {
		for range time.Tick(sweepEvery) {
			rl.sweep()
		}
	}()

	return rl
}

func (rl *RateLimiter) sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for ip, c := range rl.clients {
		if time.Since(c.start) > rl.window {
			delete(rl.clients, ip)
		}
	}
}

// Limit rejects clients that exceed the per-window cap with 429.
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(clientIP(r)) {
			http.Error(w, "Too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	c, ok := rl.clients[ip]
	if !ok || time.Since(c.start) > rl.window {
		rl.clients[ip] = &windowCount{requests: 1, start: time.Now()}
		return true
	}

	c.requests++
	return c.requests <= rl.limit
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ip := strings.TrimSpace(strings.Split(xff, ",")[0])
		if net.ParseIP(ip) != nil {
			return ip
		}
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
