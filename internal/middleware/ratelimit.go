package middleware

import (
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	// RatePerSecond is the per-caller request rate.
	RatePerSecond int
	// Burst is the max burst size per caller.
	Burst int
	// CleanupInterval is how often idle limiters are discarded.
	CleanupInterval time.Duration
	// MaxAge is how long a limiter survives after last use.
	MaxAge time.Duration
}

// DefaultRateLimitConfig returns sensible defaults.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RatePerSecond:   100,
		Burst:           200,
		CleanupInterval: 5 * time.Minute,
		MaxAge:          10 * time.Minute,
	}
}

type rateLimiterEntry struct {
	limiter      *rate.Limiter
	lastSeenNano atomic.Int64
}

// RateLimiter manages per-caller rate limiters, keyed by authenticated user
// id or, before auth runs, the client IP.
type RateLimiter struct {
	config   RateLimitConfig
	limiters sync.Map // map[string]*rateLimiterEntry
	stopCh   chan struct{}
}

// NewRateLimiter creates a new rate limiter with the given config.
func NewRateLimiter(config RateLimitConfig) *RateLimiter {
	rl := &RateLimiter{
		config: config,
		stopCh: make(chan struct{}),
	}
	go rl.cleanup()
	return rl
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(rl.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stopCh:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-rl.config.MaxAge).UnixNano()
			rl.limiters.Range(func(key, value any) bool {
				entry := value.(*rateLimiterEntry)
				if entry.lastSeenNano.Load() < cutoff {
					rl.limiters.Delete(key)
				}
				return true
			})
		}
	}
}

// Stop terminates the cleanup goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.stopCh)
}

func (rl *RateLimiter) limiterFor(key string) *rate.Limiter {
	if v, ok := rl.limiters.Load(key); ok {
		entry := v.(*rateLimiterEntry)
		entry.lastSeenNano.Store(time.Now().UnixNano())
		return entry.limiter
	}

	entry := &rateLimiterEntry{
		limiter: rate.NewLimiter(rate.Limit(rl.config.RatePerSecond), rl.config.Burst),
	}
	entry.lastSeenNano.Store(time.Now().UnixNano())
	actual, _ := rl.limiters.LoadOrStore(key, entry)
	return actual.(*rateLimiterEntry).limiter
}

// Handler returns the rate limiting middleware.
func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := callerKey(r)
		if !rl.limiterFor(key).Allow() {
			w.Header().Set("Retry-After", "1")
			writeAuthError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func callerKey(r *http.Request) string {
	if id := GetIdentity(r.Context()); id != nil {
		return "user:" + id.UserID.String()
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return "ip:" + r.RemoteAddr
	}
	return "ip:" + host
}
