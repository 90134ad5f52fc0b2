package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// LoginRateLimiter throttles credential submissions per client address
type LoginRateLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
	rate     rate.Limit
	burst    int
	logger   *slog.Logger
}

// NewLoginRateLimiter allows perMinute attempts per client with an equal burst.
// A perMinute of zero disables throttling.
func NewLoginRateLimiter(perMinute int, logger *slog.Logger) *LoginRateLimiter {
	return &LoginRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Every(time.Minute / time.Duration(max(perMinute, 1))),
		burst:    perMinute,
		logger:   logger,
	}
}

// getLimiter returns the limiter of the given client key
func (rl *LoginRateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	// bound memory; a reset only forgives clients early
	if len(rl.limiters) > 10000 {
		rl.limiters = make(map[string]*rate.Limiter)
	}

	limiter, exists := rl.limiters[key]
	if !exists {
		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters[key] = limiter
	}
	return limiter
}

// Handler only counts POST requests; rendering the form is never throttled
func (rl *LoginRateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.burst <= 0 || r.Method != http.MethodPost {
			next.ServeHTTP(w, r)
			return
		}

		key := clientIP(r)
		if !rl.getLimiter(key).Allow() {
			rl.logger.Warn("login rate limit exceeded", "remote_addr", key)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Muitas tentativas de login. Tente novamente em instantes.", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientIP drops the port so every connection of a client shares one limiter.
// RealIP has already replaced RemoteAddr when behind a proxy.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
