package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/shellkit/resilience"
)

// RateLimitConfig configures the rate limiting middleware.
type RateLimitConfig struct {
	// RequestsPerMinute is the maximum number of requests allowed per minute per key.
	RequestsPerMinute int
	// KeyFunc extracts the rate limit key from a request. Defaults to client IP.
	KeyFunc func(*gin.Context) string
}

// RateLimit returns a Gin middleware that applies per-key token bucket rate
// limiting. Each key gets its own resilience.RateLimiter refilling at the
// configured per-minute rate with a burst of the full minute allowance.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = 60
	}
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = IPBasedKey
	}

	buckets := &limiterSet{
		limiters: make(map[string]*resilience.RateLimiter),
		rate:     float64(cfg.RequestsPerMinute) / 60.0,
		burst:    cfg.RequestsPerMinute,
	}

	return func(c *gin.Context) {
		key := cfg.KeyFunc(c)
		if !buckets.get(key).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}

// IPBasedKey extracts the client IP for use as a rate limit key.
func IPBasedKey(c *gin.Context) string {
	return c.ClientIP()
}

// SessionBasedKey extracts the request-scoped session subject, falling back
// to client IP when the request carries no identity.
func SessionBasedKey(c *gin.Context) string {
	if sub, exists := c.Get("session_subject"); exists {
		if s, ok := sub.(string); ok && s != "" {
			return s
		}
	}
	return c.ClientIP()
}

type limiterSet struct {
	mu       sync.Mutex
	limiters map[string]*resilience.RateLimiter
	rate     float64
	burst    int
}

func (ls *limiterSet) get(key string) *resilience.RateLimiter {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	rl, ok := ls.limiters[key]
	if !ok {
		rl = resilience.NewRateLimiter(resilience.RateLimiterConfig{
			Name:  key,
			Rate:  ls.rate,
			Burst: ls.burst,
		})
		ls.limiters[key] = rl
	}
	return rl
}
