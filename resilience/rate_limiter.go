package resilience

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"
)

// ErrRateLimited is returned by Allow-style calls when no token is
// available.
var ErrRateLimited = errors.New("rate limited")

// RateLimiterConfig configures a token bucket RateLimiter.
type RateLimiterConfig struct {
	// Name identifies the limiter in logs.
	Name string
	// Rate is the refill rate in tokens per second.
	Rate float64
	// Burst is the bucket capacity. Defaults to Rate rounded up.
	Burst int
}

// RateLimiter is a token bucket. The bucket starts full and refills
// continuously at the configured rate.
type RateLimiter struct {
	name  string
	rate  float64
	burst float64

	mu     sync.Mutex
	tokens float64
	last   time.Time
}

// NewRateLimiter creates a full token bucket. A non-positive Rate
// falls back to 10 tokens per second.
func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	if config.Rate <= 0 {
		config.Rate = 10
	}
	if config.Burst <= 0 {
		config.Burst = int(math.Ceil(config.Rate))
	}
	return &RateLimiter{
		name:   config.Name,
		rate:   config.Rate,
		burst:  float64(config.Burst),
		tokens: float64(config.Burst),
		last:   time.Now(),
	}
}

// Allow reports whether a single token was available and consumes it.
func (rl *RateLimiter) Allow() bool {
	return rl.AllowN(1)
}

// AllowN consumes n tokens if they are all available.
func (rl *RateLimiter) AllowN(n int) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.refill(time.Now())
	if rl.tokens < float64(n) {
		return false
	}
	rl.tokens -= float64(n)
	return true
}

// Wait blocks until a token is available or the context is done.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	return rl.WaitN(ctx, 1)
}

// WaitN blocks until n tokens are available or the context is done.
func (rl *RateLimiter) WaitN(ctx context.Context, n int) error {
	if float64(n) > rl.burst {
		return ErrRateLimited
	}
	for {
		rl.mu.Lock()
		now := time.Now()
		rl.refill(now)
		if rl.tokens >= float64(n) {
			rl.tokens -= float64(n)
			rl.mu.Unlock()
			return nil
		}
		wait := time.Duration((float64(n) - rl.tokens) / rl.rate * float64(time.Second))
		rl.mu.Unlock()

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// Execute runs fn if a token is available, otherwise returns
// ErrRateLimited without calling fn.
func (rl *RateLimiter) Execute(fn func() error) error {
	if !rl.Allow() {
		return ErrRateLimited
	}
	return fn()
}

// ExecuteWait waits for a token, then runs fn.
func (rl *RateLimiter) ExecuteWait(ctx context.Context, fn func() error) error {
	if err := rl.Wait(ctx); err != nil {
		return err
	}
	return fn()
}

// Tokens returns the number of currently available tokens.
func (rl *RateLimiter) Tokens() float64 {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.refill(time.Now())
	return rl.tokens
}

// Rate returns the refill rate in tokens per second.
func (rl *RateLimiter) Rate() float64 { return rl.rate }

// Burst returns the bucket capacity.
func (rl *RateLimiter) Burst() int { return int(rl.burst) }

// refill credits elapsed time since the last refill. Caller holds mu.
func (rl *RateLimiter) refill(now time.Time) {
	elapsed := now.Sub(rl.last).Seconds()
	if elapsed <= 0 {
		return
	}
	rl.tokens = math.Min(rl.burst, rl.tokens+elapsed*rl.rate)
	rl.last = now
}
