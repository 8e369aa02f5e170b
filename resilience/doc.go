// Package resilience provides the fault-tolerance primitives the shell
// leans on: a circuit breaker and retry loop guarding service
// construction in the di container, and a token bucket rate limiter
// behind the HTTP middleware.
//
// The primitives compose. A handler that calls out to an identity
// provider can wrap the call in both:
//
//	cb := resilience.NewCircuitBreaker(resilience.DefaultCircuitBreakerConfig("provider"))
//	rl := resilience.NewRateLimiter(resilience.RateLimiterConfig{Rate: 100, Burst: 20})
//
//	err := cb.Execute(func() error {
//		return rl.ExecuteWait(ctx, func() error {
//			return provider.Refresh(ctx)
//		})
//	})
package resilience
