// Package server provides the shell's HTTP server using Gin with
// HTTP/2 h2c support.
//
// The server follows the component pattern with lifecycle management,
// health endpoints, and configurable middleware.
//
// # Middleware
//
// Built-in middleware (server/middleware):
//
//   - Recovery: Panic recovery with structured logging
//   - Logging: Request/response logging with duration tracking
//   - CORS: Cross-origin resource sharing configuration
//   - RequestID: Request ID generation and propagation
//   - RateLimit: Token-bucket rate limiting keyed per client
//
// # Endpoints
//
// Built-in endpoints (server/endpoint):
//
//   - /health: Component health aggregation
//   - /readyz: Readiness, gated on the published service registry
//   - /livez: Liveness check
//   - /info: Application information
//   - /metrics: Runtime metrics
//   - /version: Build version information
//   - /session: Session state introspection (no token material)
package server
