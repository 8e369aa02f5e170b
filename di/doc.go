// Package di provides the dependency injection container that constructs
// the shell's services.
//
// It supports eager, lazy, and singleton registration modes with type-safe
// resolution using Go generics. Lazy constructors run behind a circuit
// breaker and retry loop from the resilience package, so a failing
// dependency degrades to fast errors instead of repeated slow attempts.
// Constructed services are exported to code outside the container through
// the bridge package.
//
// # Registration
//
//	container.Register(bridge.Shell.Session, func() (*session.Service, error) {
//	    return session.NewService(binding), nil
//	})
//
// # Resolution
//
//	svc := di.MustResolve[*session.Service](container, bridge.Shell.Session)
package di
