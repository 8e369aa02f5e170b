package bridge

import (
	"context"

	"github.com/skillsenselab/shellkit/errors"
	"github.com/skillsenselab/shellkit/logger"
	"github.com/skillsenselab/shellkit/observability"
)

// Resolver resolves a constructed service by name. di.Container
// satisfies this interface.
type Resolver interface {
	Resolve(key string) (interface{}, error)
}

// Bridge copies services out of a Resolver into a Registry.
type Bridge struct {
	names    []string
	resolver Resolver
	registry *Registry
	log      *logger.Logger
	metrics  *observability.Metrics
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithLogger sets the bridge logger.
func WithLogger(l *logger.Logger) Option {
	return func(b *Bridge) { b.log = l }
}

// WithMetrics enables metric recording for publishes.
func WithMetrics(m *observability.Metrics) Option {
	return func(b *Bridge) { b.metrics = m }
}

// New creates a Bridge that publishes the named services from resolver
// into registry. An empty names slice declares the full shell set.
func New(resolver Resolver, registry *Registry, names []string, opts ...Option) *Bridge {
	if len(names) == 0 {
		names = Shell.All()
	}
	b := &Bridge{names: names, resolver: resolver, registry: registry}
	for _, opt := range opts {
		opt(b)
	}
	if b.log == nil {
		b.log = logger.GetGlobalLogger().WithComponent("bridge")
	}
	return b
}

// Registry returns the registry this bridge publishes into.
func (b *Bridge) Registry() *Registry {
	return b.registry
}

// Publish resolves every declared service and installs them in the
// registry as one snapshot. If any name fails to resolve, nothing is
// installed and the registry stays in its previous state; the returned
// error is fatal to startup. A repeat call rebuilds and replaces the
// snapshot, and listeners are notified again.
func (b *Bridge) Publish(ctx context.Context) error {
	ctx, span := observability.StartSpan(ctx, "bridge.publish")
	defer span.End()

	snap := make(map[string]interface{}, len(b.names))
	for _, name := range b.names {
		svc, err := b.resolver.Resolve(name)
		if err != nil {
			appErr := errors.BridgeIncomplete(name, err)
			span.RecordError(appErr)
			b.log.Error("Service resolution failed, registry not published", map[string]interface{}{
				"service": name,
				"error":   err.Error(),
			})
			return appErr
		}
		snap[name] = svc
	}

	b.registry.install(snap)
	if b.metrics != nil {
		b.metrics.RecordPublish(ctx, len(snap))
	}
	b.log.Info("Service registry published", map[string]interface{}{
		"services": len(snap),
	})
	return nil
}
