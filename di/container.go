package di

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/skillsenselab/shellkit/logger"
	"github.com/skillsenselab/shellkit/resilience"
)

// RegistrationMode determines when a registered service is constructed.
type RegistrationMode int

const (
	Eager     RegistrationMode = iota // Construct immediately on registration
	Lazy                              // Construct on first resolve
	Singleton                         // Pre-created instance
)

// Container registers service constructors and resolves instances by key.
type Container interface {
	Register(key string, constructor interface{}) error
	RegisterLazy(key string, constructor interface{}, options ...LazyOption) error
	RegisterEager(key string, constructor interface{}) error
	RegisterSingleton(key string, instance interface{}) error
	Resolve(key string) (interface{}, error)

	// Refresh discards a cached instance and constructs it again.
	Refresh(key string) (interface{}, error)

	// Registrations describes every registered service for introspection.
	Registrations() []RegistrationInfo

	Close() error
}

// RegistrationInfo describes a registered service for introspection.
type RegistrationInfo struct {
	Key         string
	Mode        RegistrationMode
	Initialized bool
}

// LazyOption customizes a lazy registration.
type LazyOption func(*entry)

// WithRetry overrides the retry behavior for a lazy constructor.
func WithRetry(config resilience.RetryConfig) LazyOption {
	return func(e *entry) {
		e.retry = config
	}
}

// WithCircuitBreaker overrides the breaker guarding a lazy constructor.
func WithCircuitBreaker(config resilience.CircuitBreakerConfig) LazyOption {
	return func(e *entry) {
		if config.Name == "" {
			config.Name = e.key
		}
		e.breaker = resilience.NewCircuitBreaker(config)
	}
}

// entry is one registered service.
type entry struct {
	key         string
	constructor interface{}
	mode        RegistrationMode
	retry       resilience.RetryConfig
	breaker     *resilience.CircuitBreaker

	mu          sync.Mutex
	instance    interface{}
	initialized bool
}

// ServiceContainer is the only Container implementation. Lazy
// constructors run behind a resilience.CircuitBreaker and retry loop,
// so a flapping dependency fails fast instead of stalling every
// resolve.
type ServiceContainer struct {
	mu         sync.RWMutex
	entries    map[string]*entry
	singletons map[string]interface{}
}

// NewContainer creates an empty ServiceContainer.
func NewContainer() Container {
	return &ServiceContainer{
		entries:    make(map[string]*entry),
		singletons: make(map[string]interface{}),
	}
}

// Register registers a lazy constructor. Lazy is the common case.
func (c *ServiceContainer) Register(key string, constructor interface{}) error {
	return c.RegisterLazy(key, constructor)
}

// RegisterLazy registers a constructor that runs on first Resolve.
func (c *ServiceContainer) RegisterLazy(key string, constructor interface{}, options ...LazyOption) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := &entry{
		key:         key,
		constructor: constructor,
		mode:        Lazy,
		retry:       defaultLazyRetry(key),
		breaker:     resilience.NewCircuitBreaker(defaultLazyBreaker(key)),
	}
	for _, opt := range options {
		opt(e)
	}

	c.entries[key] = e
	return nil
}

// RegisterEager registers a constructor and runs it immediately.
func (c *ServiceContainer) RegisterEager(key string, constructor interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	instance, err := c.construct(constructor)
	if err != nil {
		return fmt.Errorf("eager construction of '%s' failed: %w", key, err)
	}

	c.entries[key] = &entry{
		key:         key,
		constructor: constructor,
		mode:        Eager,
		instance:    instance,
		initialized: true,
	}
	return nil
}

// RegisterSingleton registers a pre-created instance.
func (c *ServiceContainer) RegisterSingleton(key string, instance interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.singletons[key] = instance
	return nil
}

// Resolve returns the instance registered under key, constructing it
// first if the registration is lazy and not yet initialized.
func (c *ServiceContainer) Resolve(key string) (interface{}, error) {
	c.mu.RLock()
	if singleton, ok := c.singletons[key]; ok {
		c.mu.RUnlock()
		return singleton, nil
	}
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("service not registered: %s", key)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.initialized {
		return e.instance, nil
	}
	if e.mode != Lazy {
		return nil, fmt.Errorf("service '%s' registered eagerly but never constructed", key)
	}
	return c.constructLazy(e)
}

// constructLazy runs the constructor behind the entry's breaker and
// retry config. Caller holds e.mu.
func (c *ServiceContainer) constructLazy(e *entry) (interface{}, error) {
	var instance interface{}
	err := e.breaker.Execute(func() error {
		v, err := resilience.Retry(context.Background(), e.retry, func(ctx context.Context) (interface{}, error) {
			return c.construct(e.constructor)
		})
		if err != nil {
			return err
		}
		instance = v
		return nil
	})
	if err != nil {
		if errors.Is(err, resilience.ErrCircuitOpen) {
			return nil, fmt.Errorf("service '%s' temporarily unavailable: %w", e.key, err)
		}
		return nil, fmt.Errorf("lazy construction of '%s' failed: %w", e.key, err)
	}

	e.instance = instance
	e.initialized = true
	logger.Debug("Service constructed", map[string]interface{}{
		"service": e.key,
	})
	return instance, nil
}

// construct invokes a constructor via reflection. Supported shapes are
// func(), func(context.Context), and func(Container), each returning
// either the instance or (instance, error).
func (c *ServiceContainer) construct(constructor interface{}) (interface{}, error) {
	fn := reflect.ValueOf(constructor)
	if fn.Kind() != reflect.Func {
		return nil, fmt.Errorf("constructor must be a function, got %T", constructor)
	}

	var args []reflect.Value
	switch fnType := fn.Type(); fnType.NumIn() {
	case 0:
	case 1:
		if fnType.In(0).String() == "context.Context" {
			args = []reflect.Value{reflect.ValueOf(context.Background())}
		} else {
			args = []reflect.Value{reflect.ValueOf(c)}
		}
	default:
		return nil, fmt.Errorf("constructor takes %d arguments, want at most one", fn.Type().NumIn())
	}

	return constructorResult(fn.Call(args))
}

func constructorResult(results []reflect.Value) (interface{}, error) {
	switch len(results) {
	case 1:
		return results[0].Interface(), nil
	case 2:
		if err, ok := results[1].Interface().(error); ok && err != nil {
			return nil, err
		}
		return results[0].Interface(), nil
	default:
		return nil, fmt.Errorf("constructor must return (instance) or (instance, error)")
	}
}

// Refresh discards the cached instance for key and constructs it again.
func (c *ServiceContainer) Refresh(key string) (interface{}, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("service not registered: %s", key)
	}
	if e.mode != Lazy {
		return nil, fmt.Errorf("service '%s' is not refreshable", key)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.instance = nil
	e.initialized = false
	return c.constructLazy(e)
}

// Registrations describes all registered services.
func (c *ServiceContainer) Registrations() []RegistrationInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]RegistrationInfo, 0, len(c.entries)+len(c.singletons))
	for key, e := range c.entries {
		e.mu.Lock()
		result = append(result, RegistrationInfo{
			Key:         key,
			Mode:        e.mode,
			Initialized: e.initialized,
		})
		e.mu.Unlock()
	}
	for key := range c.singletons {
		result = append(result, RegistrationInfo{
			Key:         key,
			Mode:        Singleton,
			Initialized: true,
		})
	}
	return result
}

// Close closes every constructed instance that implements Close.
func (c *ServiceContainer) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, e := range c.entries {
		e.mu.Lock()
		if e.initialized {
			if closer, ok := e.instance.(interface{ Close() error }); ok {
				if err := closer.Close(); err != nil {
					logger.Warn("Service close failed", map[string]interface{}{
						"service": e.key,
						"error":   err.Error(),
					})
				}
			}
		}
		e.mu.Unlock()
	}
	for key, singleton := range c.singletons {
		if closer, ok := singleton.(interface{ Close() error }); ok {
			if err := closer.Close(); err != nil {
				logger.Warn("Service close failed", map[string]interface{}{
					"service": key,
					"error":   err.Error(),
				})
			}
		}
	}
	return nil
}

// defaultLazyRetry is tuned for startup wiring: fast attempts so a
// slow dependency delays boot by at most a few seconds.
func defaultLazyRetry(key string) resilience.RetryConfig {
	cfg := resilience.DefaultRetryConfig()
	cfg.InitialBackoff = 250 * time.Millisecond
	cfg.MaxBackoff = 2 * time.Second
	cfg.OnRetry = func(attempt int, err error) {
		logger.Debug("Service construction retry", map[string]interface{}{
			"service": key,
			"attempt": attempt,
			"error":   err.Error(),
		})
	}
	return cfg
}

func defaultLazyBreaker(key string) resilience.CircuitBreakerConfig {
	cfg := resilience.DefaultCircuitBreakerConfig(key)
	cfg.OnStateChange = func(name string, from, to resilience.State) {
		logger.Warn("Service breaker state change", map[string]interface{}{
			"service": name,
			"from":    from.String(),
			"to":      to.String(),
		})
	}
	return cfg
}
