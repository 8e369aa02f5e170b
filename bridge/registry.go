package bridge

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/skillsenselab/shellkit/errors"
)

// Registry is the process-wide view of the published services. Readers
// see either no snapshot at all (not ready) or a complete one; there is
// no in-between state.
type Registry struct {
	snapshot atomic.Pointer[map[string]interface{}]

	mu        sync.Mutex
	ready     chan struct{}
	readyOnce sync.Once
	gen       uint64
	listeners []*listener
}

// listener tracks the last publish generation a callback has observed,
// so a callback registered while a publish is in flight runs exactly
// once for that publish.
type listener struct {
	fn       func()
	notified uint64
}

// NewRegistry creates an empty, unpublished registry.
func NewRegistry() *Registry {
	return &Registry{ready: make(chan struct{})}
}

// Published reports whether a snapshot has been installed.
func (r *Registry) Published() bool {
	return r.snapshot.Load() != nil
}

// Ready returns a channel that is closed once the first snapshot is
// installed. It never closes if publish fails.
func (r *Registry) Ready() <-chan struct{} {
	return r.ready
}

// OnReady registers fn to run after every publish. If a snapshot is
// already installed, fn runs immediately as well.
func (r *Registry) OnReady(fn func()) {
	r.mu.Lock()
	l := &listener{fn: fn}
	published := r.Published()
	if published {
		l.notified = r.gen
	}
	r.listeners = append(r.listeners, l)
	r.mu.Unlock()
	if published {
		fn()
	}
}

// Lookup returns the published service stored under key.
func (r *Registry) Lookup(key string) (interface{}, error) {
	snap := r.snapshot.Load()
	if snap == nil {
		return nil, errors.BridgeNotReady(key)
	}
	svc, ok := (*snap)[key]
	if !ok {
		return nil, errors.NotFound("service", key)
	}
	return svc, nil
}

// MustLookup is like Lookup but panics on error. Intended for wiring
// code that runs after readiness is established.
func (r *Registry) MustLookup(key string) interface{} {
	svc, err := r.Lookup(key)
	if err != nil {
		panic(fmt.Sprintf("bridge: lookup %q: %v", key, err))
	}
	return svc
}

// Names returns the sorted names of the published services. Empty
// before the first publish.
func (r *Registry) Names() []string {
	snap := r.snapshot.Load()
	if snap == nil {
		return nil
	}
	names := make([]string, 0, len(*snap))
	for name := range *snap {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// install swaps in a complete snapshot and notifies listeners. The
// caller guarantees the map is fully populated and never mutated again.
func (r *Registry) install(snap map[string]interface{}) {
	r.mu.Lock()
	r.snapshot.Store(&snap)
	r.readyOnce.Do(func() { close(r.ready) })
	r.gen++
	pending := make([]*listener, 0, len(r.listeners))
	for _, l := range r.listeners {
		if l.notified < r.gen {
			l.notified = r.gen
			pending = append(pending, l)
		}
	}
	r.mu.Unlock()
	for _, l := range pending {
		l.fn()
	}
}

// LookupTyped resolves a published service and asserts its type.
func LookupTyped[T any](r *Registry, key string) (T, error) {
	var zero T
	svc, err := r.Lookup(key)
	if err != nil {
		return zero, err
	}
	typed, ok := svc.(T)
	if !ok {
		return zero, errors.Internal(fmt.Errorf("service %q has type %T, not %T", key, svc, zero))
	}
	return typed, nil
}
