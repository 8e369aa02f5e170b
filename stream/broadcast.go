package stream

import (
	"sync"

	"github.com/google/uuid"

	"github.com/skillsenselab/shellkit/logger"
)

// DefaultBuffer is the per-subscriber channel capacity.
const DefaultBuffer = 16

// Subscription is one subscriber's view of a Broadcast.
type Subscription[T any] struct {
	id     string
	values chan T
	cancel func(id string)
	once   sync.Once
}

// ID returns the subscription's unique identifier.
func (s *Subscription[T]) ID() string { return s.id }

// Values returns the channel on which values are delivered.
// The channel is closed when the broadcast completes or the
// subscription is canceled.
func (s *Subscription[T]) Values() <-chan T { return s.values }

// Unsubscribe detaches from the broadcast. Further values are not
// delivered and the values channel is closed. Safe to call more than once.
func (s *Subscription[T]) Unsubscribe() {
	s.once.Do(func() { s.cancel(s.id) })
}

// Option configures a Broadcast.
type Option[T any] func(*Broadcast[T])

// WithBuffer sets the per-subscriber channel capacity.
func WithBuffer[T any](n int) Option[T] {
	return func(b *Broadcast[T]) {
		if n > 0 {
			b.buffer = n
		}
	}
}

// WithSeed sets a value delivered to each subscriber at subscription time.
// The seed is a constant greeting, not a replay of emission history.
func WithSeed[T any](fn func() T) Option[T] {
	return func(b *Broadcast[T]) { b.seed = fn }
}

// Broadcast is a live multicast of values of type T.
type Broadcast[T any] struct {
	mu        sync.Mutex
	subs      map[string]*Subscription[T]
	completed bool
	buffer    int
	seed      func() T
}

// New creates an empty Broadcast.
func New[T any](opts ...Option[T]) *Broadcast[T] {
	b := &Broadcast[T]{
		subs:   make(map[string]*Subscription[T]),
		buffer: DefaultBuffer,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe registers a new subscriber. If the broadcast has already
// completed, the returned subscription's channel is already closed.
func (b *Broadcast[T]) Subscribe() *Subscription[T] {
	sub := &Subscription[T]{
		id:     uuid.New().String(),
		values: make(chan T, b.buffer),
		cancel: b.remove,
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.completed {
		close(sub.values)
		return sub
	}
	if b.seed != nil {
		sub.values <- b.seed()
	}
	b.subs[sub.id] = sub
	return sub
}

// Emit delivers v to every current subscriber. A subscriber whose buffer
// is full misses the value rather than blocking the producer.
// Emitting after Complete is a no-op.
func (b *Broadcast[T]) Emit(v T) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.completed {
		return
	}
	for id, sub := range b.subs {
		select {
		case sub.values <- v:
		default:
			logger.Warn("Slow subscriber, dropping value", map[string]interface{}{
				"subscription": id,
			})
		}
	}
}

// Complete ends the broadcast: every subscriber channel is closed and
// future Emit calls are ignored. Idempotent.
func (b *Broadcast[T]) Complete() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.completed {
		return
	}
	b.completed = true
	for id, sub := range b.subs {
		close(sub.values)
		delete(b.subs, id)
	}
}

// Completed reports whether the broadcast has ended.
func (b *Broadcast[T]) Completed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.completed
}

// Len returns the current subscriber count.
func (b *Broadcast[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// remove detaches a subscription and closes its channel.
func (b *Broadcast[T]) remove(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub, ok := b.subs[id]
	if !ok {
		return
	}
	delete(b.subs, id)
	close(sub.values)
}
