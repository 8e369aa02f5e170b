// Package stream provides a generic, live multicast broadcast.
//
// A Broadcast delivers each emitted value to every subscriber that is
// registered at emission time. There is no replay: a late subscriber only
// observes values emitted at-or-after its own subscription. Completion
// closes every subscriber channel; errors are never delivered through the
// broadcast itself; upstream error handling is the producer's concern.
package stream
