package sse

// Broadcaster publishes events to subscribed clients. The feed depends
// on this rather than on the concrete Hub.
type Broadcaster interface {
	// Broadcast delivers data to every client whose subscription
	// patterns match topic.
	Broadcast(topic string, data []byte)
}
