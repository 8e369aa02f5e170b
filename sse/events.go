package sse

// TopicPresence is the hub topic carrying session presence updates.
const TopicPresence = "presence"

// Wire-level SSE event names.
const (
	// EventTypeConnected opens every stream with the client's subscription.
	EventTypeConnected = "connected"

	// EventTypeKeepAlive names the periodic comment that holds the
	// connection open through proxies.
	EventTypeKeepAlive = "keepalive"
)

// Event is one hub delivery: the topic it was published on and the
// JSON payload.
type Event struct {
	Topic string
	Data  []byte
}

// PresenceEvent is the payload broadcast on every session state change.
// It deliberately carries no token material.
type PresenceEvent struct {
	Authenticated bool   `json:"authenticated"`
	At            string `json:"at"`
}
