package sse

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/skillsenselab/shellkit/logger"
	"github.com/skillsenselab/shellkit/observability"
)

// clientBuffer is the per-client delivery buffer. A client that falls
// this far behind starts losing events rather than stalling the hub.
const clientBuffer = 64

// Client is one connected event-stream consumer. A client names the
// topic patterns it wants; the hub matches published topics against
// them with filepath.Match globs.
type Client struct {
	id       string
	patterns []string
	events   chan Event
}

// NewClient creates a client subscribed to the given topic patterns.
// With no patterns the client receives every topic.
func NewClient(id string, patterns ...string) *Client {
	if len(patterns) == 0 {
		patterns = []string{"*"}
	}
	return &Client{
		id:       id,
		patterns: patterns,
		events:   make(chan Event, clientBuffer),
	}
}

// ID returns the client identifier.
func (c *Client) ID() string { return c.id }

// Patterns returns the topic patterns the client subscribed with.
func (c *Client) Patterns() []string { return c.patterns }

// Events returns the delivery channel. It is closed when the client is
// unregistered or the hub stops.
func (c *Client) Events() <-chan Event { return c.events }

// matches reports whether the client's subscription covers topic.
func (c *Client) matches(topic string) bool {
	for _, pattern := range c.patterns {
		if ok, err := filepath.Match(pattern, topic); err == nil && ok {
			return true
		}
	}
	return false
}

// send queues ev without blocking.
func (c *Client) send(ev Event) bool {
	select {
	case c.events <- ev:
		return true
	default:
		logger.Warn("Client buffer full, dropping event", map[string]interface{}{
			"client_id": c.id,
			"topic":     ev.Topic,
		})
		return false
	}
}

// Hub fans published events out to subscribed clients. Registration,
// removal and delivery all go through Run's loop.
type Hub struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	publish    chan Event
	done       chan struct{}
	stopped    bool
	metrics    *observability.Metrics
	mu         sync.RWMutex
}

// HubOption configures a Hub.
type HubOption func(*Hub)

// WithMetrics wires client connect/disconnect counters.
func WithMetrics(m *observability.Metrics) HubOption {
	return func(h *Hub) { h.metrics = m }
}

// NewHub creates an empty hub. Call Run in a goroutine to start it.
func NewHub(opts ...HubOption) *Hub {
	h := &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		publish:    make(chan Event, 256),
		done:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run drives the hub loop. It returns after Stop and closes every
// connected client on the way out.
func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			h.closeAll()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.id] = client
			total := len(h.clients)
			h.mu.Unlock()
			if h.metrics != nil {
				h.metrics.ClientConnected(context.Background())
			}
			logger.Debug("Stream client registered", map[string]interface{}{
				"client_id":     client.id,
				"total_clients": total,
			})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.id]; ok {
				delete(h.clients, client.id)
				close(client.events)
				if h.metrics != nil {
					h.metrics.ClientDisconnected(context.Background())
				}
			}
			total := len(h.clients)
			h.mu.Unlock()
			logger.Debug("Stream client removed", map[string]interface{}{
				"client_id":     client.id,
				"total_clients": total,
			})

		case ev := <-h.publish:
			h.deliver(ev)
		}
	}
}

// Stop shuts the hub down. Safe to call more than once.
func (h *Hub) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.stopped {
		h.stopped = true
		close(h.done)
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, client := range h.clients {
		close(client.events)
		delete(h.clients, id)
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client and closes its delivery channel.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Broadcast queues data for every client subscribed to topic.
func (h *Hub) Broadcast(topic string, data []byte) {
	h.publish <- Event{Topic: topic, Data: data}
}

// deliver runs on the hub goroutine.
func (h *Hub) deliver(ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for _, client := range h.clients {
		if client.matches(ev.Topic) && client.send(ev) {
			delivered++
		}
	}
	logger.Debug("Event published", map[string]interface{}{
		"topic":     ev.Topic,
		"delivered": delivered,
		"clients":   len(h.clients),
	})
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ClientIDs returns the IDs of all connected clients.
func (h *Hub) ClientIDs() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	ids := make([]string, 0, len(h.clients))
	for id := range h.clients {
		ids = append(ids, id)
	}
	return ids
}

var _ Broadcaster = (*Hub)(nil)
