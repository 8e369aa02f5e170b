package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/skillsenselab/shellkit/logger"
)

// keepAliveInterval must stay below common proxy idle timeouts.
const keepAliveInterval = 30 * time.Second

// ConnectedEvent opens every stream and echoes the subscription back.
type ConnectedEvent struct {
	ClientID string   `json:"client_id"`
	Topics   []string `json:"topics"`
}

// ServeSSE streams hub events matching the given topic patterns to one
// HTTP client. It blocks until the client disconnects or the hub stops,
// so call it from a request handler. With no patterns the client
// receives every topic.
func ServeSSE(hub *Hub, w http.ResponseWriter, r *http.Request, patterns ...string) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	// The stream is long-lived; the server's WriteTimeout must not
	// apply to it.
	rc := http.NewResponseController(w)
	if err := rc.SetWriteDeadline(time.Time{}); err != nil {
		logger.Warn("Could not clear write deadline for event stream", map[string]interface{}{
			"error": err.Error(),
		})
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	client := NewClient(uuid.NewString(), patterns...)
	hub.Register(client)
	defer hub.Unregister(client)

	opening, _ := json.Marshal(ConnectedEvent{
		ClientID: client.ID(),
		Topics:   client.Patterns(),
	})
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", EventTypeConnected, opening)
	flusher.Flush()

	logger.Debug("Stream opened", map[string]interface{}{
		"client_id":   client.ID(),
		"remote_addr": r.RemoteAddr,
	})

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			logger.Debug("Stream closed by client", map[string]interface{}{
				"client_id": client.ID(),
			})
			return

		case ev, ok := <-client.Events():
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Topic, ev.Data)
			flusher.Flush()

		case <-keepAlive.C:
			fmt.Fprintf(w, ": %s %d\n\n", EventTypeKeepAlive, time.Now().Unix())
			flusher.Flush()
		}
	}
}
