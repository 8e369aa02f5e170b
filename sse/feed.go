package sse

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/skillsenselab/shellkit/component"
	"github.com/skillsenselab/shellkit/logger"
	"github.com/skillsenselab/shellkit/session"
)

// Feed mirrors the session token stream onto the hub as presence
// events. Each token observation becomes one PresenceEvent published on
// TopicPresence.
type Feed struct {
	hub Broadcaster
	svc *session.Service
	log *logger.Logger

	mu  sync.Mutex
	sub interface{ Unsubscribe() }
	wg  sync.WaitGroup
}

// ensure Feed satisfies component.Component.
var _ component.Component = (*Feed)(nil)

// NewFeed creates a presence feed between the session service and hub.
func NewFeed(hub Broadcaster, svc *session.Service) *Feed {
	return &Feed{
		hub: hub,
		svc: svc,
		log: logger.GetGlobalLogger().WithComponent("presence_feed"),
	}
}

// Name returns the component name.
func (f *Feed) Name() string { return "presence_feed" }

// Start subscribes to the session stream and begins broadcasting.
func (f *Feed) Start(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	sub := f.svc.Subscribe()
	f.sub = sub

	f.wg.Add(1)
	go func() {
		defer f.wg.Done()
		for tok := range sub.Values() {
			f.broadcast(tok != nil)
		}
		f.log.Debug("Session stream completed, presence feed stopping")
	}()
	return nil
}

// Stop unsubscribes from the session stream and waits for the feed
// goroutine to drain.
func (f *Feed) Stop(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.sub != nil {
		f.sub.Unsubscribe()
		f.sub = nil
	}
	f.wg.Wait()
	return nil
}

// Health reports the feed status.
func (f *Feed) Health(_ context.Context) component.Health {
	f.mu.Lock()
	running := f.sub != nil
	f.mu.Unlock()

	status := component.StatusHealthy
	msg := "subscribed"
	if !running {
		status = component.StatusDegraded
		msg = "not subscribed"
	}
	return component.Health{Name: f.Name(), Status: status, Message: msg}
}

// Describe returns summary info for the bootstrap display.
func (f *Feed) Describe() component.Description {
	return component.Description{
		Name:    "Presence Feed",
		Type:    "sse",
		Details: fmt.Sprintf("topic: %s", TopicPresence),
	}
}

func (f *Feed) broadcast(authenticated bool) {
	ev := PresenceEvent{
		Authenticated: authenticated,
		At:            time.Now().UTC().Format(time.RFC3339),
	}
	data, err := json.Marshal(ev)
	if err != nil {
		f.log.Error("Presence event marshal failed", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	f.hub.Broadcast(TopicPresence, data)
}
