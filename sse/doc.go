// Package sse provides Server-Sent Events (SSE) infrastructure for
// real-time event delivery from the shell.
//
// It includes client connection management, topic-based event
// broadcasting with glob subscriptions, and a presence feed that
// mirrors the auth session state to connected clients. Token values
// never cross this boundary; only the signed-in/signed-out state does.
//
// # Architecture
//
//   - Hub: Central event router managing client subscriptions
//   - Feed: Bridges the session token stream onto the hub
//   - ServeSSE: HTTP handler loop for one client connection
//
// # Usage
//
//	hub := sse.NewHub()
//	go hub.Run()
//	feed := sse.NewFeed(hub, sessionService)
//	feed.Start(ctx)
package sse
