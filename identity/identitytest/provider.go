// Package identitytest provides a scripted identity provider for tests.
package identitytest

import (
	"context"
	"sync"

	"github.com/skillsenselab/shellkit/identity"
	"github.com/skillsenselab/shellkit/util"
)

// Provider is a fake identity provider driven by the test: token events
// are pushed through Emit* methods and sign-out behavior is scripted via
// FailSignOut.
type Provider struct {
	events chan identity.TokenEvent

	mu           sync.Mutex
	signOutErr   error
	signOutCalls int
	terminated   bool
}

var _ identity.Provider = (*Provider)(nil)

// New creates a fake provider with a buffered event source.
func New() *Provider {
	return &Provider{
		events: make(chan identity.TokenEvent, 32),
	}
}

// TokenEvents returns the scripted event source.
func (p *Provider) TokenEvents() <-chan identity.TokenEvent {
	return p.events
}

// SignOut records the call and returns the scripted error, if any.
func (p *Provider) SignOut(_ context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.signOutCalls++
	return p.signOutErr
}

// EmitToken pushes a token event.
func (p *Provider) EmitToken(token string) {
	p.events <- identity.TokenEvent{Token: util.Ptr(token)}
}

// EmitAbsent pushes a signed-out (no token) event.
func (p *Provider) EmitAbsent() {
	p.events <- identity.TokenEvent{Token: nil}
}

// EmitErr pushes a provider failure event.
func (p *Provider) EmitErr(err error) {
	p.events <- identity.TokenEvent{Err: err}
}

// Terminate closes the event source, modeling a provider whose stream
// ends. Safe to call once.
func (p *Provider) Terminate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.terminated {
		p.terminated = true
		close(p.events)
	}
}

// FailSignOut scripts SignOut to return err.
func (p *Provider) FailSignOut(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.signOutErr = err
}

// SignOutCalls returns how many times SignOut was invoked.
func (p *Provider) SignOutCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.signOutCalls
}
