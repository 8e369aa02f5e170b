package identity

import "context"

// TokenEvent is a single observation from a provider's token source.
// Exactly one of Token/Err is meaningful: a non-nil Err marks a provider
// failure; otherwise Token carries the current session token, nil when no
// user is signed in.
type TokenEvent struct {
	Token *string
	Err   error
}

// Provider is the capability surface of an external identity provider.
type Provider interface {
	// TokenEvents returns the provider's token-change event source.
	// The channel is closed when the source terminates; events delivered
	// after subscription reflect the provider's current session state.
	TokenEvents() <-chan TokenEvent

	// SignOut asks the provider to end the current session. It blocks
	// until the provider confirms or fails; provider errors are returned
	// as-is.
	SignOut(ctx context.Context) error
}

// Binding is the optional attachment of a provider. It is a closed sum:
// the only implementations are Inactive and Active.
type Binding interface {
	binding()
}

// Inactive is the binding used when no identity provider is configured.
type Inactive struct{}

func (Inactive) binding() {}

// Active binds a concrete provider.
type Active struct {
	Provider Provider
}

func (Active) binding() {}

// Bind wraps a provider in an Active binding.
func Bind(p Provider) Binding { return Active{Provider: p} }

// None returns the Inactive binding.
func None() Binding { return Inactive{} }
