// Package session normalizes the optional identity provider into a
// single observable token stream and a uniform sign-out operation.
//
// The token stream is a live multicast: subscribers only observe values
// emitted after they subscribe, a provider failure while streaming is
// translated to an absent token (the stream continues), and subscribers
// never receive a terminal error: if the provider's own event source
// ends, the stream simply completes. Sign-out, by contrast, propagates
// provider errors verbatim so callers can surface them.
//
// With no provider configured the service still satisfies its contract:
// the stream is a constant absent value and sign-out is a successful
// no-op.
package session
