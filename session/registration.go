package session

import (
	"github.com/skillsenselab/shellkit/config"
	"github.com/skillsenselab/shellkit/identity"
)

// IsAuthActive reports whether the identity provider is wired in. It is
// evaluated against the installed configuration snapshot on every call,
// never memoized, so test-time configuration swaps are honored.
func IsAuthActive() bool {
	cfg := config.Current()
	return cfg != nil && cfg.Auth.Enabled
}

// BuildProviderRegistration assembles the provider wiring entries from
// the installed configuration.
//
// When auth is inactive the result is empty. When active it contains the
// connection parameters copied verbatim from configuration plus an
// endpoint-override entry: the entry itself is always present, but its
// value stays nil ("no override") unless the emulator flag is also set.
// The active and emulator conditions are evaluated independently.
func BuildProviderRegistration() []identity.Entry {
	cfg := config.Current()
	if cfg == nil || !cfg.Auth.Enabled {
		return nil
	}

	entries := []identity.Entry{
		{Key: identity.EntryParams, Value: cfg.Auth.Provider.Params()},
	}

	var override *identity.EndpointOverride
	if cfg.Auth.Emulator {
		override = identity.EmulatorOverride()
	}
	entries = append(entries, identity.Entry{Key: identity.EntryEndpointOverride, Value: override})

	return entries
}
