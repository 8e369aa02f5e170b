package config

import "sync/atomic"

// current is the process-wide configuration snapshot. It is written once
// during application start and read on every activation check, so swaps
// (including test-time overrides) are immediately visible.
var current atomic.Pointer[ShellConfig]

// Install publishes cfg as the process-wide snapshot.
func Install(cfg *ShellConfig) {
	current.Store(cfg)
}

// Current returns the installed snapshot, or nil when none is installed.
func Current() *ShellConfig {
	return current.Load()
}

// Reset clears the installed snapshot. Intended for tests.
func Reset() {
	current.Store(nil)
}
