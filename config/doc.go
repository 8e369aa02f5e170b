// Package config loads and validates the client-shell configuration.
//
// It uses Viper to load configuration from YAML files and environment
// variables (with .env support via godotenv), validates the result, and
// installs it as the process-wide snapshot behind an atomic pointer.
// Activation checks (e.g. session.IsAuthActive) read the snapshot on
// every call, so tests can swap configuration with Install/Reset.
//
// Secret fields may carry an "enc:" prefix; such values are decrypted at
// load time with the key from SHELLKIT_SECRET_KEY.
package config
