package config

import (
	"fmt"

	"github.com/skillsenselab/shellkit/identity"
)

// AuthConfig wires the optional identity provider.
//
// Enabled and Emulator are independent switches: Emulator only matters
// when Enabled is true, but the two are never collapsed into one flag.
type AuthConfig struct {
	// Enabled activates the identity provider integration.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`

	// Emulator redirects the provider client to the local emulator
	// endpoint instead of production.
	Emulator bool `yaml:"emulator" mapstructure:"emulator"`

	Provider ProviderConfig `yaml:"provider" mapstructure:"provider"`
}

// ProviderConfig holds the identity provider connection parameters.
// The shell treats these as opaque, already-validated values.
type ProviderConfig struct {
	APIKey            string `yaml:"api_key" mapstructure:"api_key"`
	ProjectID         string `yaml:"project_id" mapstructure:"project_id"`
	AuthDomain        string `yaml:"auth_domain" mapstructure:"auth_domain"`
	StorageBucket     string `yaml:"storage_bucket" mapstructure:"storage_bucket"`
	MessagingSenderID string `yaml:"messaging_sender_id" mapstructure:"messaging_sender_id"`
	AppID             string `yaml:"app_id" mapstructure:"app_id"`
}

// ApplyDefaults applies default values. Nothing is defaulted today; the
// method exists for symmetry with the other config sections.
func (c *AuthConfig) ApplyDefaults() {}

// Validate checks that an enabled provider has the parameters it needs.
func (c *AuthConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Provider.APIKey == "" {
		return fmt.Errorf("provider.api_key is required when auth is enabled")
	}
	if c.Provider.ProjectID == "" {
		return fmt.Errorf("provider.project_id is required when auth is enabled")
	}
	return nil
}

// Params copies the provider connection parameters into their
// registration form.
func (c *ProviderConfig) Params() identity.Params {
	return identity.Params{
		APIKey:            c.APIKey,
		ProjectID:         c.ProjectID,
		AuthDomain:        c.AuthDomain,
		StorageBucket:     c.StorageBucket,
		MessagingSenderID: c.MessagingSenderID,
		AppID:             c.AppID,
	}
}
