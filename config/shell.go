package config

import (
	"fmt"

	"github.com/skillsenselab/shellkit/logger"
)

// ShellConfig contains the configuration fields every shell application
// needs. Projects extend it by embedding it in their own config structs.
//
// Example:
//
//	type AppConfig struct {
//	    config.ShellConfig `yaml:",inline" mapstructure:",squash"`
//	    Server server.Config `yaml:"server" mapstructure:"server"`
//	}
type ShellConfig struct {
	Name        string        `yaml:"name" mapstructure:"name" validate:"required"`
	Environment string        `yaml:"environment" mapstructure:"environment"`
	Version     string        `yaml:"version" mapstructure:"version"`
	Debug       bool          `yaml:"debug" mapstructure:"debug"`
	Logging     logger.Config `yaml:"logging" mapstructure:"logging"`
	Auth        AuthConfig    `yaml:"auth" mapstructure:"auth"`

	Observability ObservabilityConfig `yaml:"observability" mapstructure:"observability"`
}

// ObservabilityConfig controls OTLP metric and trace export.
type ObservabilityConfig struct {
	Enabled    bool    `yaml:"enabled" mapstructure:"enabled"`
	Endpoint   string  `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure   bool    `yaml:"insecure" mapstructure:"insecure"`
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate"`
	// IntervalSeconds is the metric export interval.
	IntervalSeconds int `yaml:"interval_seconds" mapstructure:"interval_seconds"`
}

// GetShellConfig returns the base ShellConfig. When embedded in a larger
// config struct, this method is promoted so the embedding struct
// automatically satisfies bootstrap.Config.
func (c *ShellConfig) GetShellConfig() *ShellConfig {
	return c
}

// ApplyDefaults applies default values to the base configuration.
// Embedding structs override this and call c.ShellConfig.ApplyDefaults()
// first.
func (c *ShellConfig) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
	if c.Logging.ServiceName == "" && c.Name != "" {
		c.Logging.ServiceName = c.Name
	}
	c.Logging.ApplyDefaults()
	c.Auth.ApplyDefaults()
	if c.Observability.Endpoint == "" {
		c.Observability.Endpoint = "localhost:4318"
	}
	if c.Observability.SampleRate == 0 {
		c.Observability.SampleRate = 1.0
	}
	if c.Observability.IntervalSeconds == 0 {
		c.Observability.IntervalSeconds = 15
	}
}

// Validate validates the base configuration fields.
func (c *ShellConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("config.name is required")
	}
	validEnvs := []string{"development", "staging", "production"}
	found := false
	for _, v := range validEnvs {
		if c.Environment == v {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("config.environment must be one of [development, staging, production] (got: %s)", c.Environment)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	if err := c.Auth.Validate(); err != nil {
		return fmt.Errorf("config.auth: %w", err)
	}
	return nil
}

// ResolveSecrets decrypts any "enc:"-prefixed secret fields in place.
// The loader calls this after unmarshaling.
func (c *ShellConfig) ResolveSecrets() error {
	apiKey, err := resolveSecret(c.Auth.Provider.APIKey)
	if err != nil {
		return fmt.Errorf("config.auth.provider.api_key: %w", err)
	}
	c.Auth.Provider.APIKey = apiKey
	return nil
}
