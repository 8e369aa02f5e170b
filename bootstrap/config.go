package bootstrap

import (
	"github.com/skillsenselab/shellkit/config"
)

// Config is the interface constraint for application configuration types.
// Any struct that embeds config.ShellConfig (value embedding) automatically
// satisfies this interface via promoted methods.
//
// Example:
//
//	type MyConfig struct {
//	    config.ShellConfig `yaml:",inline" mapstructure:",squash"`
//	    Feed feedConfig `yaml:"feed" mapstructure:"feed"`
//	}
//
//	app, err := bootstrap.NewApp[*MyConfig](&cfg)
type Config interface {
	GetShellConfig() *config.ShellConfig
	ApplyDefaults()
	Validate() error
}
