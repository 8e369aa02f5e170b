package bridge

// ShellNames defines the registry names for the shell's shared services.
// Embedding projects extend this struct with their own names.
type ShellNames struct {
	// Core infrastructure
	Config string
	Logger string

	// Auth session
	Session string

	// Supporting services
	Validator string
	Hub       string
}

// Shell contains the registry names for the shell layer.
var Shell = ShellNames{
	Config: "config",
	Logger: "logger",

	Session: "session",

	Validator: "validator",
	Hub:       "hub",
}

// All returns every shell service name. This is the default declaration
// set for a Bridge.
func (n ShellNames) All() []string {
	return []string{n.Config, n.Logger, n.Session, n.Validator, n.Hub}
}
