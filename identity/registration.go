package identity

import "fmt"

// Registration entry keys. Consumers look up provider wiring by these
// fixed keys rather than by position.
const (
	EntryParams           = "identity.params"
	EntryEndpointOverride = "identity.endpoint_override"
)

// Local emulator endpoint. The override always targets this fixed
// address; there is no configurable emulator location.
const (
	EmulatorHost = "localhost"
	EmulatorPort = 9099
)

// Params holds the provider connection parameters. All values are copied
// verbatim from static configuration; no parsing or validation happens
// here.
type Params struct {
	APIKey            string
	ProjectID         string
	AuthDomain        string
	StorageBucket     string
	MessagingSenderID string
	AppID             string
}

// EndpointOverride redirects the provider client to a local endpoint
// instead of its production endpoint.
type EndpointOverride struct {
	Host string
	Port int
}

// URL returns the override endpoint in URL form.
func (o EndpointOverride) URL() string {
	return fmt.Sprintf("http://%s:%d", o.Host, o.Port)
}

// EmulatorOverride returns the override pointing at the local emulator.
func EmulatorOverride() *EndpointOverride {
	return &EndpointOverride{Host: EmulatorHost, Port: EmulatorPort}
}

// Entry is one provider-registration item: a fixed key and its wiring
// value. An override entry with a nil value means "no override".
type Entry struct {
	Key   string
	Value any
}
