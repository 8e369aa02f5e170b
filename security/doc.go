// Package security provides shared security primitives for shellkit packages.
//
// It includes TLS configuration and certificate handling that can be reused
// by the HTTP server and any outbound transport.
//
// # TLS Configuration
//
//	cfg := security.TLSConfig{
//	    CAFile:   "/path/to/ca.pem",
//	    CertFile: "/path/to/cert.pem",
//	    KeyFile:  "/path/to/key.pem",
//	}
//
//	tlsConfig, err := cfg.Build()
package security
