// Package component defines the core interfaces for lifecycle-managed
// services in the shell.
//
// Components represent services that require startup, shutdown, and
// health monitoring. They are registered with the bootstrap package for
// automatic lifecycle management: started in registration order and
// stopped in reverse.
//
// # Interfaces
//
//   - Component: Core lifecycle interface (Start/Stop/Health)
//   - Describable: Bootstrap summary descriptions
//   - RouteProvider: HTTP route reporting for the startup summary
package component
