// Package bootstrap orchestrates application lifecycle for shellkit services.
//
// It provides typed configuration handling, component registration, dependency
// injection, service bridging, and startup/shutdown hooks.
//
// # Quick Start
//
//	app, err := bootstrap.NewApp(&cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	app.RegisterComponent(serverComponent)
//	app.PublishServices()
//	if err := app.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// The lifecycle runs in phases: components start in registration order, OnStart
// hooks fire, configuration callbacks run, the DI container's services are
// published to the bridge registry (a failure here aborts startup), the ready
// check runs, and OnReady hooks fire. Shutdown reverses the order on SIGINT,
// SIGTERM, or context cancellation.
package bootstrap
