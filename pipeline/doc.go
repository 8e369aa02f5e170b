// Package pipeline provides composable, pull-based data pipeline operators.
//
// Pipelines are lazy: no work happens until values are pulled via Collect,
// Drain, or ForEach. Each stage pulls from the previous stage on demand,
// providing natural backpressure without explicit flow control.
//
// The session service builds its token pipeline here: a channel source over
// provider events, a Map stage performing the error-to-absent translation,
// and a Drain into the multicast broadcast. Keeping the translation as a
// named pipeline stage makes it a visible, testable transformation.
//
// # Usage
//
//	src := pipeline.FromChannel(events)
//	mapped := pipeline.Map(src, translate)
//	pipeline.Drain(mapped, broadcastEmit).Run(ctx)
package pipeline
