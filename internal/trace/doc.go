// Package trace records what the IR builder did and in which order.
//
// Tracers are attached to a context.Context by the CLI and picked up by the
// driver (one pass span per file), the analyzer (one span per function body)
// and the builder (point events for scopes and variable versions at
// LevelDebug).
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "build", 0)
//	defer span.End("")
//
// Storage modes: stream (write immediately), ring (keep the last N events in
// memory), both.
package trace
