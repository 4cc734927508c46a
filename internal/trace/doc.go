// Package trace records what the diagnostic pipeline does, cycle by cycle.
//
// # Usage
//
//	a11ylens watch page.json --trace=- --trace-level=rule
//
// # Tracers
//
//   - Nop: tracing disabled
//   - StreamTracer: writes each event as it happens (text or NDJSON)
//   - RingTracer: keeps the last N events for a dump after a failed cycle
//   - MultiTracer: fans out to several tracers
//
// # Levels and scopes
//
// A level admits every scope at or above its granularity:
//
//   - LevelCycle: ScopeRun and ScopeCycle (load, inspect, render, sink)
//   - LevelRule: adds ScopeRule (one span per inspection rule)
//   - LevelDebug: adds ScopeElement (per-element decisions)
//
// LevelError keeps the tracer alive for dumps but emits nothing on its own.
//
// # Context
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeRule, "taborder", parent)
//	defer span.End("")
package trace
