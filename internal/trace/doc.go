// Package trace records what the analyzer is doing: driver phases, files
// and, at debug level, individual call sites.
//
// Enable it from the command line:
//
//	globalint check --trace=- --trace-level=detail src/
//
// Tracers:
//
//   - Nop: disabled tracing, zero overhead
//   - StreamTracer: structured zap log lines, written as they happen
//   - RingTracer: last N events in memory, dumped when the analyzer panics
//   - MultiTracer: fan-out to several tracers
//
// Levels select scopes: phase shows driver and pass boundaries, detail adds
// files, debug adds calls.
//
// Tracers travel in the context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeFile, path, parent)
//	defer span.End("")
package trace
