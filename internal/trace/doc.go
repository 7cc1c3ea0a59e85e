// Package trace records span events of a formatting run.
//
// A run opens a ScopeRun span, every file a ScopeFile span under it, and the
// pipeline steps inside a file (scan, layout, render, write) ScopePhase spans.
// The level decides how deep events go:
//
//	off     nothing
//	error   run boundaries only, kept for dumps after a failure
//	phase   run and file spans
//	detail  everything
//
// Tracers travel through context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeFile, path, parent)
//	defer span.End("")
package trace
