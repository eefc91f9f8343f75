// Package trace records begin/end spans and point events for the lint
// pipeline. Tracers stream events as text or NDJSON, or keep the most
// recent ones in a ring buffer that can be dumped after a failure.
//
// A Tracer travels through context.Context; code that has no tracer
// attached gets Nop, so instrumentation is always safe to call.
package trace
