// Package wrapper provides middleware for the query pipeline.
//
// It includes an OpenTelemetry tracing wrapper and a Redis read-through
// cache wrapper for idempotent queries.
package wrapper
