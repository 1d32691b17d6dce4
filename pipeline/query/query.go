// Package query implements the read-only half of the execution pipeline.
//
// A query runs inline on the calling goroutine in three fixed steps:
// PreProcess validates the input context, Process performs the read, and
// PostProcess refines the result. PostProcess defaults to the identity
// transform; a query opts in by implementing PostProcessor.
//
// Queries carry no lifecycle flags and errors propagate to the caller
// unchanged. Translating them into transport responses happens upstream
// in the HTTP and gRPC error handlers.
package query

import "context"

type (
	// Context represents the input type for a query.
	Context any

	// Result represents the result type for a query.
	Result any
)

// Query defines a side-effect-free lookup.
type Query[C Context, R Result] interface {
	// PreProcess validates the input context. A nil or structurally
	// incomplete context is a domain-level validation failure.
	PreProcess(ctx context.Context, c C) error

	// Process performs the read and produces the result.
	Process(ctx context.Context, c C) (R, error)
}

// PostProcessor is implemented by queries that refine the result after
// Process. Queries without it keep the result unchanged.
type PostProcessor[C Context, R Result] interface {
	PostProcess(ctx context.Context, c C, r R) (R, error)
}

// ExecFunc runs a query through the pipeline. Execute is the canonical
// implementation; wrappers compose around it.
type ExecFunc[C Context, R Result] func(context.Context, Query[C, R], C) (R, error)

// WrapFunc defines a middleware function for wrapping query execution.
type WrapFunc[C Context, R Result] func(ExecFunc[C, R]) ExecFunc[C, R]
