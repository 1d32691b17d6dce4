// Package command implements the mutating half of the execution pipeline.
//
// A concrete command embeds Base for its lifecycle state and implements the
// three phases. PreProcess validates the input context and must mark the
// instance valid for execution to proceed; Process performs the mutation and
// marks the instance executed on success; PostProcess finalizes the operation
// and runs only when the instance is executed. Base supplies an identity
// PostProcess so commands without finalization logic omit it.
//
// Commands run synchronously by default. Binding a workpool and enabling the
// async flag moves the whole phase sequence onto a pool worker while the
// caller still blocks for the outcome, so the observable contract is the
// same in both modes.
//
// A command instance holds mutable state (input context, result, flags) and
// is not safe for concurrent Execute calls. Use one instance per invocation
// or synchronize externally.
package command

import (
	"context"

	"github.com/forja-labs/pkg/workpool"
)

// EmptyResult is a placeholder type for commands that do not return a result.
type (
	EmptyResult = struct{}
)

type (
	// Context represents the input type for a command.
	Context any

	// Result represents the result type for a command.
	Result any
)

// Command defines a three-phase mutating operation.
//
// The phase methods are implemented per concrete command; the state accessors
// are provided by embedding Base.
type Command[C Context, R Result] interface {
	// PreProcess validates the input context. It must call SetValid(true)
	// to allow Process to run.
	PreProcess(ctx context.Context) error

	// Process performs the mutation. It must call SetExecuted(true) on
	// success to allow PostProcess to run.
	Process(ctx context.Context) error

	// PostProcess finalizes the operation. Base provides an identity
	// implementation that does nothing.
	PostProcess(ctx context.Context) error

	SetContext(C)
	Context() C
	SetResult(R)
	Result() R
	SetValid(bool)
	Valid() bool
	SetExecuted(bool)
	Executed() bool
	SetAsync(bool)
	Async() bool
	Bind(*workpool.Pool)
	Executor() *workpool.Pool
}

// Base carries the lifecycle state of a command: the input context, the
// produced result and the valid/executed/async flags. All flags are false
// on a fresh instance. Embed it by pointer-receiver convention:
//
//	type CreateOrder struct {
//		command.Base[OrderInput, OrderOutput]
//		repo repogen.CommandRepo[Order, OrderFilter]
//	}
type Base[C Context, R Result] struct {
	input    C
	result   R
	valid    bool
	executed bool
	async    bool
	executor *workpool.Pool
}

// PostProcess is the default finalization phase: it does nothing.
func (b *Base[C, R]) PostProcess(context.Context) error { return nil }

// SetContext sets the input context for the next execution.
func (b *Base[C, R]) SetContext(c C) { b.input = c }

// Context returns the input context.
func (b *Base[C, R]) Context() C { return b.input }

// SetResult stores the result produced by Process or PostProcess.
func (b *Base[C, R]) SetResult(r R) { b.result = r }

// Result returns the stored result. Repeated reads after one execution
// return the same value without re-running any phase.
func (b *Base[C, R]) Result() R { return b.result }

// SetValid marks the outcome of PreProcess validation.
func (b *Base[C, R]) SetValid(v bool) { b.valid = v }

// Valid reports whether PreProcess affirmed the input context.
func (b *Base[C, R]) Valid() bool { return b.valid }

// SetExecuted marks that Process completed its mutation.
func (b *Base[C, R]) SetExecuted(v bool) { b.executed = v }

// Executed reports whether Process completed its mutation.
func (b *Base[C, R]) Executed() bool { return b.executed }

// SetAsync selects the dispatch mode for the next execution.
// Async execution requires a bound workpool.
func (b *Base[C, R]) SetAsync(v bool) { b.async = v }

// Async reports the dispatch mode.
func (b *Base[C, R]) Async() bool { return b.async }

// Bind attaches the task executor used for async dispatch.
func (b *Base[C, R]) Bind(p *workpool.Pool) { b.executor = p }

// Executor returns the bound task executor, or nil.
func (b *Base[C, R]) Executor() *workpool.Pool { return b.executor }
