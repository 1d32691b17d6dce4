// Package pipeline provides the command/query execution pipeline shared by all
// business operations.
//
// Both pipelines follow the same three-phase template: a fixed orchestration
// function calls PreProcess, Process and PostProcess in order, each implemented
// per concrete operation. Commands are mutating operations carrying explicit
// valid/executed state flags and supporting asynchronous dispatch through a
// worker pool; queries are read-only operations that always run inline on the
// calling goroutine. Middleware wrappers add cross-cutting concerns such as
// tracing, panic recovery and alerting without touching business logic.
package pipeline
