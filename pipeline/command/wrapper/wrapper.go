// Package wrapper provides middleware for the command pipeline.
//
// Wrappers compose over command.ExecFunc, adding cross-cutting concerns
// such as panic recovery, tracing and alerting around command execution
// without changing the pipeline's contract.
package wrapper
