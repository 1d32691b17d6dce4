// Package interceptor provides unary client interceptors:
// NewMetaForward copies request meta into outgoing gRPC metadata and
// NewErrorUnwrap converts gRPC status errors back into the ErrorX format.
package interceptor
