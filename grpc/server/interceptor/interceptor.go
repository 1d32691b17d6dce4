// Package interceptor provides unary server interceptors for the gRPC
// server wrapper.
//
// Interceptors carry priorities so the chain order stays stable:
// recovery (900) -> timeout (800) -> logger (600) -> meta (100) ->
// error wrap (0, plain grpc.UnaryServerInterceptor applied last).
package interceptor
