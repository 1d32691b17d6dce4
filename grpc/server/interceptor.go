package server

import "google.golang.org/grpc"

// Interceptor represents a gRPC unary interceptor with priority-based
// ordering. Higher priority values execute earlier in the chain, so the
// execution order does not depend on registration order.
type Interceptor struct {
	Priority int
	Handler  grpc.UnaryServerInterceptor
}

// byPriority implements sort.Interface for []Interceptor, highest first.
type byPriority []Interceptor

func (a byPriority) Len() int           { return len(a) }
func (a byPriority) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byPriority) Less(i, j int) bool { return a[i].Priority > a[j].Priority }
