package interceptor

import (
	"context"
	"time"

	"google.golang.org/grpc"

	"github.com/forja-labs/pkg/grpc/server"
)

// NewTimeout creates an interceptor that enforces a maximum execution time
// for unary handlers. Cancellation propagates to downstream operations
// through the context.
func NewTimeout(duration time.Duration) server.Interceptor {
	return server.Interceptor{
		Priority: 800,
		Handler: func(
			ctx context.Context,
			req any,
			_ *grpc.UnaryServerInfo,
			handler grpc.UnaryHandler,
		) (any, error) {
			ctx, cancel := context.WithTimeout(ctx, duration)
			defer cancel()
			return handler(ctx, req)
		},
	}
}
