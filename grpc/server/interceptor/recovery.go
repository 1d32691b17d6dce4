package interceptor

import (
	"context"
	"fmt"
	"runtime"

	"github.com/code19m/errx"
	"google.golang.org/grpc"

	"github.com/forja-labs/pkg/grpc/server"
	"github.com/forja-labs/pkg/logger"
)

// NewRecovery creates an interceptor that recovers from panics in gRPC
// handlers, logs the stack trace and converts the panic into a structured
// error that is safe to return to clients.
func NewRecovery(log logger.Logger) server.Interceptor {
	return server.Interceptor{
		Priority: 900,
		Handler: func(
			ctx context.Context,
			req any,
			_ *grpc.UnaryServerInfo,
			handler grpc.UnaryHandler,
		) (resp any, err error) {
			defer func() {
				if r := recover(); r != nil {
					stackTrace := make([]byte, 4096) // 4KB
					stackTrace = stackTrace[:runtime.Stack(stackTrace, false)]

					log.
						Named("recovery_interceptor").
						WithContext(ctx).
						With("stack_trace", string(stackTrace)).
						With("panic_value", fmt.Sprintf("%v", r)).
						Error("panic recovered")

					err = errx.New("panic recovered at recovery_interceptor", errx.WithDetails(errx.D{
						"stack_trace": string(stackTrace),
						"panic_value": fmt.Sprintf("%v", r),
					}))
				}
			}()

			return handler(ctx, req)
		},
	}
}
