package interceptor

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/code19m/errx"
	"google.golang.org/grpc"

	"github.com/forja-labs/pkg/grpc/server"
	"github.com/forja-labs/pkg/logger"
)

// NewLogger creates an interceptor that logs every unary request with its
// method, duration and error details.
//
// The log level adapts to the outcome: internal errors log at ERROR,
// other errors (validation, not found, conflicts) at WARN, successes at INFO.
func NewLogger(log logger.Logger) server.Interceptor {
	return server.Interceptor{
		Priority: 600,
		Handler: func(
			ctx context.Context,
			req any,
			info *grpc.UnaryServerInfo,
			handler grpc.UnaryHandler,
		) (resp any, err error) {
			log := log.Named("logger_server_interceptor").WithContext(ctx)

			start := time.Now()

			resp, err = handleWithRecovery(ctx, req, handler)

			duration := time.Since(start)

			log = log.With(
				"method", info.FullMethod,
				"duration", duration,
			)

			msg := "processed incoming gRPC unary request"
			switch {
			case err == nil:
				log.Info(msg)
			case errx.GetType(err) == errx.T_Internal:
				log.With("error", getErrorObject(err)).Error(msg)
			default:
				log.With("error", getErrorObject(err)).Warn(msg)
			}

			return resp, err
		},
	}
}

// getErrorObject converts an error to a structured map for logging.
func getErrorObject(err error) any {
	e := errx.AsErrorX(err)

	return map[string]any{
		"code":    e.Code(),
		"message": e.Error(),
		"type":    e.Type().String(),
		"trace":   e.Trace(),
		"fields":  e.Fields(),
		"details": e.Details(),
	}
}

// handleWithRecovery guards the logger against panics from inner
// interceptors so the access log line is still written.
func handleWithRecovery(ctx context.Context, req any, handler grpc.UnaryHandler) (resp any, err error) {
	defer func() {
		if r := recover(); r != nil {
			stackTrace := make([]byte, 4096) // 4KB
			stackTrace = stackTrace[:runtime.Stack(stackTrace, false)]

			err = errx.New("panic recovered at logger_interceptor", errx.WithDetails(errx.D{
				"stack_trace": string(stackTrace),
				"panic_value": fmt.Sprintf("%v", r),
			}))
		}
	}()

	return handler(ctx, req)
}
