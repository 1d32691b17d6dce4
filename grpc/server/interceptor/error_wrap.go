package interceptor

import (
	"context"

	"github.com/code19m/errx"
	"google.golang.org/grpc"

	"github.com/forja-labs/pkg/grpc/server"
)

// NewErrorWrap creates an interceptor that converts internal ErrorX errors
// into gRPC status errors so full error information crosses the wire.
// It runs closest to the handler.
func NewErrorWrap(serviceName string) server.Interceptor {
	return server.Interceptor{
		Priority: 0,
		Handler: func(
			ctx context.Context,
			req any,
			_ *grpc.UnaryServerInfo,
			handler grpc.UnaryHandler,
		) (resp any, err error) {
			resp, err = handler(ctx, req)
			err = errx.ToGRPCError(err, errx.WithTracePrefix(serviceName))
			return resp, err
		},
	}
}
