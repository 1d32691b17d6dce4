package interceptor

import (
	"context"

	"github.com/code19m/errx"
	"google.golang.org/grpc"
)

// NewErrorUnwrap creates an interceptor that converts gRPC status errors
// back into the internal ErrorX format. Errors that did not originate from
// ErrorX are returned unchanged.
func NewErrorUnwrap() grpc.UnaryClientInterceptor {
	return func(
		ctx context.Context,
		method string,
		req, reply any,
		cc *grpc.ClientConn,
		invoker grpc.UnaryInvoker,
		opts ...grpc.CallOption,
	) error {
		err := invoker(ctx, method, req, reply, cc, opts...)
		ok, e := errx.FromGRPCError(err)
		if !ok {
			return err
		}

		return e
	}
}
