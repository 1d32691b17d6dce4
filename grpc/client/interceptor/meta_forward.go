package interceptor

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"github.com/forja-labs/pkg/meta"
)

// forwardedKeys are the meta keys propagated to downstream services.
var forwardedKeys = []meta.ContextKey{
	meta.TraceID,
	meta.ActorID,
	meta.ActorType,
	meta.ActorRole,
	meta.IPAddress,
	meta.UserAgent,
	meta.AcceptLanguage,
	meta.XClientAppName,
	meta.XClientAppVersion,
}

// NewMetaForward creates an interceptor that forwards request meta from the
// context into outgoing gRPC metadata.
func NewMetaForward() grpc.UnaryClientInterceptor {
	return func(
		ctx context.Context,
		method string,
		req, reply any,
		cc *grpc.ClientConn,
		invoker grpc.UnaryInvoker,
		opts ...grpc.CallOption,
	) error {
		ctxData := meta.ExtractMetaFromContext(ctx)

		kv := make([]string, 0, len(forwardedKeys)*2)
		for _, k := range forwardedKeys {
			if v, ok := ctxData[k]; ok && v != "" {
				kv = append(kv, string(k), v)
			}
		}

		ctx = metadata.AppendToOutgoingContext(ctx, kv...)
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}
