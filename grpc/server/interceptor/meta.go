package interceptor

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"github.com/forja-labs/pkg/grpc/server"
	"github.com/forja-labs/pkg/meta"
)

// forwardedKeys are the meta keys copied from incoming gRPC metadata into
// the request context.
var forwardedKeys = []meta.ContextKey{
	meta.ActorID,
	meta.ActorType,
	meta.ActorRole,
	meta.IPAddress,
	meta.UserAgent,
	meta.AcceptLanguage,
	meta.XClientAppName,
	meta.XClientAppVersion,
}

// NewMetaInject creates an interceptor that injects request metadata into
// the context: the trace id (from the active span, incoming metadata, or a
// fresh UUID), forwarded client meta keys, and the service identity.
func NewMetaInject(serviceName, serviceVersion string) server.Interceptor {
	return server.Interceptor{
		Priority: 100,
		Handler: func(
			ctx context.Context,
			req any,
			_ *grpc.UnaryServerInfo,
			handler grpc.UnaryHandler,
		) (any, error) {
			metaData := map[meta.ContextKey]string{
				meta.TraceID:        getTraceID(ctx),
				meta.ServiceName:    serviceName,
				meta.ServiceVersion: serviceVersion,
			}

			if md, ok := metadata.FromIncomingContext(ctx); ok {
				for _, k := range forwardedKeys {
					if values := md.Get(string(k)); len(values) > 0 {
						metaData[k] = values[0]
					}
				}
			}

			ctx = meta.InjectMetaToContext(ctx, metaData)

			return handler(ctx, req)
		},
	}
}

// getTraceID obtains a trace id from the active span, then from incoming
// metadata, and finally generates a new UUID so every request carries one.
func getTraceID(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	if span.SpanContext().HasTraceID() {
		return span.SpanContext().TraceID().String()
	}

	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(string(meta.TraceID)); len(values) > 0 {
			return values[0]
		}
	}

	return uuid.NewString()
}
