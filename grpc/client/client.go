// Package client provides gRPC client connections with a service host map,
// OpenTelemetry instrumentation and the standard client interceptors.
package client

import (
	"github.com/code19m/errx"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/forja-labs/pkg/grpc/client/interceptor"
)

// Config maps logical service names to their "host:port" addresses.
type Config map[string]string

// ServiceHost returns the address of the named service.
func (c Config) ServiceHost(name string) (string, error) {
	host, ok := c[name]
	if !ok || host == "" {
		return "", errx.New("[grpc] unknown service host", errx.WithDetails(errx.D{
			"service": name,
		}))
	}
	return host, nil
}

// NewConn opens a client connection to the named service with OpenTelemetry
// stats, meta forwarding and ErrorX unwrapping wired in. Extra dial options
// are appended after the defaults.
func NewConn(cfg Config, serviceName string, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	host, err := cfg.ServiceHost(serviceName)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	dialOpts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithStatsHandler(otelgrpc.NewClientHandler()),
		grpc.WithChainUnaryInterceptor(
			interceptor.NewMetaForward(),
			interceptor.NewErrorUnwrap(),
		),
	}
	dialOpts = append(dialOpts, opts...)

	conn, err := grpc.NewClient(host, dialOpts...)
	if err != nil {
		return nil, errx.Wrap(err, errx.WithDetails(errx.D{
			"service": serviceName,
			"host":    host,
		}))
	}

	return conn, nil
}
