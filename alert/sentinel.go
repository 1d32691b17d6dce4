package alert

import (
	"context"
	"fmt"

	"github.com/code19m/errx"
	sentinelpb "github.com/code19m/sentinel/pb"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// SentinelProvider implements the Provider interface for sending alerts to
// a Sentinel service over gRPC.
type SentinelProvider struct {
	cfg            Config
	serviceName    string
	serviceVersion string
	client         sentinelpb.SentinelServiceClient
	conn           *grpc.ClientConn
}

// NewSentinelProvider creates a new SentinelProvider instance.
// serviceName and serviceVersion identify the source of the alerts.
// If cfg.Disable is true, it returns a disabled provider that never sends.
func NewSentinelProvider(cfg Config, serviceName, serviceVersion string) (*SentinelProvider, error) {
	if cfg.Disable {
		return &SentinelProvider{cfg: cfg}, nil
	}

	conn, err := grpc.NewClient(
		fmt.Sprintf("%s:%d", cfg.SentinelHost, cfg.SentinelPort),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithStatsHandler(otelgrpc.NewClientHandler()),
	)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	return &SentinelProvider{
		cfg:            cfg,
		serviceName:    serviceName,
		serviceVersion: serviceVersion,
		client:         sentinelpb.NewSentinelServiceClient(conn),
		conn:           conn,
	}, nil
}

// SendError sends an error report to the Sentinel service. The call is bound
// by cfg.SendTimeout and detached from the caller's cancellation so alerts
// survive request aborts. The provider's serviceVersion is added to details.
func (sp *SentinelProvider) SendError(
	ctx context.Context,
	errCode, msg, operation string,
	details map[string]string,
) error {
	if sp.cfg.Disable {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sp.cfg.SendTimeout)
	defer cancel()

	if details == nil {
		details = make(map[string]string)
	}
	details["service_version"] = sp.serviceVersion

	_, err := sp.client.SendError(ctx, &sentinelpb.ErrorInfo{
		Code:      errCode,
		Message:   msg,
		Service:   sp.serviceName,
		Operation: operation,
		Details:   details,
	})

	return errx.Wrap(err)
}

// Close closes the gRPC connection to the Sentinel service.
func (sp *SentinelProvider) Close() error {
	if sp.conn != nil {
		return sp.conn.Close()
	}
	return nil
}
