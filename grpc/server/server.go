package server

import (
	"net"
	"sort"

	"github.com/code19m/errx"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"
)

// Server wraps the standard gRPC server with priority-ordered interceptors
// and OpenTelemetry stats instrumentation.
type Server struct {
	cfg        Config
	server     *grpc.Server
	listenAddr string
}

// New creates a new gRPC server with the given configuration and interceptors.
func New(cfg Config, interceptors ...Interceptor) *Server {
	sort.Sort(byPriority(interceptors))

	unaryInterceptors := make([]grpc.UnaryServerInterceptor, 0, len(interceptors))
	for _, ic := range interceptors {
		if ic.Handler != nil {
			unaryInterceptors = append(unaryInterceptors, ic.Handler)
		}
	}

	options := []grpc.ServerOption{
		grpc.MaxRecvMsgSize(MaxReceiveMessageLength),
		grpc.MaxSendMsgSize(MaxSendMessageLength),
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
	}

	if len(unaryInterceptors) > 0 {
		options = append(options, grpc.ChainUnaryInterceptor(unaryInterceptors...))
	}

	return &Server{
		cfg:        cfg,
		server:     grpc.NewServer(options...),
		listenAddr: cfg.Address(),
	}
}

// Register registers gRPC service implementations through a callback and
// enables reflection when configured.
func (s *Server) Register(registerFunc func(server *grpc.Server)) {
	registerFunc(s.server)
	if s.cfg.Reflection {
		reflection.Register(s.server)
	}
}

// Start binds the server to the configured address and serves until stopped.
func (s *Server) Start() error {
	socket, err := net.Listen("tcp", s.listenAddr)
	if err != nil {
		return errx.Wrap(err, errx.WithDetails(errx.D{"listen_addr": s.listenAddr}))
	}
	return s.server.Serve(socket)
}

// Addr returns the address on which the server listens.
func (s *Server) Addr() string {
	return s.listenAddr
}

// Stop gracefully stops the server.
func (s *Server) Stop() {
	s.server.GracefulStop()
}
