// Package grpc exposes the standard gRPC health service for the share
// server. Storage reachability drives the reported status.
package grpc

import (
	"context"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dmitrijs2005/memorymap/internal/logging"
)

// ServiceName is the health service name clients can query besides "".
const ServiceName = "memorymap.ShareService"

// CheckFunc checks a dependency; nil means healthy.
type CheckFunc func(ctx context.Context) error

type HealthServer struct {
	address string
	logger  logging.Logger
	health  *health.Server
}

// NewHealthServer starts out NOT_SERVING until SetServing or Watch says
// otherwise.
func NewHealthServer(address string, l logging.Logger) *HealthServer {
	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)

	return &HealthServer{
		address: address,
		logger:  l.With("module", "grpc_server"),
		health:  hs,
	}
}

func (s *HealthServer) SetServing(serving bool) {
	st := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		st = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", st)
	s.health.SetServingStatus(ServiceName, st)
}

// Watch runs check now and then every interval until ctx is done, updating
// the status on each result.
func (s *HealthServer) Watch(ctx context.Context, check CheckFunc, interval time.Duration) {
	serving := false
	refresh := func() {
		err := check(ctx)
		ok := err == nil
		if ok != serving {
			if ok {
				s.logger.Info(ctx, "storage reachable, serving")
			} else {
				s.logger.Warn(ctx, "storage unreachable, not serving", "error", err)
			}
		}
		serving = ok
		s.SetServing(ok)
	}

	refresh()

	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			refresh()
		}
	}
}

// Run listens on the configured address and serves until ctx is done.
func (s *HealthServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

func (s *HealthServer) Serve(ctx context.Context, listen net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor))

	healthpb.RegisterHealthServer(srv, s.health)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
