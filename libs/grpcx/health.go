package grpcx

import (
	"context"
	"log/slog"
	"net"
	"time"

	"github.com/randevubot/randevubot/libs/runtime"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// HealthServer exposes grpc.health.v1 for orchestrators that probe over gRPC.
// Serving status follows the same ready checks as /readyz.
type HealthServer struct {
	service  string
	logger   *slog.Logger
	checks   []runtime.ReadyCheck
	interval time.Duration
	health   *health.Server
	grpc     *grpc.Server
}

func NewHealthServer(service string, logger *slog.Logger, interval time.Duration, checks ...runtime.ReadyCheck) *HealthServer {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	hs := &HealthServer{
		service:  service,
		logger:   logger,
		checks:   checks,
		interval: interval,
		health:   health.NewServer(),
	}
	hs.grpc = grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(
			UnaryServerRequestIDInterceptor(),
			UnaryServerLoggingInterceptor(logger),
		),
	)
	healthpb.RegisterHealthServer(hs.grpc, hs.health)
	return hs
}

// Refresh runs the ready checks once and publishes the result for both the
// overall ("") and the named service.
func (hs *HealthServer) Refresh(ctx context.Context) {
	status := healthpb.HealthCheckResponse_SERVING
	if err := runtime.CheckAll(ctx, hs.checks...); err != nil {
		status = healthpb.HealthCheckResponse_NOT_SERVING
		if hs.logger != nil {
			hs.logger.Warn("health check failing", "err", err)
		}
	}
	hs.health.SetServingStatus("", status)
	hs.health.SetServingStatus(hs.service, status)
}

// Start listens on port and serves until ctx is cancelled.
func (hs *HealthServer) Start(ctx context.Context, port string) error {
	lis, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return err
	}
	hs.Refresh(ctx)

	go func() {
		hs.logger.Info("grpc server starting", "addr", lis.Addr().String())
		if err := hs.grpc.Serve(lis); err != nil {
			hs.logger.Error("grpc server error", "err", err)
		}
	}()

	go func() {
		ticker := time.NewTicker(hs.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				hs.health.Shutdown()
				hs.grpc.GracefulStop()
				return
			case <-ticker.C:
				hs.Refresh(ctx)
			}
		}
	}()
	return nil
}
