package data

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"

	"coursework_service/pkg/logging"

	"go.uber.org/zap"
)

const HealthServiceName = "postgres"

type Pinger interface {
	Ping(ctx context.Context) error
}

// RegisterHealthService exposes the grpc health protocol and keeps the
// "postgres" status in step with the database until ctx is done.
func RegisterHealthService(ctx context.Context, srv *grpc.Server, db Pinger, interval time.Duration) *health.Server {
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)

	healthServer.SetServingStatus(HealthServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	go watchDBConnection(ctx, healthServer, db, interval)
	return healthServer
}

func watchDBConnection(ctx context.Context, healthServer *health.Server, db Pinger, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			healthServer.Shutdown()
			return
		case <-ticker.C:
			checkDB(ctx, healthServer, db)
		}
	}
}

func checkDB(ctx context.Context, healthServer *health.Server, db Pinger) {
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := db.Ping(pingCtx); err != nil {
		if logger, ok := logging.GetFromContext(ctx); ok {
			logger.Warn(ctx, "Database ping failed", zap.Error(err))
		}
		healthServer.SetServingStatus(HealthServiceName, grpc_health_v1.HealthCheckResponse_NOT_SERVING)
		return
	}
	healthServer.SetServingStatus(HealthServiceName, grpc_health_v1.HealthCheckResponse_SERVING)
}
