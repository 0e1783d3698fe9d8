package data

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

type fakePinger struct {
	err error
}

func (p *fakePinger) Ping(context.Context) error {
	return p.err
}

func status(t *testing.T, hs *health.Server) grpc_health_v1.HealthCheckResponse_ServingStatus {
	t.Helper()
	resp, err := hs.Check(context.Background(), &grpc_health_v1.HealthCheckRequest{Service: HealthServiceName})
	require.NoError(t, err)
	return resp.GetStatus()
}

func TestCheckDB(t *testing.T) {
	ctx := context.Background()
	hs := health.NewServer()
	db := &fakePinger{}

	checkDB(ctx, hs, db)
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, status(t, hs))

	db.err = errors.New("connection refused")
	checkDB(ctx, hs, db)
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_NOT_SERVING, status(t, hs))

	db.err = nil
	checkDB(ctx, hs, db)
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, status(t, hs))
}
