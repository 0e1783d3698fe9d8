package metadata

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"coursework_service/pkg/ctxdata"
)

func TestMetadataUnaryInterceptor(t *testing.T) {
	interceptor := NewMetadataUnaryInterceptor()
	info := &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}

	t.Run("CopiesTraceID", func(t *testing.T) {
		ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(
			"x-trace-id", "trace-123",
			"x-username", "alice",
		))

		var (
			traceID     string
			hasUsername bool
		)
		_, err := interceptor(ctx, nil, info, func(ctx context.Context, req interface{}) (interface{}, error) {
			traceID, _ = ctxdata.GetTraceID(ctx)
			_, hasUsername = ctxdata.GetUsername(ctx)
			return "ok", nil
		})
		require.NoError(t, err)
		assert.Equal(t, "trace-123", traceID)
		assert.False(t, hasUsername)
	})

	t.Run("NoMetadata", func(t *testing.T) {
		resp, err := interceptor(context.Background(), nil, info, func(ctx context.Context, req interface{}) (interface{}, error) {
			_, ok := ctxdata.GetTraceID(ctx)
			assert.False(t, ok)
			return "ok", nil
		})
		require.NoError(t, err)
		assert.Equal(t, "ok", resp)
	})
}
