package interceptor

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const checkMethod = "/grpc.health.v1.Health/Check"

func TestLoggingInterceptor(t *testing.T) {
	t.Run("QuietMethodSucceeds", func(t *testing.T) {
		var buf bytes.Buffer
		logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
		intercept := NewLoggingInterceptor(&logger, checkMethod)

		resp, err := intercept(context.Background(), "req", &grpc.UnaryServerInfo{FullMethod: checkMethod},
			func(context.Context, any) (any, error) { return "ok", nil })

		require.NoError(t, err)
		assert.Equal(t, "ok", resp)
		assert.Empty(t, buf.String())
	})

	t.Run("QuietMethodFails", func(t *testing.T) {
		var buf bytes.Buffer
		logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
		intercept := NewLoggingInterceptor(&logger, checkMethod)

		_, err := intercept(context.Background(), "req", &grpc.UnaryServerInfo{FullMethod: checkMethod},
			func(context.Context, any) (any, error) { return nil, status.Error(codes.NotFound, "unknown service") })

		assert.Equal(t, codes.NotFound, status.Code(err))
		assert.Contains(t, buf.String(), `"code":"NotFound"`)
		assert.Contains(t, buf.String(), `"level":"warn"`)
	})

	t.Run("OtherMethod", func(t *testing.T) {
		var buf bytes.Buffer
		logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
		intercept := NewLoggingInterceptor(&logger, checkMethod)

		_, err := intercept(context.Background(), "req", &grpc.UnaryServerInfo{FullMethod: "/svc/Other"},
			func(context.Context, any) (any, error) { return "ok", nil })

		require.NoError(t, err)
		assert.Contains(t, buf.String(), `"method":"/svc/Other"`)
		assert.Contains(t, buf.String(), `"code":"OK"`)
	})
}
