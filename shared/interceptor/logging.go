package interceptor

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// NewLoggingInterceptor logs every unary call except the ones listed in quietMethods,
// which are only logged when they fail.
func NewLoggingInterceptor(logger *zerolog.Logger, quietMethods ...string) grpc.UnaryServerInterceptor {
	quiet := make(map[string]bool, len(quietMethods))
	for _, method := range quietMethods {
		quiet[method] = true
	}

	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		if err == nil && quiet[info.FullMethod] {
			return resp, nil
		}

		event := logger.Debug()
		if err != nil {
			event = logger.Warn().Err(err)
		}
		event.
			Str("method", info.FullMethod).
			Str("code", status.Code(err).String()).
			Dur("duration", time.Since(start)).
			Msg("grpc call completed")

		return resp, err
	}
}
