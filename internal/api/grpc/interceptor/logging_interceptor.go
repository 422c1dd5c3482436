package interceptor

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"library-backend/internal/logger"
	"library-backend/internal/metrics"
)

// RequestIDHeader is read from incoming metadata and echoed back in the response header.
const RequestIDHeader = "x-request-id"

type LoggingInterceptor struct{}

func NewLoggingInterceptor() *LoggingInterceptor {
	return &LoggingInterceptor{}
}

// Unary returns a server interceptor that tags each call with a request id,
// logs its completion and records its duration.
func (i *LoggingInterceptor) Unary() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()

		requestID := requestIDFromMetadata(ctx)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx = logger.ContextWithRequestID(ctx, requestID)
		_ = grpc.SetHeader(ctx, metadata.Pairs(RequestIDHeader, requestID))

		resp, err := handler(ctx, req)

		code := status.Code(err)
		elapsed := time.Since(start)
		metrics.RequestDuration.
			WithLabelValues("grpc", info.FullMethod, code.String()).
			Observe(float64(elapsed.Milliseconds()))

		log := logger.FromContext(ctx)
		if err != nil {
			log.Warn("gRPC call failed", "method", info.FullMethod, "code", code.String(), "duration_ms", strconv.FormatInt(elapsed.Milliseconds(), 10), "error", err)
		} else {
			log.Info("gRPC call", "method", info.FullMethod, "code", code.String(), "duration_ms", strconv.FormatInt(elapsed.Milliseconds(), 10))
		}
		return resp, err
	}
}

func requestIDFromMetadata(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if values := md.Get(RequestIDHeader); len(values) > 0 {
		return values[0]
	}
	return ""
}
