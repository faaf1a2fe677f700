package handler

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/rl1809/pcbook/internal/logger"
	"github.com/rl1809/pcbook/internal/metrics"
)

func UnaryServerInterceptor(log *logger.Logger, m *metrics.RPCMetrics) grpc.UnaryServerInterceptor {
	if log == nil {
		log = logger.Nop()
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		ctx = log.WithMethod(ctx, info.FullMethod)
		start := time.Now()

		resp, err := handler(ctx, req)

		observe(ctx, log, m, info.FullMethod, start, err)
		return resp, err
	}
}

func StreamServerInterceptor(log *logger.Logger, m *metrics.RPCMetrics) grpc.StreamServerInterceptor {
	if log == nil {
		log = logger.Nop()
	}
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		ctx := log.WithMethod(ss.Context(), info.FullMethod)
		start := time.Now()

		err := handler(srv, &observedStream{
			ServerStream: ss,
			ctx:          ctx,
			method:       info.FullMethod,
			metrics:      m,
		})

		observe(ctx, log, m, info.FullMethod, start, err)
		return err
	}
}

func observe(ctx context.Context, log *logger.Logger, m *metrics.RPCMetrics, method string, start time.Time, err error) {
	code := status.Code(err)
	elapsed := time.Since(start)
	m.ObserveHandled(method, code.String(), elapsed)

	ctx = log.WithFields(ctx, map[string]any{
		"code":        code.String(),
		"duration_ms": elapsed.Milliseconds(),
	})
	switch code {
	case codes.OK:
		log.Info(ctx, "rpc.complete")
	case codes.Internal, codes.Unknown:
		log.Error(ctx, "rpc.failed", err)
	default:
		log.Warn(ctx, "rpc.rejected: "+err.Error())
	}
}

// observedStream counts stream messages and carries the logging context.
type observedStream struct {
	grpc.ServerStream
	ctx     context.Context
	method  string
	metrics *metrics.RPCMetrics
}

func (s *observedStream) Context() context.Context {
	return s.ctx
}

func (s *observedStream) RecvMsg(m any) error {
	if err := s.ServerStream.RecvMsg(m); err != nil {
		return err
	}
	s.metrics.IncReceived(s.method)
	return nil
}

func (s *observedStream) SendMsg(m any) error {
	if err := s.ServerStream.SendMsg(m); err != nil {
		return err
	}
	s.metrics.IncSent(s.method)
	return nil
}
