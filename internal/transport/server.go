package transport

import (
	"context"
	"log/slog"
	"net"
	"time"

	"saloon/internal/configuration/properties"
	"saloon/internal/metrics"
	"saloon/internal/raftpb"

	"google.golang.org/grpc"
)

const defaultTimeout = time.Second

// NewServer builds the gRPC server carrying the raft service for h.
func NewServer(cfg *properties.TransportConfigProperties, h RaftHandler) *grpc.Server {
	timeout := cfg.Timeout
	if timeout <= 0 {
		slog.Warn("transport timeout must be positive, using default", "timeout", defaultTimeout)
		timeout = defaultTimeout
	}

	opts := []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(metrics.UnaryServerInterceptor(), timeoutInterceptor(timeout)),
	}
	if cfg.MaxConcurrentStreams > 0 {
		opts = append(opts, grpc.MaxConcurrentStreams(cfg.MaxConcurrentStreams))
	}

	s := grpc.NewServer(opts...)
	raftpb.RegisterRaftServer(s, NewRaftService(h))
	return s
}

// Start listens on the configured raft address and serves in the background.
func Start(cfg *properties.TransportConfigProperties, h RaftHandler) (net.Listener, *grpc.Server, error) {
	lis, err := net.Listen(cfg.Network, cfg.RaftAddr())
	if err != nil {
		return nil, nil, err
	}

	s := NewServer(cfg, h)
	slog.Info("raft transport listening", "addr", lis.Addr().String())
	go func() {
		if err := s.Serve(lis); err != nil {
			slog.Error("raft transport stopped serving", "error", err)
		}
	}()

	return lis, s, nil
}

func timeoutInterceptor(d time.Duration) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		ctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()

		return handler(ctx, req)
	}
}
