package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"saloon/internal/configuration"
	"saloon/internal/logging"
	"saloon/internal/metrics"
	"saloon/internal/transport"
)

const configDir = "configs"

func main() {
	if err := run(); err != nil {
		slog.Error("saloon exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancel()

	cfg, err := configuration.Load(configDir)
	if err != nil {
		return err
	}
	provider := configuration.NewProvider(cfg)

	logging.Init(provider.GetApplication().LogLevel)
	slog.Info("starting saloon", "profile", provider.GetApplication().Profile)

	if mc := provider.GetMetrics(); mc.Enabled {
		ms := metrics.NewServer(mc.Address)
		if err := ms.Start(); err != nil {
			return err
		}
		defer ms.Stop()
	}

	services, err := NewServices(provider)
	if err != nil {
		return err
	}
	defer func() {
		if err := services.Close(); err != nil {
			slog.Error("shutdown incomplete", "error", err)
		}
	}()

	_, server, err := transport.Start(provider.GetTransport(), services.Node)
	if err != nil {
		return err
	}
	defer server.GracefulStop()

	services.Node.Start()
	st := services.Node.Status()
	slog.Info("saloon ready",
		"node_id", st.ID,
		"term", st.Term,
		"last_log_index", st.LastLogIndex,
		"applied", st.LastApplied,
	)

	<-ctx.Done()
	slog.Info("shutting down saloon")
	return nil
}
