package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jbacule/ph-earthquakes/internal/adapter/httpadapter"
	kafkaadapter "github.com/jbacule/ph-earthquakes/internal/adapter/kafka"
	"github.com/jbacule/ph-earthquakes/internal/adapter/usgs"
	"github.com/jbacule/ph-earthquakes/internal/config"
	"github.com/jbacule/ph-earthquakes/internal/dashboard"
	"github.com/jbacule/ph-earthquakes/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	client := usgs.NewClient(cfg.USGSBaseURL, cfg.USGSTimeout, logger)
	fallback := usgs.NewFallback()
	source := usgs.NewSource(client, fallback, metrics)

	// Event feed (feature-flagged via KAFKA_ENABLED).
	var (
		publisher dashboard.Publisher
		writer    *kafkaadapter.Writer
	)
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
		metrics.PublishEnabled.Set(1)
		logger.Info("kafka event feed enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	} else {
		logger.Info("kafka event feed disabled")
	}

	store := dashboard.NewStore(source, publisher, logger, metrics, cfg.SessionCapacity, cfg.CommandQueueSize)
	srv := httpadapter.NewServer(cfg.HTTPAddr, store, fallback.Raw(), logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	logger.Info("earthquake map service started",
		"usgs_base_url", cfg.USGSBaseURL,
		"usgs_timeout", cfg.USGSTimeout,
		"session_capacity", cfg.SessionCapacity,
	)

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := store.WaitPublished(shutdownCtx); err != nil {
			logger.Error("pending publishes not flushed", "error", err)
		}
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
