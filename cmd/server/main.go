package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"github.com/couchcryptid/wildfire-risk-service/internal/adapter/firms"
	"github.com/couchcryptid/wildfire-risk-service/internal/adapter/httpapi"
	kafkaadapter "github.com/couchcryptid/wildfire-risk-service/internal/adapter/kafka"
	"github.com/couchcryptid/wildfire-risk-service/internal/config"
	"github.com/couchcryptid/wildfire-risk-service/internal/observability"
	"github.com/couchcryptid/wildfire-risk-service/internal/risk"
	"github.com/couchcryptid/wildfire-risk-service/internal/store"
	"github.com/couchcryptid/wildfire-risk-service/internal/zones"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	fireStore := store.NewFireStore(cfg.DataDir, logger, metrics)

	// Active-fire check is feature-flagged; a nil checker disables it.
	var checker risk.ActiveFireChecker
	if cfg.ActiveFireEnabled {
		checker = firms.NewClient(cfg.ActiveFireURL, cfg.ActiveFireTimeout, metrics, logger)
		logger.Info("active fire check enabled", "timeout", cfg.ActiveFireTimeout)
	} else {
		logger.Info("active fire check disabled")
	}

	assessor := risk.NewAssessor(fireStore, checker, logger, metrics)
	zoneStore := zones.NewStore(cfg.ZoneTTL, clockwork.NewRealClock(), metrics)

	var broadcaster httpapi.Broadcaster
	var publisher *kafkaadapter.Publisher
	if cfg.BroadcastEnabled {
		publisher = kafkaadapter.NewPublisher(cfg.KafkaBrokers, cfg.KafkaZoneTopic, logger)
		broadcaster = publisher
		logger.Info("zone broadcast enabled", "topic", cfg.KafkaZoneTopic)
	} else {
		logger.Info("zone broadcast disabled")
	}

	srv := httpapi.NewServer(cfg.HTTPAddr, assessor, fireStore, zoneStore, broadcaster, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Warm the historical store before the first request needs it; the load
	// is idempotent, so an early request just waits on the same guard.
	go fireStore.EnsureLoaded()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("http server shutdown error", "error", err)
		}
		if publisher != nil {
			if err := publisher.Close(); err != nil {
				logger.Error("kafka publisher close error", "error", err)
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("service error", "error", err)
		os.Exit(1)
	}
	logger.Info("shutdown complete")
}
