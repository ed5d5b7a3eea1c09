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

	httpadapter "github.com/couchcryptid/crop-advisory-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/crop-advisory-service/internal/adapter/kafka"
	"github.com/couchcryptid/crop-advisory-service/internal/adapter/stormglass"
	"github.com/couchcryptid/crop-advisory-service/internal/advisory"
	"github.com/couchcryptid/crop-advisory-service/internal/config"
	"github.com/couchcryptid/crop-advisory-service/internal/domain"
	"github.com/couchcryptid/crop-advisory-service/internal/location"
	"github.com/couchcryptid/crop-advisory-service/internal/observability"
	"github.com/couchcryptid/crop-advisory-service/internal/pipeline"
)

// alwaysReady is the readiness checker when the sweep is disabled.
type alwaysReady struct{}

func (alwaysReady) CheckReadiness(context.Context) error { return nil }

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	client := stormglass.NewClient(cfg, clock, metrics, logger)
	provider := stormglass.NewCachedProvider(client, cfg.WeatherCacheSize, cfg.WeatherCacheTTL, clock, metrics)
	logger.Info("weather cache enabled", "size", cfg.WeatherCacheSize, "ttl", cfg.WeatherCacheTTL)

	directory := location.New()
	svc := advisory.New(provider, domain.DefaultCatalog(), clock, metrics, logger,
		advisory.WithTopN(cfg.TopCrops),
		advisory.WithConcurrency(cfg.SweepConcurrency),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		ready  httpadapter.ReadinessChecker = alwaysReady{}
		writer *kafkaadapter.Writer
	)
	if cfg.SweepEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		p := pipeline.New(svc, writer, directory.All(), clock, cfg.SweepInterval, logger, metrics)
		ready = p

		// Start advisory sweep.
		go func() {
			if err := p.Run(ctx); err != nil {
				logger.Error("sweep error", "error", err)
			}
		}()
	} else {
		logger.Info("advisory sweep disabled")
	}

	api := httpadapter.NewAPI(svc, directory, logger)
	srv := httpadapter.NewServer(cfg.HTTPAddr, cfg.CORSAllowedOrigins, ready, api, metrics, logger)

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
