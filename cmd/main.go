package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angeloszaimis/fwi-predictor/config"
	"github.com/angeloszaimis/fwi-predictor/internal/handler"
	"github.com/angeloszaimis/fwi-predictor/internal/healthcheck"
	"github.com/angeloszaimis/fwi-predictor/internal/httpserver"
	"github.com/angeloszaimis/fwi-predictor/internal/metrics"
	"github.com/angeloszaimis/fwi-predictor/internal/model"
	"github.com/angeloszaimis/fwi-predictor/internal/predictor"
	"github.com/angeloszaimis/fwi-predictor/internal/view"
	"github.com/angeloszaimis/fwi-predictor/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("err", err))
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, true, cfg.Server.Environment)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	p, err := loadPredictor(cfg, log)
	if err != nil {
		log.Error("Failed to load model artifacts", slog.Any("err", err))
		os.Exit(1)
	}

	renderer, err := view.New()
	if err != nil {
		log.Error("Failed to parse templates", slog.Any("err", err))
		os.Exit(1)
	}

	// Stopped only after the server has shut down.
	collectorCtx, stopCollector := context.WithCancel(context.Background())
	defer stopCollector()

	collector := metrics.NewCollector(cfg.Metrics.BufferSize, log, metrics.NewPrometheus(prometheus.DefaultRegisterer))
	collectorDone := collector.Start(collectorCtx)

	status := healthcheck.NewStatus()
	go healthcheck.HealthCheck(ctx, status, healthcheck.PredictorProbe(p),
		cfg.HealthCheckInterval(), clockwork.NewRealClock(), log,
		func(healthy bool) {
			collector.Emit(metrics.MetricEvent{
				Type:      metrics.EventHealthChanged,
				Timestamp: time.Now(),
				Healthy:   healthy,
			})
		})

	predictionHandler := handler.NewPredictionHandler(log, p, renderer, collector)
	mux := setupRouter(predictionHandler, collector, status, promhttp.Handler())

	srv, err := httpserver.New(cfg.Server.Address, mux, log)
	if err != nil {
		log.Error("Failed to create server", slog.Any("err", err))
		os.Exit(1)
	}

	srvErrCh := make(chan error, 1)

	go func() {
		srvErrCh <- srv.Start()
	}()

	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
		if err := srv.Shutdown(context.Background()); err != nil {
			log.Error("Error during shutdown", slog.Any("err", err))
		}
		stopCollector()
		<-collectorDone
	case err := <-srvErrCh:
		if err != nil {
			log.Error("Error starting server", slog.Any("err", err))
			os.Exit(1)
		}
	}
}

// loadPredictor reads both artifacts and checks they agree on the feature
// order the form produces.
func loadPredictor(cfg *config.Config, log *slog.Logger) (*predictor.Predictor, error) {
	scaler, err := model.LoadScaler(cfg.Model.ScalerPath, predictor.FieldNames)
	if err != nil {
		return nil, fmt.Errorf("load scaler: %w", err)
	}

	regressor, err := model.LoadRidge(cfg.Model.RegressorPath, predictor.FieldNames)
	if err != nil {
		return nil, fmt.Errorf("load regressor: %w", err)
	}

	log.Info("Loaded model artifacts",
		slog.String("scaler", cfg.Model.ScalerPath),
		slog.String("regressor", cfg.Model.RegressorPath),
		slog.Int("features", regressor.Features()))

	return predictor.New(scaler, regressor, log), nil
}
