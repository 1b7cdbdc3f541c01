package main

import (
	"net/http"

	"github.com/angeloszaimis/fwi-predictor/internal/handler"
	"github.com/angeloszaimis/fwi-predictor/internal/httpserver"
	"github.com/angeloszaimis/fwi-predictor/internal/metrics"
)

func setupRouter(predictionHandler *handler.PredictionHandler, metricsCollector *metrics.Collector, ready httpserver.ReadinessChecker, promHandler http.Handler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", predictionHandler.Home)
	mux.HandleFunc("/predict", predictionHandler.Predict)
	mux.HandleFunc("GET /healthz", httpserver.HealthzHandler)
	mux.HandleFunc("GET /readyz", httpserver.ReadyzHandler(ready))
	mux.HandleFunc("GET /stats", metricsCollector.Handler())
	mux.Handle("GET /metrics", promHandler)

	return mux
}
