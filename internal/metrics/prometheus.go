package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "fwi_predictor"

// Prometheus holds the Prometheus collectors fed by the Collector.
type Prometheus struct {
	Requests           *prometheus.CounterVec // labels: path
	Predictions        *prometheus.CounterVec // labels: outcome
	PredictionDuration prometheus.Histogram
	ModelReady         prometheus.Gauge
}

// NewPrometheus creates the collectors and registers them with reg.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	p := &Prometheus{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Requests received by path.",
		}, []string{"path"}),
		Predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "predictions_total",
			Help:      "Prediction requests by terminal outcome.",
		}, []string{"outcome"}),
		PredictionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "prediction_duration_seconds",
			Help:      "Time spent validating and predicting a single submission.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}),
		ModelReady: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "model_ready",
			Help:      "1 when the last canary prediction succeeded, 0 otherwise.",
		}),
	}

	reg.MustRegister(
		p.Requests,
		p.Predictions,
		p.PredictionDuration,
		p.ModelReady,
	)

	return p
}
