// Package metrics collects request and prediction metrics for the service.
//
// Request handlers emit MetricEvents on a buffered channel without blocking;
// a single collector goroutine folds them into:
//   - request counts per path
//   - prediction counts per outcome
//   - prediction latency (average, P50, P95, P99)
//   - model health as reported by the health check
//
// The in-memory view is served as JSON by Handler. When a Prometheus set is
// attached, the same events also update Prometheus collectors.
//
//	prom := metrics.NewPrometheus(prometheus.DefaultRegisterer)
//	collector := metrics.NewCollector(1000, logger, prom)
//	done := collector.Start(ctx)
//
//	collector.Emit(metrics.MetricEvent{
//		Type:     metrics.EventPredictionCompleted,
//		Outcome:  "predicted",
//		Duration: 2 * time.Millisecond,
//	})
//
// Pending events are drained when the context is cancelled; done is closed
// afterwards.
package metrics
