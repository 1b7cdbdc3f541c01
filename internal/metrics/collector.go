package metrics

import (
	"context"
	"log/slog"
	"time"
)

type EventType string

const (
	EventRequestReceived     EventType = "request_received"
	EventPredictionCompleted EventType = "prediction_completed"
	EventHealthChanged       EventType = "health_changed"
)

type MetricEvent struct {
	Type      EventType
	Timestamp time.Time
	Path      string
	Outcome   string
	Duration  time.Duration
	Healthy   bool
}

type Collector struct {
	eventCh    chan MetricEvent
	metrics    *Metrics
	prometheus *Prometheus
	logger     *slog.Logger
}

// NewCollector creates a collector with the given channel buffer. prom may
// be nil.
func NewCollector(bufferSize int, logger *slog.Logger, prom *Prometheus) *Collector {
	return &Collector{
		eventCh:    make(chan MetricEvent, bufferSize),
		metrics:    NewMetrics(),
		prometheus: prom,
		logger:     logger,
	}
}

// Emit sends an event without blocking. Events are dropped when the buffer
// is full.
func (c *Collector) Emit(event MetricEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	select {
	case c.eventCh <- event:
	default:
		c.logger.Debug("Metrics buffer full, dropping event", slog.String("type", string(event.Type)))
	}
}

// Start runs the collector until ctx is cancelled. The returned channel is
// closed once pending events have been drained.
func (c *Collector) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		c.run(ctx)
	}()
	return done
}

func (c *Collector) run(ctx context.Context) {
	c.logger.Info("Metrics collector started")
	defer c.logger.Info("Metrics collector stopped")

	for {
		select {
		case event := <-c.eventCh:
			c.processEvent(event)
		case <-ctx.Done():
			c.drain()
			return
		}
	}
}

func (c *Collector) processEvent(event MetricEvent) {
	c.observe(event)

	switch event.Type {
	case EventRequestReceived:
		c.metrics.IncrementRequests(event.Path)

	case EventPredictionCompleted:
		c.metrics.RecordPrediction(event.Outcome, event.Duration)

	case EventHealthChanged:
		c.metrics.UpdateModelHealth(event.Healthy)
	}
}

func (c *Collector) observe(event MetricEvent) {
	if c.prometheus == nil {
		return
	}

	switch event.Type {
	case EventRequestReceived:
		c.prometheus.Requests.WithLabelValues(event.Path).Inc()

	case EventPredictionCompleted:
		c.prometheus.Predictions.WithLabelValues(event.Outcome).Inc()
		c.prometheus.PredictionDuration.Observe(event.Duration.Seconds())

	case EventHealthChanged:
		if event.Healthy {
			c.prometheus.ModelReady.Set(1)
		} else {
			c.prometheus.ModelReady.Set(0)
		}
	}
}

func (c *Collector) drain() {
	for {
		select {
		case event := <-c.eventCh:
			c.processEvent(event)
		default:
			return
		}
	}
}

func (c *Collector) Snapshot() Snapshot {
	return c.metrics.Snapshot()
}
