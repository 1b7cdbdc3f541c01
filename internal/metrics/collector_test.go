package metrics_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/angeloszaimis/fwi-predictor/internal/metrics"
)

var _ = Describe("Collector", func() {
	var (
		collector *metrics.Collector
		prom      *metrics.Prometheus
		log       *slog.Logger
		ctx       context.Context
		cancel    context.CancelFunc
	)

	BeforeEach(func() {
		log = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelError,
		}))
		ctx, cancel = context.WithCancel(context.Background())
		prom = metrics.NewPrometheus(prometheus.NewRegistry())
		collector = metrics.NewCollector(100, log, prom)
	})

	AfterEach(func() {
		cancel()
		time.Sleep(10 * time.Millisecond)
	})

	Describe("Start and event processing", func() {
		BeforeEach(func() {
			collector.Start(ctx)
		})

		It("should process EventRequestReceived", func() {
			collector.Emit(metrics.MetricEvent{Type: metrics.EventRequestReceived, Path: "/predict"})

			Eventually(func() int64 {
				return collector.Snapshot().Requests["/predict"]
			}).Should(Equal(int64(1)))
			Expect(testutil.ToFloat64(prom.Requests.WithLabelValues("/predict"))).To(Equal(1.0))
		})

		It("should process EventPredictionCompleted", func() {
			collector.Emit(metrics.MetricEvent{
				Type:     metrics.EventPredictionCompleted,
				Outcome:  "predicted",
				Duration: 100 * time.Millisecond,
			})

			Eventually(func() int64 {
				return collector.Snapshot().Predictions.Outcomes["predicted"]
			}).Should(Equal(int64(1)))
			Expect(collector.Snapshot().Predictions.AvgResponse).To(Equal(100 * time.Millisecond))
			Expect(testutil.ToFloat64(prom.Predictions.WithLabelValues("predicted"))).To(Equal(1.0))
		})

		It("should process EventHealthChanged", func() {
			collector.Emit(metrics.MetricEvent{Type: metrics.EventHealthChanged, Healthy: true})

			Eventually(func() bool {
				return collector.Snapshot().ModelHealthy
			}).Should(BeTrue())
			Expect(testutil.ToFloat64(prom.ModelReady)).To(Equal(1.0))

			collector.Emit(metrics.MetricEvent{Type: metrics.EventHealthChanged, Healthy: false})
			Eventually(func() float64 {
				return testutil.ToFloat64(prom.ModelReady)
			}).Should(Equal(0.0))
		})
	})

	It("should drain events before signalling done", func() {
		for i := 0; i < 5; i++ {
			collector.Emit(metrics.MetricEvent{
				Type:    metrics.EventPredictionCompleted,
				Outcome: "missing_fields",
			})
		}

		done := collector.Start(ctx)
		cancel()

		Eventually(done).Should(BeClosed())
		Expect(collector.Snapshot().Predictions.Outcomes["missing_fields"]).To(Equal(int64(5)))
	})

	It("should drop events when the buffer is full", func() {
		small := metrics.NewCollector(1, log, nil)
		small.Emit(metrics.MetricEvent{Type: metrics.EventRequestReceived, Path: "/"})
		small.Emit(metrics.MetricEvent{Type: metrics.EventRequestReceived, Path: "/"})

		small.Start(ctx)
		cancel()

		Eventually(func() int64 {
			return small.Snapshot().Requests["/"]
		}).Should(Equal(int64(1)))
		Consistently(func() int64 {
			return small.Snapshot().Requests["/"]
		}, 50*time.Millisecond).Should(Equal(int64(1)))
	})

	Describe("Handler", func() {
		It("should serve the snapshot as JSON", func() {
			collector.Start(ctx)
			collector.Emit(metrics.MetricEvent{Type: metrics.EventRequestReceived, Path: "/"})
			Eventually(func() int64 {
				return collector.Snapshot().TotalRequests
			}).Should(Equal(int64(1)))

			w := httptest.NewRecorder()
			collector.Handler()(w, httptest.NewRequest(http.MethodGet, "/stats", nil))

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get("Content-Type")).To(Equal("application/json"))

			var snap metrics.Snapshot
			Expect(json.Unmarshal(w.Body.Bytes(), &snap)).To(Succeed())
			Expect(snap.TotalRequests).To(Equal(int64(1)))
		})
	})
})
