package handler

import (
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/angeloszaimis/fwi-predictor/internal/metrics"
	"github.com/angeloszaimis/fwi-predictor/internal/predictor"
	"github.com/angeloszaimis/fwi-predictor/internal/view"
)

// maxFormBytes bounds the POST body.
const maxFormBytes = 64 << 10

type PredictionHandler struct {
	logger           *slog.Logger
	predictor        *predictor.Predictor
	renderer         *view.Renderer
	metricsCollector *metrics.Collector
}

// NewPredictionHandler wires the handler. collector may be nil.
func NewPredictionHandler(logger *slog.Logger, p *predictor.Predictor, renderer *view.Renderer, collector *metrics.Collector) *PredictionHandler {
	return &PredictionHandler{
		logger:           logger,
		predictor:        p,
		renderer:         renderer,
		metricsCollector: collector,
	}
}

// Home serves the landing page.
func (h *PredictionHandler) Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	h.logRequest(r)
	h.render(w, view.PageIndex, nil)
}

// Predict serves the form on GET and runs the pipeline on POST.
func (h *PredictionHandler) Predict(w http.ResponseWriter, r *http.Request) {
	h.logRequest(r)

	switch r.Method {
	case http.MethodGet, http.MethodHead:
		h.render(w, view.PageHome, view.NewFormData(predictor.FieldNames, nil))
	case http.MethodPost:
		h.handleSubmit(w, r)
	default:
		w.Header().Set("Allow", "GET, HEAD, POST")
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *PredictionHandler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := parseForm(r); err != nil {
		h.logger.Warn("Failed to parse form", slog.String("error", err.Error()))
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	values := formValues(r)
	data := view.NewFormData(predictor.FieldNames, values)

	prediction, err := h.predictor.Predict(values)
	outcome := predictor.OutcomeOf(err)

	h.emitEvent(metrics.MetricEvent{
		Type:      metrics.EventPredictionCompleted,
		Timestamp: time.Now(),
		Outcome:   string(outcome),
		Duration:  time.Since(start),
	})

	if err != nil {
		if predictor.IsPredictionError(err) {
			h.logger.Error("Model prediction failed",
				slog.String("outcome", string(outcome)),
				slog.String("error", err.Error()))
		} else {
			h.logger.Info("Rejected submission",
				slog.String("outcome", string(outcome)),
				slog.String("error", err.Error()))
		}
		h.render(w, view.PageHome, data.WithError(err.Error()))
		return
	}

	h.logger.Info("Prediction served", slog.Float64("prediction", prediction))
	h.render(w, view.PageHome, data.WithPrediction(prediction))
}

func (h *PredictionHandler) render(w http.ResponseWriter, page string, data any) {
	if err := h.renderer.Render(w, http.StatusOK, page, data); err != nil {
		h.logger.Error("Failed to render page", slog.String("page", page), slog.String("error", err.Error()))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *PredictionHandler) logRequest(r *http.Request) {
	h.logger.Info("Received request",
		slog.String("from", extractClientIP(r)),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("user_agent", r.UserAgent()))

	h.emitEvent(metrics.MetricEvent{
		Type:      metrics.EventRequestReceived,
		Timestamp: time.Now(),
		Path:      r.URL.Path,
	})
}

func (h *PredictionHandler) emitEvent(event metrics.MetricEvent) {
	if h.metricsCollector == nil {
		return
	}
	h.metricsCollector.Emit(event)
}

// parseForm accepts both urlencoded and multipart bodies.
func parseForm(r *http.Request) error {
	err := r.ParseMultipartForm(maxFormBytes)
	if errors.Is(err, http.ErrNotMultipart) {
		return r.ParseForm()
	}
	return err
}

// formValues keeps only the first value of each known field. Absent fields
// stay absent.
func formValues(r *http.Request) map[string]string {
	values := make(map[string]string, len(predictor.FieldNames))
	for _, name := range predictor.FieldNames {
		if v, ok := r.PostForm[name]; ok && len(v) > 0 {
			values[name] = v[0]
		}
	}
	return values
}

func extractClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return strings.TrimSpace(strings.Split(xff, ",")[0])
	}

	host, _, _ := net.SplitHostPort(r.RemoteAddr)
	return host
}
