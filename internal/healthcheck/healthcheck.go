package healthcheck

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/angeloszaimis/fwi-predictor/internal/predictor"
)

// Probe returns nil when the model can serve predictions.
type Probe func(ctx context.Context) error

// CanaryInput is a known-good submission used to probe the model.
var CanaryInput = map[string]string{
	predictor.FieldTemperature: "29",
	predictor.FieldRH:          "57",
	predictor.FieldWS:          "18",
	predictor.FieldRain:        "0",
	predictor.FieldFFMC:        "65.7",
	predictor.FieldDMC:         "3.4",
	predictor.FieldISI:         "1.3",
	predictor.FieldClasses:     "0",
	predictor.FieldRegion:      "1",
}

// PredictorProbe runs CanaryInput through p.
func PredictorProbe(p *predictor.Predictor) Probe {
	return func(_ context.Context) error {
		_, err := p.Predict(CanaryInput)
		return err
	}
}

// HealthCheck probes once immediately and then on every interval until ctx
// is cancelled. onChange is called whenever health flips; it may be nil.
func HealthCheck(
	ctx context.Context,
	status *Status,
	probe Probe,
	interval time.Duration,
	clock clockwork.Clock,
	logger *slog.Logger,
	onChange func(healthy bool),
) {
	check := func() {
		err := probe(ctx)
		if !status.Set(err, clock.Now()) {
			return
		}

		if err == nil {
			logger.Info("Model is ready")
		} else {
			logger.Warn("Model is not ready", slog.String("error", err.Error()))
		}

		if onChange != nil {
			onChange(err == nil)
		}
	}

	check()

	ticker := clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Health check stopped")
			return

		case <-ticker.Chan():
			check()
		}
	}
}
