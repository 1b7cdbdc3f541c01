package predictor

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Scaler normalizes a raw feature row.
type Scaler interface {
	Transform(row []float64) ([]float64, error)
}

// Regressor maps a scaled feature row to a single value.
type Regressor interface {
	Predict(row []float64) (float64, error)
}

// Outcome is the terminal state of a single prediction request.
type Outcome string

const (
	OutcomePredicted     Outcome = "predicted"
	OutcomeMissingFields Outcome = "missing_fields"
	OutcomeNonNumeric    Outcome = "non_numeric_input"
	OutcomeTransformErr  Outcome = "transform_error"
	OutcomePredictErr    Outcome = "predict_error"
)

// Outcomes lists every terminal state.
var Outcomes = []Outcome{
	OutcomePredicted,
	OutcomeMissingFields,
	OutcomeNonNumeric,
	OutcomeTransformErr,
	OutcomePredictErr,
}

// Predictor runs raw form values through the scaler and regressor. It holds
// no per-request state and is safe for concurrent use as long as the
// artifacts are.
type Predictor struct {
	scaler    Scaler
	regressor Regressor
	logger    *slog.Logger
}

func New(scaler Scaler, regressor Regressor, logger *slog.Logger) *Predictor {
	return &Predictor{
		scaler:    scaler,
		regressor: regressor,
		logger:    logger,
	}
}

// Predict validates values and returns the prediction rounded to two
// decimal places. Errors are *ValidationError or *PredictionError.
func (p *Predictor) Predict(values map[string]string) (float64, error) {
	row, err := BuildFeatureVector(values)
	if err != nil {
		return 0, err
	}

	scaled, err := p.scaler.Transform(row)
	if err != nil {
		return 0, &PredictionError{Stage: StageTransform, Err: err}
	}

	raw, err := p.regressor.Predict(scaled)
	if err != nil {
		return 0, &PredictionError{Stage: StagePredict, Err: err}
	}
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 0, &PredictionError{Stage: StagePredict, Err: fmt.Errorf("non-finite prediction %v", raw)}
	}

	p.logger.Debug("Raw prediction", slog.Float64("value", raw))

	return Round2(raw), nil
}

// BuildFeatureVector checks that every field is present and numeric and
// returns the values in FieldNames order.
func BuildFeatureVector(values map[string]string) ([]float64, error) {
	var missing []string
	for _, name := range FieldNames {
		if err := validation.Validate(strings.TrimSpace(values[name]), validation.Required); err != nil {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Kind: MissingFields, Missing: missing}
	}

	row := make([]float64, 0, len(FieldNames))
	for _, name := range FieldNames {
		v, ok := parseNumber(values[name])
		if !ok {
			return nil, &ValidationError{Kind: NonNumericInput}
		}
		row = append(row, v)
	}

	return row, nil
}

// parseNumber reads a decimal float the way a form user expects: surrounding
// whitespace and digit-separating underscores are allowed, hex literals are
// not, and out-of-range values become ±Inf.
func parseNumber(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)

	digits := strings.TrimLeft(s, "+-")
	if len(digits) > 1 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'X') {
		return 0, false
	}

	if strings.Contains(s, "_") {
		if !underscoresBetweenDigits(s) {
			return 0, false
		}
		s = strings.ReplaceAll(s, "_", "")
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return v, true
		}
		return 0, false
	}

	return v, true
}

func underscoresBetweenDigits(s string) bool {
	isDigit := func(b byte) bool { return b >= '0' && b <= '9' }

	for i := 0; i < len(s); i++ {
		if s[i] != '_' {
			continue
		}
		if i == 0 || i == len(s)-1 || !isDigit(s[i-1]) || !isDigit(s[i+1]) {
			return false
		}
	}
	return true
}

// Round2 rounds half away from zero to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// OutcomeOf maps the error returned by Predict to its terminal state.
func OutcomeOf(err error) Outcome {
	if err == nil {
		return OutcomePredicted
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		if ve.Kind == MissingFields {
			return OutcomeMissingFields
		}
		return OutcomeNonNumeric
	}

	var pe *PredictionError
	if errors.As(err, &pe) && pe.Stage == StageTransform {
		return OutcomeTransformErr
	}

	return OutcomePredictErr
}
