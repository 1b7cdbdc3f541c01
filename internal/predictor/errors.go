package predictor

import (
	"errors"
	"strings"
)

// ValidationKind tells which input check rejected a request.
type ValidationKind string

const (
	MissingFields   ValidationKind = "missing_fields"
	NonNumericInput ValidationKind = "non_numeric_input"
)

const (
	nonNumericMessage       = "Please enter valid numeric values for all fields."
	predictionFailedMessage = "Model prediction failed. "
)

// ValidationError is returned when the submitted fields cannot be turned
// into a feature vector. Missing is only set for MissingFields.
type ValidationError struct {
	Kind    ValidationKind
	Missing []string
}

func (e *ValidationError) Error() string {
	if e.Kind == MissingFields {
		return "Missing fields: " + strings.Join(e.Missing, ", ")
	}
	return nonNumericMessage
}

// Stage tells which model artifact failed.
type Stage string

const (
	StageTransform Stage = "transform"
	StagePredict   Stage = "predict"
)

// PredictionError wraps a failure raised by the scaler or the regressor.
type PredictionError struct {
	Stage Stage
	Err   error
}

func (e *PredictionError) Error() string {
	return predictionFailedMessage + e.Err.Error()
}

func (e *PredictionError) Unwrap() error {
	return e.Err
}

// IsMissingFields reports whether err is a MissingFields validation error.
func IsMissingFields(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve) && ve.Kind == MissingFields
}

// IsNonNumeric reports whether err is a NonNumericInput validation error.
func IsNonNumeric(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve) && ve.Kind == NonNumericInput
}

// IsPredictionError reports whether err came from the scaler or regressor.
func IsPredictionError(err error) bool {
	var pe *PredictionError
	return errors.As(err, &pe)
}
