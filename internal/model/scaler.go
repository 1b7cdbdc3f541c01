package model

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// StandardScaler applies (x - mean) / scale per feature.
type StandardScaler struct {
	mean  *mat.VecDense
	scale *mat.VecDense
}

// NewStandardScaler copies mean and scale. Zero scale entries are replaced
// with 1 so constant features pass through centred.
func NewStandardScaler(mean, scale []float64) (*StandardScaler, error) {
	if len(mean) == 0 {
		return nil, fmt.Errorf("scaler has no features")
	}
	if len(mean) != len(scale) {
		return nil, fmt.Errorf("scaler mean has %d entries, scale has %d", len(mean), len(scale))
	}

	s := make([]float64, len(scale))
	for i, v := range scale {
		if v == 0 {
			v = 1
		}
		s[i] = v
	}

	return &StandardScaler{
		mean:  mat.NewVecDense(len(mean), append([]float64(nil), mean...)),
		scale: mat.NewVecDense(len(s), s),
	}, nil
}

// Features returns the number of features the scaler was fitted on.
func (s *StandardScaler) Features() int {
	return s.mean.Len()
}

func (s *StandardScaler) Transform(row []float64) ([]float64, error) {
	if len(row) != s.mean.Len() {
		return nil, fmt.Errorf("X has %d features, but StandardScaler is expecting %d features as input", len(row), s.mean.Len())
	}

	x := mat.NewVecDense(len(row), append([]float64(nil), row...))
	x.SubVec(x, s.mean)
	x.DivElemVec(x, s.scale)

	return x.RawVector().Data, nil
}
