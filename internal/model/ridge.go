package model

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Ridge is a fitted linear model: coef·x + intercept.
type Ridge struct {
	coef      *mat.VecDense
	intercept float64
}

func NewRidge(coef []float64, intercept float64) (*Ridge, error) {
	if len(coef) == 0 {
		return nil, fmt.Errorf("ridge model has no coefficients")
	}

	return &Ridge{
		coef:      mat.NewVecDense(len(coef), append([]float64(nil), coef...)),
		intercept: intercept,
	}, nil
}

// Features returns the number of coefficients.
func (r *Ridge) Features() int {
	return r.coef.Len()
}

func (r *Ridge) Predict(row []float64) (float64, error) {
	if len(row) != r.coef.Len() {
		return 0, fmt.Errorf("X has %d features, but Ridge is expecting %d features as input", len(row), r.coef.Len())
	}

	x := mat.NewVecDense(len(row), row)
	return mat.Dot(r.coef, x) + r.intercept, nil
}
