package model

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
)

type scalerArtifact struct {
	FeatureNames []string  `json:"feature_names"`
	Mean         []float64 `json:"mean"`
	Scale        []float64 `json:"scale"`
}

type ridgeArtifact struct {
	FeatureNames []string  `json:"feature_names"`
	Coef         []float64 `json:"coef"`
	Intercept    float64   `json:"intercept"`
}

// LoadScaler reads a scaler export and checks it against the expected
// feature order.
func LoadScaler(path string, features []string) (*StandardScaler, error) {
	var a scalerArtifact
	if err := readJSON(path, &a); err != nil {
		return nil, err
	}

	if err := checkFeatures(path, a.FeatureNames, len(a.Mean), features); err != nil {
		return nil, err
	}

	s, err := NewStandardScaler(a.Mean, a.Scale)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return s, nil
}

// LoadRidge reads a ridge regressor export and checks it against the
// expected feature order.
func LoadRidge(path string, features []string) (*Ridge, error) {
	var a ridgeArtifact
	if err := readJSON(path, &a); err != nil {
		return nil, err
	}

	if err := checkFeatures(path, a.FeatureNames, len(a.Coef), features); err != nil {
		return nil, err
	}

	r, err := NewRidge(a.Coef, a.Intercept)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return r, nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read artifact: %w", err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode artifact %s: %w", path, err)
	}

	return nil
}

func checkFeatures(path string, names []string, n int, features []string) error {
	if n != len(features) {
		return fmt.Errorf("%s: fitted on %d features, expected %d", path, n, len(features))
	}

	// feature_names is optional in exports.
	if len(names) > 0 && !slices.Equal(names, features) {
		return fmt.Errorf("%s: feature order %v does not match %v", path, names, features)
	}

	return nil
}
