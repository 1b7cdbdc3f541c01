// Package model holds the pre-fitted artifacts consumed by the predictor:
// a standard scaler and a ridge regressor, both loaded once from JSON
// exports and read-only afterwards.
package model
