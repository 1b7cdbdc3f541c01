// Package predictor implements the fire weather prediction pipeline.
// It validates raw form values, builds the fixed-order feature vector and
// runs it through a pre-fitted scaler and regressor.
package predictor
