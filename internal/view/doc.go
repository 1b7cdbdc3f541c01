// Package view renders the HTML pages served by the predictor.
// Templates are embedded in the binary and parsed once at startup.
package view
