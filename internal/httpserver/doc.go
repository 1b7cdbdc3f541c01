// Package httpserver wraps http.Server with address validation, timeouts
// and graceful shutdown, and provides the liveness and readiness handlers.
package httpserver
