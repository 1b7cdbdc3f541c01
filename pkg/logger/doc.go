// Package logger builds the application slog.Logger: text output for
// development, JSON in production, with the level taken from configuration.
package logger
