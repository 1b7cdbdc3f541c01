// Package healthcheck periodically runs a canary prediction against the
// loaded model artifacts and records whether the service is ready.
package healthcheck
