package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// ReadinessChecker reports whether the service can serve predictions.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// HealthzHandler reports liveness.
func HealthzHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// ReadyzHandler reports 200 when checker is ready and 503 otherwise. When
// checker also exposes CheckedAt, the time of the last check is included.
func ReadyzHandler(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		body := map[string]string{"status": "ready"}
		if c, ok := checker.(interface{ CheckedAt() time.Time }); ok {
			if at := c.CheckedAt(); !at.IsZero() {
				body["checked_at"] = at.UTC().Format(time.RFC3339)
			}
		}

		if err := checker.CheckReadiness(ctx); err != nil {
			body["status"] = "not ready"
			body["error"] = err.Error()
			writeJSON(w, http.StatusServiceUnavailable, body)
			return
		}
		writeJSON(w, http.StatusOK, body)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
