package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

type healthResponse struct {
	Success   bool              `json:"success"`
	Message   string            `json:"message"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// HealthHandlerFunc returns an http.HandlerFunc that pings every configured dependency.
// It responds 200 when all pings succeed and 503 otherwise.
func HealthHandlerFunc(checks map[string]Pinger, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		resp := healthResponse{
			Success:   true,
			Message:   "Travel API is running successfully",
			Timestamp: time.Now().UTC(),
			Version:   Version,
		}
		status := http.StatusOK

		if len(checks) > 0 {
			resp.Checks = make(map[string]string, len(checks))
		}
		for name, p := range checks {
			if err := p.Ping(ctx); err != nil {
				log.Error("health check: ping failed", "dependency", name, "err", err)
				resp.Checks[name] = "error"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[name] = "ok"
		}

		if status != http.StatusOK {
			resp.Success = false
			resp.Message = "Travel API is degraded"
		}

		writeJSON(w, status, resp)
	}
}
