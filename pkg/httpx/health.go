package httpx

import (
	"context"
	"net/http"
	"time"
)

// HealthChecker is satisfied by any dependency that exposes a Ping method
// (CatalogStore, RedisClient, EventBus all qualify).
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthChecks maps a component name (as reported in the response) to its
// checker. Nil checkers are reported as "disabled" and do not degrade status.
type HealthChecks map[string]HealthChecker

type healthResponse struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components"`
}

// HealthHandler returns an http.HandlerFunc that probes all registered
// HealthCheckers and reports degraded status if any of them fail.
func HealthHandler(checks HealthChecks) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := healthResponse{
			Status:     "ok",
			Components: make(map[string]string, len(checks)),
		}

		for name, check := range checks {
			if check == nil {
				resp.Components[name] = "disabled"
				continue
			}
			if err := check.Ping(ctx); err != nil {
				resp.Status = "degraded"
				resp.Components[name] = "unreachable"
				continue
			}
			resp.Components[name] = "ok"
		}

		status := http.StatusOK
		if resp.Status != "ok" {
			status = http.StatusServiceUnavailable
		}
		JSON(w, status, resp)
	}
}

type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// StatusHandler answers liveness probes with {"status":"ok","message":...}.
// It touches no dependencies; use HealthHandler for readiness.
func StatusHandler(message string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		JSON(w, http.StatusOK, statusResponse{Status: "ok", Message: message})
	}
}
