package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"recordcheck/pkg/platform/httputil"
)

// Probe checks one dependency for /health.
type Probe struct {
	Name  string
	Check func(ctx context.Context) error
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status       string            `json:"status"`
	Service      string            `json:"service"`
	Timestamp    time.Time         `json:"timestamp"`
	Tier         string            `json:"validation_tier"`
	Backend      string            `json:"process_backend"`
	Dependencies map[string]string `json:"dependencies"`
}

// Health reports dependency state. A failing probe or the fallback tier marks the service
// degraded; the endpoint still answers 200 so the process is not restarted for it.
// Probe errors are logged, never returned: the endpoint is unauthenticated.
func Health(logger *slog.Logger, tier, backend string, degraded bool, probes ...Probe) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := HealthResponse{
			Status:       "healthy",
			Service:      "recordcheck",
			Timestamp:    time.Now().UTC(),
			Tier:         tier,
			Backend:      backend,
			Dependencies: make(map[string]string, len(probes)),
		}
		if degraded {
			resp.Status = "degraded"
		}
		for _, p := range probes {
			if err := p.Check(ctx); err != nil {
				logger.WarnContext(ctx, "health probe failed", "dependency", p.Name, "error", err)
				resp.Dependencies[p.Name] = "error"
				resp.Status = "degraded"
				continue
			}
			resp.Dependencies[p.Name] = "connected"
		}
		httputil.WriteJSON(w, http.StatusOK, resp)
	}
}
