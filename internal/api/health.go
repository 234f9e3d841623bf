package api

import (
	"encoding/json"
	"net/http"
	"time"

	"consilium/pkg/logger"
)

// HealthHandler provides health check endpoints
type HealthHandler struct {
	log          *logger.Logger
	startTime    time.Time
	serviceName  string
	version      string
	llmAvailable bool
}

// NewHealthHandler creates a new health check handler
func NewHealthHandler(log *logger.Logger, serviceName, version string, llmAvailable bool) *HealthHandler {
	return &HealthHandler{
		log:          log,
		startTime:    time.Now(),
		serviceName:  serviceName,
		version:      version,
		llmAvailable: llmAvailable,
	}
}

// HealthStatus represents the overall health status
type HealthStatus struct {
	Status    string            `json:"status"` // "healthy" or "degraded"
	Service   string            `json:"service"`
	Version   string            `json:"version"`
	Uptime    string            `json:"uptime"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}

// HandleLiveness returns 200 OK if the service is running
// Used by Kubernetes liveness probe
func (h *HealthHandler) HandleLiveness(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status": "alive",
	})
}

// HandleHealth reports overall service health. The service degrades rather
// than fails when the LLM is not configured: deterministic analyses still run.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	checks := map[string]string{"llm": "configured"}
	if !h.llmAvailable {
		status = "degraded"
		checks["llm"] = "not configured"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(HealthStatus{
		Status:    status,
		Service:   h.serviceName,
		Version:   h.version,
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
	})
}
