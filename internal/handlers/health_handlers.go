package handlers

import (
	"context"
	"net/http"
	"runtime"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
)

// Service and Version are reported by the health endpoints
var (
	Service = "marketadmin"
	Version = "dev"
)

// HealthCheck probes one dependency
type HealthCheck func(ctx context.Context) error

// HealthHandlers handles health check and monitoring endpoints
type HealthHandlers struct {
	checks  map[string]HealthCheck
	started time.Time
	timeout time.Duration
}

// NewHealthHandlers creates a new health handlers instance
func NewHealthHandlers(checks map[string]HealthCheck) *HealthHandlers {
	return &HealthHandlers{
		checks:  checks,
		started: time.Now(),
		timeout: 3 * time.Second,
	}
}

// HealthStatus represents the overall health status
type HealthStatus struct {
	Status     string            `json:"status"`
	Service    string            `json:"service"`
	Timestamp  string            `json:"timestamp"`
	Services   map[string]string `json:"services,omitempty"`
	Uptime     string            `json:"uptime"`
	Version    string            `json:"version"`
	Goroutines int               `json:"goroutines"`
}

// HealthCheck reports that the process is serving
func (h *HealthHandlers) HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, &HealthStatus{
		Status:     "healthy",
		Service:    Service,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Uptime:     time.Since(h.started).Round(time.Second).String(),
		Version:    Version,
		Goroutines: runtime.NumGoroutine(),
	})
}

// ReadinessCheck determines if the console's dependencies are reachable
func (h *HealthHandlers) ReadinessCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	health := &HealthStatus{
		Status:     "ready",
		Service:    Service,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Services:   make(map[string]string, len(h.checks)),
		Uptime:     time.Since(h.started).Round(time.Second).String(),
		Version:    Version,
		Goroutines: runtime.NumGoroutine(),
	}

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			health.Services[name] = "unhealthy: " + err.Error()
			health.Status = "not_ready"
			continue
		}
		health.Services[name] = "healthy"
	}

	status := http.StatusOK
	if health.Status != "ready" {
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, health)
}
