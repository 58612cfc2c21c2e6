package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/loopkey/identity-relay/internal/core/ports"
)

// HealthHandler handles GET /admin/health — liveness probe.
// Returns 200 immediately; confirms the process is alive. No auth required.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

type healthResponse struct {
	OK bool `json:"ok"`
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{OK: true})
}

// ReadinessHandler handles GET /admin/health/ready — readiness probe.
// Checks identity-provider reachability before declaring the service ready.
type ReadinessHandler struct {
	provider ports.IdentityProvider
}

func NewReadinessHandler(provider ports.IdentityProvider) *ReadinessHandler {
	return &ReadinessHandler{provider: provider}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

func (h *ReadinessHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	deps := make(map[string]dependencyStatus)
	status := "ok"
	httpStatus := http.StatusOK

	if err := h.provider.Ping(ctx); err != nil {
		deps["identity_provider"] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	} else {
		deps["identity_provider"] = dependencyStatus{Status: "ok"}
	}

	return c.JSON(httpStatus, readinessResponse{
		Status:       status,
		Dependencies: deps,
	})
}
