package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/loopkey/identity-relay/internal/api/handler"
	"github.com/loopkey/identity-relay/internal/api/middleware"
	"github.com/loopkey/identity-relay/internal/core/ports"
	"github.com/loopkey/identity-relay/internal/core/service"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The provider handle is the single long-lived dependency; it is injected
// here once and shared read-only by every request.
func NewRouter(provider ports.IdentityProvider, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	// HTTP metrics live in a router-scoped registry so the router can be
	// rebuilt (tests); custom relay metrics register once in the default
	// registry at package init. /metrics exposes both.
	httpMetrics := prometheus.NewRegistry()
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "identity_relay",
		Registerer: httpMetrics,
	}))

	// --- Dependencies ---
	adminService := service.NewAdminService(provider)
	adminHandler := handler.NewAdminHandler(adminService)
	gate := middleware.AdminGate(adminService)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(provider)

	e.GET("/admin/health", healthHandler.Liveness)             // liveness  – is the process alive?
	e.GET("/admin/health/ready", readinessHandler.Readiness)   // readiness – is the provider reachable?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{prometheus.DefaultGatherer, httpMetrics},
	}))

	// --- Gated admin operations ---
	admin := e.Group("/admin", gate)
	admin.POST("/create-user", adminHandler.CreateUser)
	admin.GET("/list-users", adminHandler.ListUsers)
	admin.POST("/delete-user", adminHandler.DeleteUser)

	return e
}
