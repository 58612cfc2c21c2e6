package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/loopkey/identity-relay/internal/api/middleware"
	"github.com/loopkey/identity-relay/internal/core/domain"
)

// requireIdentity fast-fails when no resolved identity is present on the
// request context. Presence proves the admin gate ran; a route wired without
// it must not reach the provider.
func requireIdentity(c echo.Context) error {
	identity, _ := c.Get(middleware.IdentityKey).(*domain.Identity)
	if identity == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication identity")
	}
	return nil
}
