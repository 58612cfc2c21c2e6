package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/loopkey/identity-relay/internal/api/metrics"
	"github.com/loopkey/identity-relay/internal/core/domain"
	"github.com/loopkey/identity-relay/internal/core/ports"
)

// IdentityKey is the echo context key the resolved caller identity is stored
// under when the gate permits a request.
const IdentityKey = "identity"

// AdminGate verifies the caller's bearer token against the identity provider
// and requires the resolved identity to carry the admin role claim.
//
// A malformed Authorization header (no "Bearer " prefix) is treated the same
// as a missing token.
func AdminGate(svc ports.AdminService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c.Request().Header.Get("Authorization"))
			if token == "" {
				metrics.GateDecisionsTotal.WithLabelValues("unauthenticated").Inc()
				return domain.ErrUnauthenticated
			}

			identity, err := svc.VerifyAdminToken(c.Request().Context(), token)
			if err != nil {
				metrics.GateDecisionsTotal.WithLabelValues(gateResult(err)).Inc()
				return err
			}

			metrics.GateDecisionsTotal.WithLabelValues("permitted").Inc()
			c.Set(IdentityKey, identity)
			return next(c)
		}
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func gateResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	case errors.Is(err, domain.ErrUnauthenticated):
		return "unauthenticated"
	default:
		return "fault"
	}
}
