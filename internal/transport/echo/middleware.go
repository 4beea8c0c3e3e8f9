package echo

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"supply-service/internal/audit"
	"supply-service/internal/auth"
	"supply-service/internal/rbac"
	"supply-service/pkg/metrics"
)

// Guard enforces resolver decisions on routes and records each outcome
type Guard struct {
	resolver *rbac.Resolver
	audit    *audit.Logger
	metrics  *metrics.Metrics
}

func NewGuard(resolver *rbac.Resolver, auditLog *audit.Logger, m *metrics.Metrics) *Guard {
	return &Guard{resolver: resolver, audit: auditLog, metrics: m}
}

// Check authorizes the request user for module/action and records the
// outcome. The returned error wraps rbac.ErrDenied on denial.
func (g *Guard) Check(c echo.Context, module rbac.Module, action rbac.Action) error {
	err := g.resolver.Authorize(auth.GetUser(c), module, action)
	g.record(c, module, action, "", err)
	return err
}

// CheckRoute is Check for a dashboard route
func (g *Guard) CheckRoute(c echo.Context, route string) (rbac.RouteRequirement, bool, error) {
	req, restricted := g.resolver.Requirement(route)
	err := g.resolver.AuthorizeRoute(auth.GetUser(c), route)
	if restricted {
		g.record(c, req.Module, req.Action, route, err)
	}
	return req, restricted, err
}

func (g *Guard) record(c echo.Context, module rbac.Module, action rbac.Action, route string, err error) {
	g.metrics.RecordAuthzDecision(string(module), string(action), err == nil)
	g.audit.LogDecision(c, string(module), string(action), route, err)
}

// RequireAction creates middleware that enforces an action on a module.
// Anonymous callers get 401, authenticated callers without the permission 403.
func (g *Guard) RequireAction(module rbac.Module, action rbac.Action) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := g.Check(c, module, action); err != nil {
				if errors.Is(err, rbac.ErrNilUser) {
					return respondError(c, http.StatusUnauthorized, "Unauthorized")
				}
				return respondError(c, http.StatusForbidden, "Forbidden")
			}

			return next(c)
		}
	}
}
