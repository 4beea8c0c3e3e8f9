package echo

import (
	"time"

	"github.com/labstack/echo/v4"

	"supply-service/internal/auth"
	"supply-service/internal/http/middleware"
	"supply-service/internal/rbac"
	"supply-service/internal/stock"
	apperrors "supply-service/pkg/errors"
	"supply-service/pkg/validator"
)

const (
	queryQuantity = "quantity"
	queryStatus   = "status"

	msgRouteRequired = "route query parameter is required and must start with /"
	msgFieldRequired = "is required"
)

// registerRoutes registers all HTTP routes
func (s *Server) registerRoutes(sessions *auth.Middleware, limiter *middleware.RateLimiter) {
	s.echo.GET("/ping", s.pingHandler)
	s.metrics.RegisterMetricsRoute(s.echo)

	// the limiter runs after the session middleware so it can key on the user
	v1 := s.echo.Group("/v1", sessions.OptionalSession(), limiter.Middleware())
	v1.POST("/authorize", s.authorizeHandler)
	v1.GET("/routes", s.listRoutesHandler)
	v1.GET("/routes/access", s.routeAccessHandler)
	v1.GET("/stock/status", s.stockStatusHandler)
	v1.GET("/stock/colors", s.stockColorsHandler)

	authed := v1.Group("", sessions.RequireSession())
	authed.GET("/session", s.sessionHandler)

	catalog := authed.Group("/catalog", s.guard.RequireAction(rbac.ModuleSupplies, rbac.ActionView))
	catalog.GET("/categories", s.listCategoriesHandler)
	catalog.GET("/categories/:category/variations", s.listVariationsHandler)

	authed.POST("/reports/low-stock", s.lowStockReportHandler, s.guard.RequireAction(rbac.ModuleReports, rbac.ActionView))
}

func (s *Server) pingHandler(c echo.Context) error {
	return respondSuccess(c, "pong")
}

type sessionResponse struct {
	SessionID   string             `json:"session_id"`
	User        *rbac.User         `json:"user"`
	Permissions rbac.PermissionMap `json:"permissions"`
	ExpiresAt   time.Time          `json:"expires_at"`
}

func (s *Server) sessionHandler(c echo.Context) error {
	session := auth.GetSession(c)
	return respondSuccess(c, sessionResponse{
		SessionID:   session.ID,
		User:        session.User,
		Permissions: s.resolver.EffectivePermissions(session.User),
		ExpiresAt:   session.ExpiresAt,
	})
}

type authorizeRequest struct {
	Module string `json:"module" validate:"required,max=64"`
	Action string `json:"action" validate:"required,max=32"`
}

type authorizeResponse struct {
	Module  rbac.Module `json:"module"`
	Action  rbac.Action `json:"action"`
	Allowed bool        `json:"allowed"`
}

// authorizeHandler answers hasPermission for the caller. Anonymous callers
// are always denied.
func (s *Server) authorizeHandler(c echo.Context) error {
	var req authorizeRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	module, err := rbac.ParseModule(req.Module)
	if err != nil {
		return err
	}
	action, err := rbac.ParseAction(req.Action)
	if err != nil {
		return err
	}

	allowed := s.guard.Check(c, module, action) == nil
	return respondSuccess(c, authorizeResponse{Module: module, Action: action, Allowed: allowed})
}

type routeAccess struct {
	Route       string                 `json:"route"`
	Allowed     bool                   `json:"allowed"`
	Requirement *rbac.RouteRequirement `json:"requirement,omitempty"`
}

type routeAccessRequest struct {
	Route string `query:"route" validate:"required,startswith=/,max=512"`
}

func (s *Server) routeAccessHandler(c echo.Context) error {
	var req routeAccessRequest
	if err := bindRequest(c, &req); err != nil {
		return apperrors.BadRequest(msgRouteRequired)
	}

	reqmt, restricted, err := s.guard.CheckRoute(c, req.Route)
	access := routeAccess{Route: req.Route, Allowed: err == nil}
	if restricted {
		access.Requirement = &reqmt
	}
	return respondSuccess(c, access)
}

// listRoutesHandler reports every restricted route with the caller's access,
// which the dashboard uses to build its navigation
func (s *Server) listRoutesHandler(c echo.Context) error {
	user := requestUser(c)
	routes := s.resolver.Routes()

	out := make([]routeAccess, 0, len(routes))
	for _, route := range routes {
		reqmt, _ := s.resolver.Requirement(route)
		out = append(out, routeAccess{
			Route:       route,
			Allowed:     s.resolver.CanAccessRoute(user, route),
			Requirement: &reqmt,
		})
	}
	return respondSuccess(c, out)
}

type stockStatusRequest struct {
	Quantity    int `query:"quantity" validate:"gte=0,max=1000000000"`
	MinQuantity int `query:"min_quantity" validate:"gte=0,max=1000000000"`
}

type stockStatusResponse struct {
	stock.Result
	MinQuantity int          `json:"min_quantity"`
	Colors      stock.Colors `json:"colors"`
}

func (s *Server) stockStatusHandler(c echo.Context) error {
	if c.QueryParam(queryQuantity) == "" {
		return &validator.ValidationError{Fields: []validator.FieldError{
			{Field: queryQuantity, Message: msgFieldRequired},
		}}
	}

	var req stockStatusRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	// zero means the caller has no threshold of its own
	minQuantity := s.config.Stock.DefaultMinQuantity
	if req.MinQuantity > 0 {
		minQuantity = req.MinQuantity
	}

	result := stock.CalculateStockStatus(req.Quantity, minQuantity)
	s.metrics.RecordStockClassification(string(result.Status))

	return respondSuccess(c, stockStatusResponse{
		Result:      result,
		MinQuantity: result.Thresholds.Low,
		Colors:      stock.StatusColors(string(result.Status)),
	})
}

type stockColorsResponse struct {
	Status string       `json:"status"`
	Known  bool         `json:"known"`
	Colors stock.Colors `json:"colors"`
}

// stockColorsHandler serves badge colors for any status name; unknown
// names get the fallback bundle and are echoed back unchanged
func (s *Server) stockColorsHandler(c echo.Context) error {
	raw := c.QueryParam(queryStatus)
	out := stockColorsResponse{Status: raw, Colors: stock.StatusColors(raw)}
	if status, ok := stock.ParseStatus(raw); ok {
		out.Status = string(status)
		out.Known = true
		out.Colors = status.Colors()
	}
	return respondSuccess(c, out)
}
