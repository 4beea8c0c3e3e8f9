package echo

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"supply-service/internal/audit"
	"supply-service/internal/auth"
	"supply-service/internal/config"
	"supply-service/internal/http/middleware"
	"supply-service/internal/rbac"
	"supply-service/pkg/metrics"
	"supply-service/pkg/profiling"
	"supply-service/pkg/validator"
)

const requestBodyLimit = "1M"

// Dependencies are the collaborators the server routes requests to
type Dependencies struct {
	Config   *config.Config
	Logger   *zap.Logger
	Resolver *rbac.Resolver
	Sessions *auth.SessionService
	Metrics  *metrics.Metrics
	Audit    *audit.Logger

	// Now defaults to time.Now
	Now func() time.Time
}

// Server wraps the Echo server with dependencies
type Server struct {
	echo     *echo.Echo
	config   *config.Config
	log      *zap.Logger
	resolver *rbac.Resolver
	guard    *Guard
	metrics  *metrics.Metrics
	now      func() time.Time
}

// NewServer creates a new Echo server with middleware and routes
func NewServer(deps Dependencies) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = newHTTPErrorHandler(deps.Logger)
	e.Validator = validator.New()

	e.Server.ReadTimeout = deps.Config.Server.ReadTimeout
	e.Server.WriteTimeout = deps.Config.Server.WriteTimeout

	// request id first so every later log line carries it
	e.Use(middleware.RequestID())
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(deps.Metrics.Middleware())
	// inside metrics so a recovered panic is still counted as a 500
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(echomiddleware.BodyLimit(requestBodyLimit))

	now := deps.Now
	if now == nil {
		now = time.Now
	}

	s := &Server{
		echo:     e,
		config:   deps.Config,
		log:      deps.Logger,
		resolver: deps.Resolver,
		guard:    NewGuard(deps.Resolver, deps.Audit, deps.Metrics),
		metrics:  deps.Metrics,
		now:      now,
	}

	s.registerRoutes(auth.NewMiddleware(deps.Sessions),
		middleware.NewRateLimiter(deps.Config.RateLimit.RequestsPerSecond, deps.Config.RateLimit.Burst))

	if deps.Config.Server.EnablePprof {
		profiling.RegisterPprofRoutes(e)
	}

	return s
}

// Start starts the HTTP server. It returns http.ErrServerClosed after Shutdown.
func (s *Server) Start() error {
	s.log.Info("listening", zap.String("addr", s.config.Server.Addr()))
	return s.echo.Start(s.config.Server.Addr())
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// ServeHTTP lets the server be mounted or driven by httptest
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}
