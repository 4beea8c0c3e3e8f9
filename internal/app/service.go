package app

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"supply-service/internal/auth"
	"supply-service/internal/config"
	"supply-service/internal/rbac"
	"supply-service/internal/transport/echo"
)

// Service represents the supply authorization service
type Service struct {
	config   *config.Config
	log      *zap.Logger
	resolver *rbac.Resolver
	sessions *auth.SessionService
	server   *echo.Server
}

// NewService creates and initializes a new Service instance
// This is a convenience wrapper around InitializeService
func NewService() (*Service, error) {
	return InitializeService()
}

// Run serves until ctx is cancelled, then shuts the server down within
// the configured shutdown timeout
func (s *Service) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("starting supply service")
		errCh <- s.server.Start()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down", zap.Duration("timeout", s.config.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Handler returns the HTTP handler serving every route
func (s *Service) Handler() http.Handler {
	return s.server
}

// Logger returns the service logger
func (s *Service) Logger() *zap.Logger {
	return s.log
}
