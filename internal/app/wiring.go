package app

import (
	"fmt"

	"go.uber.org/zap"

	"supply-service/internal/audit"
	"supply-service/internal/auth"
	"supply-service/internal/config"
	"supply-service/internal/rbac"
	"supply-service/internal/rbac/presets"
	"supply-service/internal/transport/echo"
	"supply-service/pkg/logger"
	"supply-service/pkg/metrics"
)

// InitializeService loads configuration from the environment and wires up
// all dependencies
func InitializeService() (*Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return InitializeServiceWithConfig(cfg, log)
}

// InitializeServiceWithConfig wires a Service from an already loaded config
func InitializeServiceWithConfig(cfg *config.Config, log *zap.Logger) (*Service, error) {
	policy, source, err := loadPolicy(cfg.RBAC)
	if err != nil {
		return nil, err
	}

	resolver, err := rbac.New(policy)
	if err != nil {
		return nil, fmt.Errorf("failed to build resolver: %w", err)
	}
	log.Info("rbac policy loaded",
		zap.String("source", source),
		zap.Int("routes", len(resolver.Routes())))

	sessions := auth.NewSessionService(cfg.Session.Secret, cfg.Session.ExpiryDuration, cfg.Session.Issuer)
	m := metrics.New()

	server := echo.NewServer(echo.Dependencies{
		Config:   cfg,
		Logger:   log,
		Resolver: resolver,
		Sessions: sessions,
		Metrics:  m,
		Audit:    audit.NewLogger(log),
	})

	return &Service{
		config:   cfg,
		log:      log,
		resolver: resolver,
		sessions: sessions,
		server:   server,
	}, nil
}

const policySourceBuiltin = "builtin"

func loadPolicy(cfg config.RBACConfig) (rbac.Policy, string, error) {
	if cfg.PolicyFile == "" {
		return presets.OfficeSupplies(), policySourceBuiltin, nil
	}

	policy, err := rbac.LoadPolicyFile(cfg.PolicyFile)
	if err != nil {
		return rbac.Policy{}, "", fmt.Errorf("failed to load policy file %s: %w", cfg.PolicyFile, err)
	}
	return policy, cfg.PolicyFile, nil
}
