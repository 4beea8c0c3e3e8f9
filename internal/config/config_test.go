package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "Zq8#nV2m!Lp5@Rt7$Wx9%Ky3^Bc6&Hd4*Jf1"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(envSessionSecret, testSecret)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr())
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.False(t, cfg.Server.EnablePprof)
	assert.Equal(t, 8*time.Hour, cfg.Session.ExpiryDuration)
	assert.Equal(t, "supply-service", cfg.Session.Issuer)
	assert.Equal(t, 10, cfg.Stock.DefaultMinQuantity)
	assert.Equal(t, 100, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Empty(t, cfg.RBAC.PolicyFile)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv(envSessionSecret, testSecret)
	t.Setenv(envPort, "9090")
	t.Setenv(envSessionExpiry, "30")
	t.Setenv(envServerReadTimeout, "3s")
	t.Setenv(envPolicyFile, "/etc/supply/policy.yaml")
	t.Setenv(envDefaultMinQuantity, "12")
	t.Setenv(envLogFormat, "CONSOLE")
	t.Setenv(envLogLevel, "DEBUG")
	t.Setenv(envEnablePprof, "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr())
	assert.Equal(t, 30*time.Minute, cfg.Session.ExpiryDuration)
	assert.Equal(t, 3*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "/etc/supply/policy.yaml", cfg.RBAC.PolicyFile)
	assert.Equal(t, 12, cfg.Stock.DefaultMinQuantity)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Server.EnablePprof)
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing secret", map[string]string{envSessionSecret: ""}},
		{"short secret", map[string]string{envSessionSecret: "short"}},
		{"low entropy secret", map[string]string{envSessionSecret: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"}},
		{"zero min quantity", map[string]string{envSessionSecret: testSecret, envDefaultMinQuantity: "0"}},
		{"negative burst", map[string]string{envSessionSecret: testSecret, envRateLimitBurst: "-1"}},
		{"bad log format", map[string]string{envSessionSecret: testSecret, envLogFormat: "xml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestHasMinimumEntropy(t *testing.T) {
	assert.True(t, hasMinimumEntropy(testSecret))
	assert.False(t, hasMinimumEntropy("abababababababababababababababababab"))
	assert.False(t, hasMinimumEntropy("tooshort"))
}

func TestLoad_MissingSecretIsTyped(t *testing.T) {
	t.Setenv(envSessionSecret, "")

	_, err := Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingEnv)
	assert.Contains(t, err.Error(), envSessionSecret)
}
