package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionkit/pkg/config"
	"github.com/dmitrymomot/sessionkit/pkg/environment"
	"github.com/dmitrymomot/sessionkit/pkg/session"
)

func TestConfigLoad(t *testing.T) {
	t.Parallel()

	var cfg Config
	require.NoError(t, config.Load(&cfg, config.WithEnviron(map[string]string{
		"APP_ENV":           "prod",
		"SESSION_STORE":     "redis",
		"SESSION_EXPIRE_IN": "1h",
		"REDIS_URL":         "redis://cache:6379/1",
		"HTTP_ADDR":         ":9090",
	})))

	assert.Equal(t, "sessiond", cfg.AppName)
	assert.Equal(t, environment.Production, cfg.AppEnv)
	assert.Equal(t, storeRedis, cfg.Store)
	assert.Equal(t, time.Minute, cfg.SweepInterval)
	assert.Equal(t, time.Hour, cfg.Session.ExpireIn)
	assert.Equal(t, session.DefaultConfig().CookieName, cfg.Session.CookieName)
	assert.Equal(t, "redis://cache:6379/1", cfg.Redis.ConnectionURL)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.True(t, cfg.LimitEstablish)
	assert.False(t, cfg.TrustProxyHeaders)
	assert.Equal(t, 20, cfg.Limit.Capacity)
	assert.NoError(t, cfg.Limit.Validate())

	var bad Config
	err := config.Load(&bad, config.WithEnviron(map[string]string{"APP_ENV": "qa"}))
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}
