package main

import (
	"time"

	"github.com/dmitrymomot/sessionkit/pkg/environment"
	"github.com/dmitrymomot/sessionkit/pkg/httpserver"
	"github.com/dmitrymomot/sessionkit/pkg/ratelimiter"
	"github.com/dmitrymomot/sessionkit/pkg/redis"
	"github.com/dmitrymomot/sessionkit/pkg/session"
)

const (
	storeMemory = "memory"
	storeRedis  = "redis"
)

// Config is the full process configuration, read from the environment.
type Config struct {
	AppName string                  `env:"APP_NAME" envDefault:"sessiond"`
	AppEnv  environment.Environment `env:"APP_ENV" envDefault:"development"`

	Store         string        `env:"SESSION_STORE" envDefault:"memory"` // memory or redis
	SweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL" envDefault:"1m"`

	TrustProxyHeaders bool `env:"TRUST_PROXY_HEADERS" envDefault:"false"`
	LimitEstablish    bool `env:"SESSION_LIMIT_ESTABLISH" envDefault:"true"`

	Session session.Config
	HTTP    httpserver.Config
	Redis   redis.Config
	Limit   ratelimiter.Config
}
