package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/sessionkit/pkg/clientip"
	"github.com/dmitrymomot/sessionkit/pkg/config"
	"github.com/dmitrymomot/sessionkit/pkg/environment"
	"github.com/dmitrymomot/sessionkit/pkg/httpserver"
	"github.com/dmitrymomot/sessionkit/pkg/logger"
	"github.com/dmitrymomot/sessionkit/pkg/metrics"
	"github.com/dmitrymomot/sessionkit/pkg/ratelimiter"
	"github.com/dmitrymomot/sessionkit/pkg/redis"
	"github.com/dmitrymomot/sessionkit/pkg/requestid"
	"github.com/dmitrymomot/sessionkit/pkg/session"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg Config
	config.MustLoad(&cfg) // panic on error

	log := logger.New(
		logger.WithEnvironment(cfg.AppEnv, cfg.AppName),
		logger.WithContextExtractors(requestid.LoggerExtractor(), environment.LoggerExtractor()),
	)
	ctx = environment.WithContext(ctx, cfg.AppEnv)

	store, checks, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.ErrorContext(ctx, "Failed to open session store", logger.Component("store"), logger.Error(err))
		os.Exit(1)
	}
	defer closeStore()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg, "sessiond")

	opts := []session.Option{
		session.WithStore(store),
		session.WithLogger(log),
		session.WithOutcomeHook(m.ObserveOutcome),
	}
	if cfg.LimitEstablish {
		limits := ratelimiter.NewMemoryStore()
		defer func() { _ = limits.Close() }()
		bucket, err := ratelimiter.NewBucket(limits, cfg.Limit)
		if err != nil {
			log.ErrorContext(ctx, "Invalid rate limit configuration", logger.Component("ratelimiter"), logger.Error(err))
			os.Exit(1)
		}
		opts = append(opts, session.WithEstablishLimiter(bucket, clientip.KeyFunc))
	}

	sessions, err := session.NewFromConfig(cfg.Session, opts...)
	if err != nil {
		log.ErrorContext(ctx, "Invalid session configuration", logger.Component("session"), logger.Error(err))
		os.Exit(1)
	}

	r := newRouter(routerDeps{
		env:      cfg.AppEnv,
		log:      log,
		sessions: sessions,
		metrics:  m,
		gatherer: reg,
		checks:   checks,
		trusted:  proxyHeaders(cfg.TrustProxyHeaders),
	})

	eg, ctx := errgroup.WithContext(ctx)

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log), httpserver.WithoutSignals())
	eg.Go(func() error { return srv.Run(ctx, r) })

	if err := eg.Wait(); err != nil {
		log.ErrorContext(ctx, "Failed to run server", logger.Component("server"), logger.Error(err))
		os.Exit(1)
	}

	log.InfoContext(ctx, "Application stopped")
}

// openStore builds the configured session store together with its readiness
// checks and a release function.
func openStore(ctx context.Context, cfg Config) (session.Store, []httpserver.Check, func(), error) {
	switch cfg.Store {
	case storeMemory:
		store := session.NewMemoryStore(session.WithSweepInterval(cfg.SweepInterval))
		return store, nil, func() { _ = store.Close() }, nil
	case storeRedis:
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, nil, err
		}
		checks := []httpserver.Check{redis.Healthcheck(client)}
		return redis.NewStoreFromConfig(client, cfg.Redis), checks, func() { _ = client.Close() }, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown SESSION_STORE %q: want %q or %q", cfg.Store, storeMemory, storeRedis)
	}
}

func proxyHeaders(trust bool) []string {
	if !trust {
		return nil
	}
	return clientip.DefaultHeaders
}
