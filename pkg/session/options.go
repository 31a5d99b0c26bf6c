package session

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// Option is a functional option for configuring the Middleware
type Option func(*Middleware)

// WithConfig replaces the whole configuration
func WithConfig(config Config) Option {
	return func(m *Middleware) {
		m.config = config
	}
}

// WithCookieName sets the session cookie name
func WithCookieName(name string) Option {
	return func(m *Middleware) {
		m.config.CookieName = name
	}
}

// WithExpireIn sets the session lifetime
func WithExpireIn(ttl time.Duration) Option {
	return func(m *Middleware) {
		m.config.ExpireIn = ttl
	}
}

// WithTokenSize sets the number of random bytes per token
func WithTokenSize(size int) Option {
	return func(m *Middleware) {
		m.config.TokenSize = size
	}
}

// WithPartitioned toggles the Partitioned cookie attribute
func WithPartitioned(partitioned bool) Option {
	return func(m *Middleware) {
		m.config.Partitioned = partitioned
	}
}

// WithStore sets the session store. Passing nil fails validation.
func WithStore(store Store) Option {
	return func(m *Middleware) {
		m.store = store
	}
}

// WithEncoder sets the token encoder. Passing nil fails validation.
func WithEncoder(encoder TokenEncoder) Option {
	return func(m *Middleware) {
		m.encoder = encoder
	}
}

// WithGenerator sets the token generator. Passing nil fails validation.
func WithGenerator(generator TokenGenerator) Option {
	return func(m *Middleware) {
		m.generator = generator
	}
}

// WithLogger sets the logger. Nil keeps the discarding default.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Middleware) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithClock replaces the clock used for creation timestamps and cookie expiry
func WithClock(now func() time.Time) Option {
	return func(m *Middleware) {
		if now != nil {
			m.now = now
		}
	}
}

// WithSkip bypasses session resolution for requests matching fn,
// in addition to FaviconPath.
func WithSkip(fn func(r *http.Request) bool) Option {
	return func(m *Middleware) {
		m.skip = fn
	}
}

// WithOutcomeHook registers a callback invoked once per request with the
// terminal state of session resolution.
func WithOutcomeHook(fn func(ctx context.Context, outcome Outcome)) Option {
	return func(m *Middleware) {
		m.onOutcome = fn
	}
}

// WithTracer sets the tracer used for the "session.resolve" span.
// Nil keeps the no-op default.
func WithTracer(tracer trace.Tracer) Option {
	return func(m *Middleware) {
		if tracer != nil {
			m.tracer = tracer
		}
	}
}

// WithEstablishLimiter consults l, keyed by key(r), before creating a session.
// Refused requests get 429 with Retry-After. Resumed sessions are never
// limited. A nil limiter or key disables limiting.
func WithEstablishLimiter(l Limiter, key func(r *http.Request) string) Option {
	return func(m *Middleware) {
		if l == nil || key == nil {
			m.limiter, m.limitKey = nil, nil
			return
		}
		m.limiter, m.limitKey = l, key
	}
}
