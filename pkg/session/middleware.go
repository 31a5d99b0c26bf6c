package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/dmitrymomot/sessionkit/pkg/cookie"
	"github.com/dmitrymomot/sessionkit/pkg/logger"
)

const tracerName = "github.com/dmitrymomot/sessionkit/pkg/session"

// Outcome is the terminal state of session resolution for one request.
type Outcome string

const (
	// OutcomeBypass means the request skipped resolution (favicon or WithSkip).
	OutcomeBypass Outcome = "bypass"
	// OutcomeResumed means the cookie referenced a live session.
	OutcomeResumed Outcome = "resumed"
	// OutcomeEstablished means a new session was stored and the client redirected.
	OutcomeEstablished Outcome = "established"
	// OutcomeRejected means a non-GET request arrived without a live session.
	OutcomeRejected Outcome = "rejected"
	// OutcomeThrottled means the establish limiter refused a new session.
	OutcomeThrottled Outcome = "throttled"
	// OutcomeFailed means a store or generator error aborted the request.
	OutcomeFailed Outcome = "failed"
)

// Limiter caps how often a client may establish sessions.
type Limiter interface {
	// Permit takes one unit for key. When denied, retryAfter is the wait
	// until the next unit is available.
	Permit(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error)
}

// Middleware resolves or establishes a cookie-bound session on every request.
// It is immutable after New returns and safe for concurrent use; its
// collaborators are shared by all in-flight requests.
type Middleware struct {
	config    Config
	store     Store
	encoder   TokenEncoder
	generator TokenGenerator
	cookies   *cookie.Manager
	logger    *slog.Logger
	tracer    trace.Tracer
	now       func() time.Time
	skip      func(r *http.Request) bool
	limiter   Limiter
	limitKey  func(r *http.Request) string
	onOutcome func(ctx context.Context, outcome Outcome)
}

// New creates a Middleware. Defaults: DefaultConfig, a MemoryStore,
// Base58Encoder and RandomGenerator. The merged configuration is validated
// once; any failure is returned joined with ErrInvalidConfig and the
// Middleware must not be used.
func New(opts ...Option) (*Middleware, error) {
	m := &Middleware{
		config:    DefaultConfig(),
		store:     NewMemoryStore(),
		encoder:   Base58Encoder{},
		generator: RandomGenerator{},
		logger:    logger.Discard(),
		tracer:    noop.NewTracerProvider().Tracer(tracerName),
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	if err := m.validate(); err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}

	m.cookies = cookie.New(
		cookie.WithPath("/"),
		cookie.WithSecure(true),
		cookie.WithHTTPOnly(true),
		cookie.WithSameSite(http.SameSiteStrictMode),
		cookie.WithPriority(cookie.PriorityHigh),
		cookie.WithPartitioned(m.config.Partitioned),
	)

	return m, nil
}

// MustNew is like New but panics on invalid configuration.
// A session system that cannot start must prevent the process from serving.
func MustNew(opts ...Option) *Middleware {
	m, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("session: %v", err))
	}
	return m
}

func (m *Middleware) validate() error {
	errs := []error{m.config.Validate()}
	if m.store == nil {
		errs = append(errs, ErrNoStore)
	}
	if m.encoder == nil {
		errs = append(errs, ErrNoEncoder)
	}
	if m.generator == nil {
		errs = append(errs, ErrNoGenerator)
	}
	return errors.Join(errs...)
}

// Config returns the resolved configuration.
func (m *Middleware) Config() Config {
	return m.config
}

// Collaborators returns the store, encoder and generator in use.
func (m *Middleware) Collaborators() Collaborators {
	return Collaborators{Store: m.store, Encoder: m.encoder, Generator: m.generator}
}

// Handler runs two stages in order: inject exposes the collaborators in the
// request context, then resolve runs session resolution.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return m.inject(m.resolve(next))
}

func (m *Middleware) inject(next http.Handler) http.Handler {
	collaborators := m.Collaborators()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(WithCollaborators(r.Context(), collaborators)))
	})
}

// resolve implements the per-request state machine:
//
//	favicon/skip                  -> pass through untouched
//	cookie + live session         -> attach session, pass through
//	no cookie or stale, GET       -> store new session, set cookie, 303 to same URL
//	  ... limiter refuses         -> 429, nothing stored, no cookie
//	no cookie or stale, other     -> 405, nothing stored, no cookie
//
// The redirect exists because a cookie set on this response is invisible to
// this request's downstream handlers.
func (m *Middleware) resolve(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == FaviconPath || (m.skip != nil && m.skip(r)) {
			m.observe(r.Context(), OutcomeBypass)
			next.ServeHTTP(w, r)
			return
		}

		ctx, span := m.tracer.Start(r.Context(), "session.resolve",
			trace.WithSpanKind(trace.SpanKindInternal),
			trace.WithAttributes(attribute.String("http.request.method", r.Method)),
		)
		defer span.End()
		r = r.WithContext(ctx)

		if id, err := m.cookies.Get(r, m.config.CookieName); err == nil && id != "" {
			sess, err := m.Load(ctx, id)
			if err != nil {
				m.fail(w, r, "load session", err)
				return
			}
			if sess != nil {
				m.observe(ctx, OutcomeResumed)
				next.ServeHTTP(w, r.WithContext(WithSession(ctx, sess)))
				return
			}
		}

		if r.Method != http.MethodGet {
			m.logger.DebugContext(ctx, "session required for mutating request",
				logger.Component("session"),
				slog.String("method", r.Method),
			)
			m.observe(ctx, OutcomeRejected)
			w.Header().Set("Allow", http.MethodGet)
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		if m.limiter != nil {
			allowed, wait, err := m.limiter.Permit(ctx, m.limitKey(r))
			if err != nil {
				m.fail(w, r, "check establish limit", err)
				return
			}
			if !allowed {
				m.observe(ctx, OutcomeThrottled)
				if secs := int(math.Ceil(wait.Seconds())); secs > 0 {
					w.Header().Set("Retry-After", strconv.Itoa(secs))
				}
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
		}

		now := m.now()
		id, err := m.establish(ctx, now)
		if err != nil {
			m.fail(w, r, "establish session", err)
			return
		}

		w.Header().Set("Cache-Control", "no-store")
		if err := m.cookies.Set(w, m.config.CookieName, id,
			cookie.WithMaxAge(m.config.ttlSeconds()),
			cookie.WithExpires(now.Add(m.ttl())),
		); err != nil {
			m.fail(w, r, "set session cookie", err)
			return
		}

		m.logger.DebugContext(ctx, "session established",
			logger.Component("session"),
			logger.SessionRef(id),
		)
		m.observe(ctx, OutcomeEstablished)
		w.Header().Set("Location", redirectTarget(r.URL))
		w.WriteHeader(http.StatusSeeOther)
	})
}

// Load returns the live session for id, or nil if the store has none.
// A corrupt identity payload degrades to a nil identity.
func (m *Middleware) Load(ctx context.Context, id string) (*Session, error) {
	key := Key(id)

	ok, err := m.store.Exists(ctx, key)
	if err != nil || !ok {
		return nil, err
	}

	values, err := m.store.GetMultiple(ctx, key, FieldIdentity, FieldCreated)
	if err != nil {
		return nil, err
	}

	sess := &Session{ID: id}
	if len(values) == 2 {
		identity, err := decodeIdentity(values[0])
		if err != nil {
			m.logger.WarnContext(ctx, "malformed session identity, using null",
				logger.Component("session"),
				logger.SessionRef(id),
				logger.Error(err),
			)
		}
		sess.Identity = identity
		if values[1] != nil {
			sess.Created = *values[1]
		}
	}

	return sess, nil
}

// Establish mints and stores a new anonymous session without touching any
// HTTP response, returning its id.
func (m *Middleware) Establish(ctx context.Context) (string, error) {
	return m.establish(ctx, m.now())
}

// establish mints and stores a new session, returning its id.
// Concurrent requests for the same stale cookie each mint their own session;
// there is no create-if-absent guard.
func (m *Middleware) establish(ctx context.Context, now time.Time) (string, error) {
	token := m.generator.Generate(m.config.TokenSize)
	if len(token) < m.config.TokenSize {
		return "", fmt.Errorf("%w: got %d of %d bytes", ErrTokenGeneration, len(token), m.config.TokenSize)
	}

	id := m.encoder.Encode(token)
	key := Key(id)

	if err := m.store.SetMultiple(ctx, key,
		FieldIdentity, "null",
		FieldCreated, timestamp(now),
	); err != nil {
		return "", err
	}

	if _, err := m.store.Expire(ctx, key, m.ttl()); err != nil {
		return "", err
	}

	return id, nil
}

// SetIdentity stores v as the JSON identity of a live session. The creation
// time and expiry are left untouched.
func (m *Middleware) SetIdentity(ctx context.Context, id string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal identity: %w", err)
	}

	key := Key(id)
	ok, err := m.store.Exists(ctx, key)
	if err != nil {
		return err
	}
	if !ok {
		return ErrSessionNotFound
	}

	return m.store.SetMultiple(ctx, key, FieldIdentity, string(raw))
}

func (m *Middleware) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	ctx := r.Context()
	m.logger.ErrorContext(ctx, "session middleware: "+op+" failed",
		logger.Component("session"),
		logger.Error(err),
	)
	span := trace.SpanFromContext(ctx)
	span.RecordError(err)
	span.SetStatus(codes.Error, op)
	m.observe(ctx, OutcomeFailed)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (m *Middleware) observe(ctx context.Context, outcome Outcome) {
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("session.outcome", string(outcome)))
	if m.onOutcome != nil {
		m.onOutcome(ctx, outcome)
	}
}

func (m *Middleware) ttl() time.Duration {
	return time.Duration(m.config.ttlSeconds()) * time.Second
}

// redirectTarget returns the origin-relative request URI of u. Leading runs of
// slashes or backslashes collapse to one so the target never names a host.
func redirectTarget(u *url.URL) string {
	target := u.RequestURI()
	if strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		target = "/" + strings.TrimLeft(target, "/\\")
	}
	return target
}
